package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/logiboard/tasks-backend-go/internal/handler"
	"github.com/logiboard/tasks-backend-go/internal/middleware"
)

// SetupRouter wires the dashboard endpoints.
func SetupRouter(h *handler.AnalyticsHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Analytics API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		meta := api.Group("/meta")
		{
			meta.GET("/lookbacks", h.GetLookbacks)
			meta.GET("/rollovers", h.GetRollovers)
			meta.GET("/reading-guide", h.GetReadingGuide)
			meta.GET("/links", h.GetLinks)
		}

		api.GET("/stats/block", h.GetStatBlock)

		workcenters := api.Group("/workcenters")
		{
			workcenters.GET("/tasks", h.GetWorkCenterTasks)
			workcenters.GET("/queue", h.GetWorkCenterQueue)
			workcenters.GET("/task-types", h.GetTaskTypePie)
			workcenters.GET("/efficiency", h.GetWorkCenterEfficiency)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("/top", h.GetTopTasks)
			tasks.GET("/distribution", h.GetTaskDistribution)
		}

		drivers := api.Group("/drivers")
		{
			drivers.GET("/daily", h.GetDriverDaily)
			drivers.GET("/task-averages", h.GetDriverTaskAverages)
			drivers.GET("/share", h.GetDriverShare)
			drivers.GET("/efficiency", h.GetDriverEfficiency)
		}

		api.POST("/admin/reload", h.Reload)
	}

	return r
}
