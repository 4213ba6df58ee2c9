package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/logiboard/tasks-backend-go/internal/analytics"
	"github.com/logiboard/tasks-backend-go/internal/service"
	"github.com/logiboard/tasks-backend-go/pkg/response"
)

// AnalyticsHandler handles HTTP requests for the dashboard views. Each
// endpoint corresponds to one UI widget and recomputes its payload from
// the current snapshot and the request's filter parameters.
type AnalyticsHandler struct {
	svc           *service.AnalyticsService
	realtimeURL   string
	reloadTimeout time.Duration
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(svc *service.AnalyticsService, realtimeURL string, reloadTimeout time.Duration) *AnalyticsHandler {
	return &AnalyticsHandler{
		svc:           svc,
		realtimeURL:   realtimeURL,
		reloadTimeout: reloadTimeout,
	}
}

func (h *AnalyticsHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrBadRequest) {
		response.BadRequest(c, err.Error())
		return
	}
	response.InternalError(c, err.Error())
}

func lookbackParam(c *gin.Context) string {
	return c.DefaultQuery("lookback", "Full History")
}

func wcRangeParams(c *gin.Context) (analytics.WCRange, error) {
	lo, err := strconv.Atoi(c.DefaultQuery("lo", "0"))
	if err != nil {
		return analytics.WCRange{}, errors.New("invalid lo parameter")
	}
	hi, err := strconv.Atoi(c.DefaultQuery("hi", "9999"))
	if err != nil {
		return analytics.WCRange{}, errors.New("invalid hi parameter")
	}
	return analytics.WCRange{Lo: lo, Hi: hi}, nil
}

// GetStatBlock handles GET /api/v1/stats/block
func (h *AnalyticsHandler) GetStatBlock(c *gin.Context) {
	response.Success(c, h.svc.StatBlock())
}

// GetLookbacks handles GET /api/v1/meta/lookbacks
func (h *AnalyticsHandler) GetLookbacks(c *gin.Context) {
	response.Success(c, h.svc.LookbackLabels())
}

// GetRollovers handles GET /api/v1/meta/rollovers
func (h *AnalyticsHandler) GetRollovers(c *gin.Context) {
	response.Success(c, h.svc.RolloverLabels())
}

// GetReadingGuide handles GET /api/v1/meta/reading-guide
func (h *AnalyticsHandler) GetReadingGuide(c *gin.Context) {
	response.Success(c, gin.H{"markdown": h.svc.ReadingGuide()})
}

// GetLinks handles GET /api/v1/meta/links
func (h *AnalyticsHandler) GetLinks(c *gin.Context) {
	response.Success(c, gin.H{"realtime_url": h.realtimeURL})
}

// GetWorkCenterTasks handles GET /api/v1/workcenters/tasks
func (h *AnalyticsHandler) GetWorkCenterTasks(c *gin.Context) {
	wcRange, err := wcRangeParams(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	split := c.DefaultQuery("split", "No") == "Yes"

	payload, err := h.svc.WorkCenterTaskBars(lookbackParam(c), wcRange, split)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, payload)
}

// GetWorkCenterQueue handles GET /api/v1/workcenters/queue
func (h *AnalyticsHandler) GetWorkCenterQueue(c *gin.Context) {
	wcRange, err := wcRangeParams(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rollover := c.Query("rollover")
	if rollover == "No" {
		rollover = ""
	}

	payload, err := h.svc.WorkCenterQueueBars(lookbackParam(c), wcRange, rollover)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, payload)
}

// GetTaskTypePie handles GET /api/v1/workcenters/task-types
func (h *AnalyticsHandler) GetTaskTypePie(c *gin.Context) {
	payload, err := h.svc.TaskTypePie(lookbackParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, payload)
}

// GetWorkCenterEfficiency handles GET /api/v1/workcenters/efficiency
func (h *AnalyticsHandler) GetWorkCenterEfficiency(c *gin.Context) {
	payload, err := h.svc.WorkCenterEfficiency(lookbackParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, payload)
}

// GetTopTasks handles GET /api/v1/tasks/top
func (h *AnalyticsHandler) GetTopTasks(c *gin.Context) {
	payload, err := h.svc.TopTasks(lookbackParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, payload)
}

// GetTaskDistribution handles GET /api/v1/tasks/distribution
func (h *AnalyticsHandler) GetTaskDistribution(c *gin.Context) {
	task := c.Query("task")
	if task == "" {
		response.BadRequest(c, "Missing task parameter")
		return
	}

	payload, err := h.svc.TaskDistribution(lookbackParam(c), task)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, payload)
}

// GetDriverDaily handles GET /api/v1/drivers/daily
func (h *AnalyticsHandler) GetDriverDaily(c *gin.Context) {
	payload, err := h.svc.DriverDaily(lookbackParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, payload)
}

// GetDriverTaskAverages handles GET /api/v1/drivers/task-averages
func (h *AnalyticsHandler) GetDriverTaskAverages(c *gin.Context) {
	task := c.Query("task")
	if task == "" {
		response.BadRequest(c, "Missing task parameter")
		return
	}

	payload, err := h.svc.DriverTaskAverages(lookbackParam(c), task)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, payload)
}

// GetDriverShare handles GET /api/v1/drivers/share
func (h *AnalyticsHandler) GetDriverShare(c *gin.Context) {
	payload, err := h.svc.DriverShare(lookbackParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, payload)
}

// GetDriverEfficiency handles GET /api/v1/drivers/efficiency
func (h *AnalyticsHandler) GetDriverEfficiency(c *gin.Context) {
	payload, err := h.svc.DriverEfficiency(lookbackParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, payload)
}

// Reload handles POST /api/v1/admin/reload
func (h *AnalyticsHandler) Reload(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.reloadTimeout)
	defer cancel()

	if err := h.svc.Reload(ctx); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"tasks": len(h.svc.Snapshot().Tasks)})
}
