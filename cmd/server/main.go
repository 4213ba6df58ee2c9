package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/logiboard/tasks-backend-go/internal/api"
	"github.com/logiboard/tasks-backend-go/internal/config"
	"github.com/logiboard/tasks-backend-go/internal/database"
	"github.com/logiboard/tasks-backend-go/internal/handler"
	"github.com/logiboard/tasks-backend-go/internal/repository"
	"github.com/logiboard/tasks-backend-go/internal/service"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/appsettings.json"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close()

	if err := database.Bootstrap(database.GetDB()); err != nil {
		log.Fatal("Failed to bootstrap schema: ", err)
	}

	repo := repository.NewTaskRepository(database.GetDB())
	svc := service.NewAnalyticsService(repo, cfg.AssetsDir)

	// The bulk load is the one blocking call in the system: it happens
	// here, once, never on the request path. Without data the dashboard
	// has no degraded mode, so a failed load is fatal.
	loadTimeout := time.Duration(cfg.LoadTimeoutS) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	if err := svc.Load(ctx); err != nil {
		log.Fatal("Failed to load task snapshot: ", err)
	}

	h := handler.NewAnalyticsHandler(svc, cfg.RealtimeURL, loadTimeout)
	router := api.SetupRouter(h)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
