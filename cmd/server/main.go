package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CLDWare/aanwezigheid/api"
	"github.com/CLDWare/aanwezigheid/config"
	"github.com/CLDWare/aanwezigheid/internal/attendance"
	"github.com/CLDWare/aanwezigheid/internal/janitor"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logger.Info(".env file not found, proceeding with environment variables")
	}

	// Force reload configuration after .env is loaded
	config.ForceReload()

	// Load configuration
	cfg := config.Get()
	logger.SetLevel(cfg.Logging.Level)

	// Initialise Database
	db, err := models.InitialiseDatabase(cfg.Database.Path)
	if err != nil {
		logger.Err(err)
		os.Exit(1)
	}
	service := attendance.NewService(cfg, db)

	// Initialize the janitor
	jan := janitor.NewJanitor(cfg, service, false)
	jan.Start()
	defer jan.Stop()

	// Create API instance
	apiInstance := api.NewAPI(cfg, service)

	// Create mux with routes
	mux := apiInstance.CreateMux()

	// Apply middleware
	handler := api.ApplyMiddleware(mux, cfg.CORSOrigins()...)

	// Server configuration
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server on", server.Addr)
		logger.Info("Environment:", cfg.App.Environment)
		logger.Info("Debug mode:", cfg.App.Debug)
		logger.Info("Application:", cfg.App.Name, "v"+cfg.App.Version)
		logger.Info("Check-in links point to", cfg.App.PublicURL)
		logger.Info("CORS origins:", cfg.CORSOrigins())

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Err("Server failed to start:", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		logger.Err("Server forced to shutdown:", err)
		os.Exit(1)
	}

	logger.Info("Server exited")
}
