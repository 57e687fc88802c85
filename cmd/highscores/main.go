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
	"github.com/CLDWare/aanwezigheid/internal/highscore"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info(".env file not found, proceeding with environment variables")
	}
	config.ForceReload()
	cfg := config.Get()
	logger.SetLevel(cfg.Logging.Level)

	store, err := highscore.NewStore(cfg.Highscore.Backend, cfg.Highscore.DatabasePath)
	if err != nil {
		logger.Err(err)
		os.Exit(1)
	}
	if err := store.Init(context.Background()); err != nil {
		logger.Err(err)
		os.Exit(1)
	}

	handler := api.ApplyMiddleware(api.NewHighscoreAPI(highscore.NewService(store)).CreateMux())
	server := &http.Server{
		Addr:         cfg.GetHighscoreAddress(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Starting highscore server on", server.Addr, "with the", cfg.Highscore.Backend, "backend")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Err("Server failed to start:", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down highscore server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Err("Server forced to shutdown:", err)
		os.Exit(1)
	}
}
