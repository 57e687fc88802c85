package main

import (
	"context"
	"os"

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

	// Initialise Database
	db, err := models.InitialiseDatabase(cfg.Database.Path)
	if err != nil {
		logger.Err(err)
		os.Exit(1)
	}

	jan := janitor.NewJanitor(cfg, attendance.NewService(cfg, db), true)

	if len(os.Args) > 1 && os.Args[1] == "full" {
		jan.RunFull(context.Background())
		return
	}
	jan.RunShort(context.Background())
}
