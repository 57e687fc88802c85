package main

import (
	"context"
	"fmt"
	"os"

	"github.com/CLDWare/aanwezigheid/config"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	config.ForceReload()
	cfg := config.Get()

	path := cfg.Database.Path
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	db, err := models.InitialiseDatabase(path)
	if err != nil {
		logger.Err(err)
		os.Exit(1)
	}

	// DUMMY DATA
	data := models.NewDummyData()
	if err := models.SeedDummyData(context.Background(), db, data); err != nil {
		logger.Err(err)
		os.Exit(1)
	}

	logger.Info(fmt.Sprintf("Seeded %s with %d students, %d teachers, %d classes and %d subjects",
		path, len(data.Students), len(data.Teachers), len(data.Classes), len(data.Subjects)))
	logger.Info("Students register with their student number, teachers get an account through cmd/create_teacher")
}
