// create_teacher creates the login of a teacher, teachers can not register themselves
//
//	go run ./cmd/create_teacher -id 2001 -password 'a long password'
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/CLDWare/aanwezigheid/config"
	"github.com/CLDWare/aanwezigheid/internal/attendance"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	config.ForceReload()
	cfg := config.Get()

	teacherID := flag.Uint("id", 0, "teacher id, also the username")
	password := flag.String("password", "", "password of the new account")
	flag.Parse()

	if *teacherID == 0 || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	db, err := models.InitialiseDatabase(cfg.Database.Path)
	if err != nil {
		logger.Err(err)
		os.Exit(1)
	}

	account, err := attendance.NewService(cfg, db).CreateTeacherAccount(context.Background(), *teacherID, *password)
	if err != nil {
		logger.Err(attendance.Message(err))
		os.Exit(1)
	}
	logger.Info(fmt.Sprintf("Created teacher account %s", account.Username))
}
