package db

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// AttendanceModels lists every table of the attendance database, in migration order
var AttendanceModels = []any{
	&Student{},
	&Teacher{},
	&Class{},
	&Subject{},
	&Lesson{},
	&ClassEnrollment{},
	&LessonEnrollment{},
	&Account{},
	&AuthSession{},
}

// Open opens (and creates) the sqlite database at path without migrating it
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true, // unique violations become gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// InitialiseDatabase opens the attendance database and migrates all attendance models
func InitialiseDatabase(path string) (*gorm.DB, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(AttendanceModels...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
