// Package attendance holds the rules of the school attendance app: accounts and login
// sessions, classes, lessons with their enrollments and the QR check-in.
package attendance

import (
	"errors"
	"time"

	"github.com/CLDWare/aanwezigheid/config"
	"gorm.io/gorm"
)

// Service is used by the http handlers, the janitor and the cmd tools
type Service struct {
	db  *gorm.DB
	cfg *config.Config
	now func() time.Time
}

func NewService(cfg *config.Config, db *gorm.DB) *Service {
	return &Service{
		db:  db,
		cfg: cfg,
		now: time.Now,
	}
}

// DB exposes the underlying connection, the janitor uses it for its deep clean
func (s *Service) DB() *gorm.DB {
	return s.db
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
