package janitor

import (
	"context"
	"fmt"
	"time"

	"github.com/CLDWare/aanwezigheid/config"
	"github.com/CLDWare/aanwezigheid/internal/attendance"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
)

type Janitor struct {
	cfg              *config.Config
	service          *attendance.Service
	announceNoAction bool
	cancel           context.CancelFunc
}

func NewJanitor(cfg *config.Config, service *attendance.Service, announceNoAction bool) *Janitor {
	return &Janitor{
		cfg:              cfg,
		service:          service,
		announceNoAction: announceNoAction,
	}
}

func (jan *Janitor) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	jan.cancel = cancel

	go func() {
		shortTicker := time.NewTicker(jan.cfg.Janitor.ShortCleanInterval)
		defer shortTicker.Stop()
		fullTicker := time.NewTicker(jan.cfg.Janitor.FullCleanInterval)
		defer fullTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-shortTicker.C:
				jan.RunShort(ctx)
			case <-fullTicker.C:
				jan.RunFull(ctx)
			}
		}
	}()
}

func (jan *Janitor) Stop() {
	if jan.cancel != nil {
		jan.cancel()
		jan.cancel = nil
	}
}

func (jan *Janitor) RunShort(ctx context.Context) {
	logger.Info("Janitor: Running short cleaning sequence.")
	jan.CleanUpExpiredAuthSession(ctx)
}

func (jan *Janitor) RunFull(ctx context.Context) {
	logger.Info("Janitor: Running full cleaning sequence.")
	jan.RunShort(ctx)

	jan.DeepCleanDatabase(ctx, nil)
}

// DeepCleanDatabase forces gorm to delete all soft deleted accounts and sessions
func (jan *Janitor) DeepCleanDatabase(ctx context.Context, deepcleanModels []any) {
	if deepcleanModels == nil {
		deepcleanModels = []any{
			models.AuthSession{},
			models.Account{},
		}
	}
	db := jan.service.DB().WithContext(ctx)
	for _, deepcleanModel := range deepcleanModels {
		result := db.Unscoped().Where("deleted_at IS NOT NULL").Delete(deepcleanModel)
		if result.Error != nil {
			logger.Err(fmt.Sprintf("Janitor: Error while deepcleaning model %T: %s", deepcleanModel, result.Error.Error()))
		} else if jan.announceNoAction || result.RowsAffected != 0 {
			logger.Info(fmt.Sprintf("Janitor: Deleted %d rows from model %T", result.RowsAffected, deepcleanModel))
		}
	}
}

// CleanUpExpiredAuthSession cleans up auth sessions that have expired
func (jan *Janitor) CleanUpExpiredAuthSession(ctx context.Context) {
	sessionsDeleted, err := jan.service.CleanExpiredSessions(ctx)
	if err != nil {
		logger.Err("Janitor: could not clean expired auth sessions:", err)
		return
	}
	if jan.announceNoAction || sessionsDeleted != 0 {
		logger.Info(fmt.Sprintf("Janitor: cleaned %d expired auth sessions", sessionsDeleted))
	}
}
