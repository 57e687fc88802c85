package janitor

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/CLDWare/aanwezigheid/config"
	"github.com/CLDWare/aanwezigheid/internal/attendance"
	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
)

func TestJanitor_RunFull(t *testing.T) {
	logger.SetOutput(io.Discard)
	ctx := context.Background()

	db, err := models.InitialiseDatabase(filepath.Join(t.TempDir(), "janitor.db"))
	require.NoError(t, err)
	require.NoError(t, models.SeedDummyData(ctx, db, models.NewDummyData()))

	cfg := *config.Get()
	cfg.Auth.BcryptCost = bcrypt.MinCost
	service := attendance.NewService(&cfg, db)

	account, err := service.Register(ctx, "1000001", "password123")
	require.NoError(t, err)

	active, err := service.StartSession(ctx, account)
	require.NoError(t, err)
	expired, err := service.StartSession(ctx, account)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.AuthSession{}).Where("id = ?", expired.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)
	loggedOut, err := service.StartSession(ctx, account)
	require.NoError(t, err)
	require.NoError(t, service.EndSession(ctx, loggedOut.SessionToken))

	NewJanitor(&cfg, service, true).RunFull(ctx)

	var remaining []models.AuthSession
	require.NoError(t, db.Unscoped().Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, active.ID, remaining[0].ID)

	_, err = service.ResolveSession(ctx, active.SessionToken)
	assert.NoError(t, err)
}
