package highscore

import (
	"context"
	"fmt"

	models "github.com/CLDWare/aanwezigheid/pkg/db"
	"gorm.io/gorm"
)

// GormStore keeps scores in the same highscores table through gorm
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Init(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&models.Highscore{})
}

func (s *GormStore) Insert(ctx context.Context, score Score) error {
	row := models.Highscore{
		Name:  score.Name,
		Score: score.Value,
		Game:  score.Game,
	}
	return gorm.G[models.Highscore](s.db).Create(ctx, &row)
}

func (s *GormStore) Top(ctx context.Context, game string, limit int) ([]Score, error) {
	rows, err := gorm.G[models.Highscore](s.db).
		Where("game = ?", game).
		Order("score DESC, id ASC").
		Limit(limit).
		Find(ctx)
	if err != nil {
		return nil, err
	}

	scores := make([]Score, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, Score{Name: row.Name, Value: row.Score, Game: row.Game})
	}
	return scores, nil
}

func (s *GormStore) Games(ctx context.Context) ([]string, error) {
	games := []string{}
	err := s.db.WithContext(ctx).Model(&models.Highscore{}).Distinct("game").Order("game").Pluck("game", &games).Error
	return games, err
}

// NewStore builds the storage backend named by HIGHSCORE_BACKEND
func NewStore(backend, path string) (Storage, error) {
	switch backend {
	case "sql", "":
		return NewSQLStore(path)
	case "gorm":
		db, err := models.Open(path)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("unknown highscore backend %q", backend)
	}
}
