// Package highscore stores game scores and serves the top 10 of every game.
package highscore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/CLDWare/aanwezigheid/internal/metrics"
)

// TopLimit is the number of scores returned per game
const TopLimit = 10

var ErrValidation = errors.New("validation error")

// Score is a single submitted score
type Score struct {
	Name  string `json:"name"`
	Value int64  `json:"score"`
	Game  string `json:"-"`
}

// Storage is implemented by the database/sql and the gorm backend
type Storage interface {
	// Init creates the highscores table when it does not exist yet
	Init(ctx context.Context) error
	Insert(ctx context.Context, score Score) error
	// Top returns at most limit scores of game, highest first, equal scores in insertion order
	Top(ctx context.Context, game string, limit int) ([]Score, error)
	// Games returns every game with at least one score, alphabetically
	Games(ctx context.Context) ([]string, error)
}

type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

func (s *Service) RecordScore(ctx context.Context, name string, value int64, game string) error {
	name = strings.TrimSpace(name)
	game = strings.TrimSpace(game)
	if name == "" {
		return fmt.Errorf("%w: Missing required field (name)", ErrValidation)
	}
	if game == "" {
		return fmt.Errorf("%w: Missing required field (game)", ErrValidation)
	}

	if err := s.store.Insert(ctx, Score{Name: name, Value: value, Game: game}); err != nil {
		return fmt.Errorf("could not store score: %w", err)
	}
	metrics.ScoresRecorded.Inc()
	return nil
}

// TopScores never returns a nil slice, a game without scores gives an empty list
func (s *Service) TopScores(ctx context.Context, game string) ([]Score, error) {
	scores, err := s.store.Top(ctx, game, TopLimit)
	if err != nil {
		return nil, err
	}
	if scores == nil {
		scores = []Score{}
	}
	return scores, nil
}

func (s *Service) ListGames(ctx context.Context) ([]string, error) {
	games, err := s.store.Games(ctx)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []string{}
	}
	return games, nil
}

// Message returns the part of a validation error that is shown to the client
func Message(err error) string {
	if rest, ok := strings.CutPrefix(err.Error(), ErrValidation.Error()+": "); ok {
		return rest
	}
	return err.Error()
}
