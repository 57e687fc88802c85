package highscore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS highscores (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	score INTEGER NOT NULL,
	game TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_highscores_game ON highscores(game);`

// SQLStore talks to sqlite through database/sql. Every call opens and closes its own connection.
type SQLStore struct {
	path string
}

func NewSQLStore(path string) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}
	return &SQLStore{path: path}, nil
}

func (s *SQLStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open highscore database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func (s *SQLStore) Init(ctx context.Context) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create highscores table: %w", err)
	}
	return nil
}

func (s *SQLStore) Insert(ctx context.Context, score Score) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO highscores (name, score, game) VALUES (?, ?, ?)`,
		score.Name, score.Value, score.Game)
	return err
}

func (s *SQLStore) Top(ctx context.Context, game string, limit int) ([]Score, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT name, score, game FROM highscores WHERE game = ? ORDER BY score DESC, id ASC LIMIT ?`,
		game, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := []Score{}
	for rows.Next() {
		var sc Score
		if err := rows.Scan(&sc.Name, &sc.Value, &sc.Game); err != nil {
			return nil, err
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

func (s *SQLStore) Games(ctx context.Context) ([]string, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT DISTINCT game FROM highscores ORDER BY game`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []string{}
	for rows.Next() {
		var game string
		if err := rows.Scan(&game); err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}
