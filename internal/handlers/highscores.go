package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CLDWare/aanwezigheid/internal/highscore"
	"github.com/CLDWare/aanwezigheid/pkg/logger"
	"github.com/CLDWare/aanwezigheid/pkg/response"
)

// HighscoreHandler serves the highscore api. It answers with plain json, games expect that shape.
type HighscoreHandler struct {
	service *highscore.Service
}

func NewHighscoreHandler(service *highscore.Service) *HighscoreHandler {
	return &HighscoreHandler{service: service}
}

type postScoreBody struct {
	Name  string `json:"name"`
	Score *int64 `json:"score"`
}

// handles GET /highscores
func (h *HighscoreHandler) GetGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.ListGames(r.Context())
	if err != nil {
		logger.Err(err)
		response.Error(w, http.StatusInternalServerError, "Could not list games")
		return
	}
	response.Success(w, response.GamesResponse{Games: games})
}

// handles GET /highscores/{game}
func (h *HighscoreHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	game := r.PathValue("game")
	scores, err := h.service.TopScores(r.Context(), game)
	if err != nil {
		logger.Err(err)
		response.Error(w, http.StatusInternalServerError, "Could not list scores")
		return
	}

	entries := make([]response.ScoreEntry, 0, len(scores))
	for _, score := range scores {
		entries = append(entries, response.ScoreEntry{Name: score.Name, Score: score.Value})
	}
	response.Success(w, response.ScoresResponse{Game: game, Scores: entries})
}

// handles POST /highscores/{game}
func (h *HighscoreHandler) PostScore(w http.ResponseWriter, r *http.Request) {
	var body postScoreBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if body.Score == nil {
		response.Error(w, http.StatusBadRequest, "Missing required field (score)")
		return
	}

	err := h.service.RecordScore(r.Context(), body.Name, *body.Score, r.PathValue("game"))
	if errors.Is(err, highscore.ErrValidation) {
		response.Error(w, http.StatusBadRequest, highscore.Message(err))
		return
	} else if err != nil {
		logger.Err(err)
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.OK(w)
}
