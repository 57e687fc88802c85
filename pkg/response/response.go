// Package response writes the plain JSON bodies of the highscore server.
// The attendance api uses gecho envelopes instead.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/CLDWare/aanwezigheid/pkg/logger"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Result is the body answering a write, error is empty on success
type Result struct {
	Result string `json:"result"`
	Error  string `json:"error"`
}

// GamesResponse answers GET /highscores
type GamesResponse struct {
	Games []string `json:"games"`
}

// ScoreEntry is one line of a top 10
type ScoreEntry struct {
	Name  string `json:"name"`
	Score int64  `json:"score"`
}

// ScoresResponse answers GET /highscores/{game}
type ScoresResponse struct {
	Game   string       `json:"game"`
	Scores []ScoreEntry `json:"scores"`
}

// JSON writes data as the json body with the given status code
func JSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Err("could not write response:", err)
	}
}

// Success writes a 200 json response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// OK writes {"result": "ok", "error": ""}
func OK(w http.ResponseWriter) {
	JSON(w, http.StatusOK, Result{Result: ResultOK})
}

// Error writes {"result": "error", "error": message}
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, Result{Result: ResultError, Error: message})
}
