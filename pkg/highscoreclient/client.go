// Package highscoreclient is the client games use to talk to the highscore server
package highscoreclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/CLDWare/aanwezigheid/pkg/logger"
	"github.com/CLDWare/aanwezigheid/pkg/response"
)

// ErrUnreachable is returned when the highscore server can not be reached at all
var ErrUnreachable = errors.New("could not connect to highscore server")

// ResultError is returned when the server answered with a result other than "ok"
type ResultError struct {
	Result  string
	Message string
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("could not add highscore: %s", e.Message)
}

type Score struct {
	Name  string `json:"name"`
	Score int64  `json:"score"`
}

type Client struct {
	game       string
	baseURL    string
	httpClient *http.Client
	debug      bool
}

type Option func(*Client)

// WithDebug dumps every request and response to the debug log
func WithDebug() Option {
	return func(c *Client) { c.debug = true }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// New creates a client for one game, serverURL is like "http://127.0.0.1:5001"
func New(game, serverURL string, opts ...Option) *Client {
	c := &Client{
		game:       game,
		baseURL:    strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) gameURL() string {
	return c.baseURL + "/highscores/" + url.PathEscape(c.game)
}

// AddHighscore sends a new score of scorer for the game of the client
func (c *Client) AddHighscore(ctx context.Context, scorer string, score int64) error {
	body, err := json.Marshal(Score{Name: scorer, Score: score})
	if err != nil {
		return err
	}

	var result response.Result
	if err := c.do(ctx, http.MethodPost, c.gameURL(), bytes.NewReader(body), &result); err != nil {
		return err
	}
	if result.Result != response.ResultOK {
		return &ResultError{Result: result.Result, Message: result.Error}
	}
	return nil
}

// Highscores returns the top 10 of the game of the client
func (c *Client) Highscores(ctx context.Context) ([]Score, error) {
	var scores struct {
		Game   string  `json:"game"`
		Scores []Score `json:"scores"`
	}
	if err := c.do(ctx, http.MethodGet, c.gameURL(), nil, &scores); err != nil {
		return nil, err
	}
	return scores.Scores, nil
}

// Games returns every game known to the server
func (c *Client) Games(ctx context.Context) ([]string, error) {
	var games response.GamesResponse
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/highscores", nil, &games); err != nil {
		return nil, err
	}
	return games.Games, nil
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.debug {
		if dump, err := httputil.DumpRequestOut(req, true); err == nil {
			logger.Debug(string(dump))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w at %s: %w", ErrUnreachable, c.baseURL, err)
	}
	defer resp.Body.Close()

	if c.debug {
		if dump, err := httputil.DumpResponse(resp, true); err == nil {
			logger.Debug(string(dump))
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read highscore response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var result response.Result
		if err := json.Unmarshal(raw, &result); err == nil && result.Result != "" {
			return &ResultError{Result: result.Result, Message: result.Error}
		}
		return fmt.Errorf("highscore server error %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode highscore response: %w", err)
	}
	return nil
}
