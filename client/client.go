// Package client is the data layer consumed by RachaPay frontends. It wraps
// the REST API and derives the view collections (current week, past/future,
// debt totals) from full fetches; nothing is patched incrementally.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/rachapay/platform/internal/domain"
)

// APIError is a non-2xx response decoded into the service's error shape.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// Client talks to the RachaPay API.
type Client struct {
	baseURL string
	logger  *slog.Logger
	http    *http.Client
	token   string
}

// New creates a new API client.
func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		logger:  logger,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken attaches a login-gate token to subsequent requests. The API does
// not require it; frontends carry it for the gate only.
func (c *Client) SetToken(token string) {
	c.token = token
}

// GameDetail is the shape of GET /games/{id}.
type GameDetail struct {
	ID        int64                  `json:"id"`
	Date      string                 `json:"date"`
	CreatedAt time.Time              `json:"createdAt"`
	Players   []domain.PaymentRecord `json:"players"`
}

// CreatedGame is the shape of a successful POST /games.
type CreatedGame struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	PlayerCount int    `json:"playerCount"`
}

// AddedPlayer is the shape of a successful POST /games/{id}/players.
type AddedPlayer struct {
	ID     int64                `json:"id"`
	GameID int64                `json:"gameId"`
	Name   string               `json:"name"`
	Status domain.PaymentStatus `json:"status"`
}

// LoginResult is the shape of a successful POST /auth/login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HealthStatus is the shape of GET /health.
type HealthStatus struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}

// ListGames fetches all games with their computed counts, newest date first.
func (c *Client) ListGames(ctx context.Context) ([]domain.GameSummary, error) {
	var games []domain.GameSummary
	if err := c.do(ctx, http.MethodGet, "/games", nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// GetGame fetches one game and its payment records.
func (c *Client) GetGame(ctx context.Context, gameID int64) (*GameDetail, error) {
	var detail GameDetail
	path := fmt.Sprintf("/games/%d", gameID)
	if err := c.do(ctx, http.MethodGet, path, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateGame creates a game with its initial player list.
func (c *Client) CreateGame(ctx context.Context, date string, players []domain.PlayerEntry) (*CreatedGame, error) {
	body := map[string]interface{}{"date": date, "players": players}
	var created CreatedGame
	if err := c.do(ctx, http.MethodPost, "/games", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteGame removes a game and, by cascade, its payment records.
func (c *Client) DeleteGame(ctx context.Context, gameID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/games/%d", gameID), nil, nil)
}

// UpdatePaymentStatus sets a player's paid/owing status for one game.
func (c *Client) UpdatePaymentStatus(ctx context.Context, gameID int64, playerName string, status domain.PaymentStatus) error {
	path := fmt.Sprintf("/games/%d/players/%s", gameID, url.PathEscape(playerName))
	body := map[string]interface{}{"status": status}
	return c.do(ctx, http.MethodPut, path, body, nil)
}

// AddPlayer adds a player to an existing game. An empty status defaults to
// owing server-side.
func (c *Client) AddPlayer(ctx context.Context, gameID int64, playerName string, status domain.PaymentStatus) (*AddedPlayer, error) {
	path := fmt.Sprintf("/games/%d/players", gameID)
	body := map[string]interface{}{"name": playerName}
	if status != "" {
		body["status"] = status
	}
	var added AddedPlayer
	if err := c.do(ctx, http.MethodPost, path, body, &added); err != nil {
		return nil, err
	}
	return &added, nil
}

// RemovePlayer deletes a player's payment record from a game.
func (c *Client) RemovePlayer(ctx context.Context, gameID int64, playerName string) error {
	path := fmt.Sprintf("/games/%d/players/%s", gameID, url.PathEscape(playerName))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ListDebts fetches aggregate debt per player, highest total first.
func (c *Client) ListDebts(ctx context.Context) ([]domain.PlayerDebt, error) {
	var debts []domain.PlayerDebt
	if err := c.do(ctx, http.MethodGet, "/debts", nil, &debts); err != nil {
		return nil, err
	}
	return debts, nil
}

// GetPlayerDebt fetches the owing games of one player. An unknown player
// yields zero totals, not an error.
func (c *Client) GetPlayerDebt(ctx context.Context, playerName string) (*domain.DebtDetail, error) {
	var detail domain.DebtDetail
	path := "/debts/" + url.PathEscape(playerName)
	if err := c.do(ctx, http.MethodGet, path, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Login exchanges gate credentials for a token and stores it on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// Health probes service liveness.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// do performs one JSON request. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Code = errBody.Code
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
