// Package api is the HTTP client for the game backend endpoints used by the
// economy engine.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/palemoky/infinity-box/internal/apperrors"
)

// Endpoint paths
const (
	PathProfile       = "/api/users/profile"
	PathUpdateBalance = "/api/users/update-balance"
	PathSessionEnd    = "/api/games/session-end"
	PathPlayerStats   = "/api/games/player-stats"
)

const maxErrorBody = 512

// Profile is the player profile payload. The backend has shipped the balance
// as both "coins" and "goldCoins"; either may be absent.
type Profile struct {
	ID        string   `json:"id,omitempty"`
	Username  string   `json:"username,omitempty"`
	Coins     *float64 `json:"coins,omitempty"`
	GoldCoins *float64 `json:"goldCoins,omitempty"`
}

// Balance prefers goldCoins and falls back to coins.
func (p *Profile) Balance() float64 {
	switch {
	case p.GoldCoins != nil:
		return *p.GoldCoins
	case p.Coins != nil:
		return *p.Coins
	default:
		return 0
	}
}

// UpdateBalanceRequest body of POST /api/users/update-balance
type UpdateBalanceRequest struct {
	BalanceChange float64 `json:"balanceChange"`
	GameType      string  `json:"gameType"`
	SessionID     string  `json:"sessionId"`
	GameResult    any     `json:"gameResult"`
}

// UpdateBalanceResponse authoritative balance after the update
type UpdateBalanceResponse struct {
	NewBalance float64 `json:"newBalance"`
}

// Client talks to the backend with a bearer credential.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. timeout 0 leaves requests bounded only by ctx.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetProfile fetches the current player profile.
func (c *Client) GetProfile(ctx context.Context, token string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, PathProfile, token, nil, &p, apperrors.OpFetch); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateBalance posts a balance delta and returns the server's new balance.
func (c *Client) UpdateBalance(ctx context.Context, token string, req *UpdateBalanceRequest) (*UpdateBalanceResponse, error) {
	var out UpdateBalanceResponse
	if err := c.do(ctx, http.MethodPost, PathUpdateBalance, token, req, &out, apperrors.OpUpdate); err != nil {
		return nil, err
	}
	return &out, nil
}

// EndSession posts the session summary.
func (c *Client) EndSession(ctx context.Context, token string, summary any) error {
	return c.do(ctx, http.MethodPost, PathSessionEnd, token, summary, nil, apperrors.OpUpdate)
}

// GetPlayerStats fetches the stats payload as decoded JSON.
func (c *Client) GetPlayerStats(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	if err := c.do(ctx, http.MethodGet, PathPlayerStats, token, nil, &out, apperrors.OpFetch); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any, op string) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s body: %w", path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &apperrors.UpstreamError{
			Op:         op,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
