package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// SessionData is the persisted form of a game session.
type SessionData struct {
	SessionID      string  `json:"sessionId"`
	GameType       string  `json:"gameType"`
	StartTime      int64   `json:"startTime"`
	EndTime        int64   `json:"endTime,omitempty"`
	InitialBalance float64 `json:"initialBalance"`
	CurrentBalance float64 `json:"currentBalance"`
	TotalSpent     float64 `json:"totalSpent"`
	TotalWon       float64 `json:"totalWon"`
	GamesPlayed    int     `json:"gamesPlayed"`
	MaxWinAllowed  float64 `json:"maxWinAllowed"`
	BetAmount      float64 `json:"betAmount"`
}

// SessionStore saves one session record per key.
type SessionStore struct {
	backend Backend
	key     string
}

// NewSessionStore stores sessions under key in backend.
func NewSessionStore(backend Backend, key string) *SessionStore {
	return &SessionStore{backend: backend, key: key}
}

// Key returns the storage key for a player. An empty player maps to the base key.
func (s *SessionStore) Key(player string) string {
	if player == "" {
		return s.key
	}
	return s.key + ":" + player
}

// Save overwrites the stored session.
func (s *SessionStore) Save(ctx context.Context, player string, data *SessionData) error {
	if data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.backend.Set(ctx, s.Key(player), raw)
}

// Load returns the stored session, or (nil, nil) when there is none.
func (s *SessionStore) Load(ctx context.Context, player string) (*SessionData, error) {
	raw, err := s.backend.Get(ctx, s.Key(player))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var data SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &data, nil
}

// Delete removes the stored session.
func (s *SessionStore) Delete(ctx context.Context, player string) error {
	return s.backend.Delete(ctx, s.Key(player))
}
