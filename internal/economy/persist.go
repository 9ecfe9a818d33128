package economy

import (
	"context"
	"time"

	"github.com/palemoky/infinity-box/internal/logger"
	"github.com/palemoky/infinity-box/internal/storage"
)

// StartAutosave saves the active session periodically until ctx is done or
// the engine is closed.
func (e *Engine) StartAutosave(ctx context.Context) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.LogPanic(r)
			}
		}()

		ticker := time.NewTicker(e.autosaveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				e.Flush(ctx)
			case <-ctx.Done():
				return
			case <-e.done:
				return
			}
		}
	}()
}

// Flush saves the active session, if any. Safe to call repeatedly.
func (e *Engine) Flush(ctx context.Context) {
	e.mu.RLock()
	if e.session == nil {
		e.mu.RUnlock()
		return
	}
	s := *e.session
	key := e.sessionKey
	e.mu.RUnlock()

	e.save(ctx, key, &s)
}

// save overwrites the stored session under key. Failures are logged.
func (e *Engine) save(ctx context.Context, key string, s *GameSession) {
	if e.store == nil {
		return
	}
	if err := e.store.Save(ctx, key, toSessionData(s)); err != nil {
		logger.LogError("Failed to save session %s: %v", s.SessionID, err)
	}
}

// restore loads the current player's saved session and the key it lives under.
func (e *Engine) restore(ctx context.Context) (*GameSession, string) {
	key := e.playerKey()
	if e.store == nil {
		return nil, key
	}
	data, err := e.store.Load(ctx, key)
	if err != nil {
		logger.LogError("Failed to load saved session: %v", err)
		return nil, key
	}
	if data == nil {
		return nil, key
	}
	return fromSessionData(data), key
}

func (e *Engine) clear(ctx context.Context, key string) {
	if e.store == nil {
		return
	}
	if err := e.store.Delete(ctx, key); err != nil {
		logger.LogError("Failed to clear saved session: %v", err)
	}
}

func toSessionData(s *GameSession) *storage.SessionData {
	return &storage.SessionData{
		SessionID:      s.SessionID,
		GameType:       string(s.GameType),
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		InitialBalance: s.InitialBalance,
		CurrentBalance: s.CurrentBalance,
		TotalSpent:     s.TotalSpent,
		TotalWon:       s.TotalWon,
		GamesPlayed:    s.GamesPlayed,
		MaxWinAllowed:  s.MaxWinAllowed,
		BetAmount:      s.BetAmount,
	}
}

func fromSessionData(d *storage.SessionData) *GameSession {
	return &GameSession{
		SessionID:      d.SessionID,
		GameType:       GameType(d.GameType),
		StartTime:      d.StartTime,
		EndTime:        d.EndTime,
		InitialBalance: d.InitialBalance,
		CurrentBalance: d.CurrentBalance,
		TotalSpent:     d.TotalSpent,
		TotalWon:       d.TotalWon,
		GamesPlayed:    d.GamesPlayed,
		MaxWinAllowed:  d.MaxWinAllowed,
		BetAmount:      d.BetAmount,
	}
}
