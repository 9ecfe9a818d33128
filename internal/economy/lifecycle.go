package economy

import (
	"context"
	"fmt"

	"github.com/palemoky/infinity-box/internal/apperrors"
	"github.com/palemoky/infinity-box/internal/logger"
)

// InitializeGameSession fetches the current balance and starts a fresh
// session, replacing any session already in memory.
func (e *Engine) InitializeGameSession(ctx context.Context, gameType GameType, betAmount float64) (*GameSession, error) {
	s, err := e.openSession(ctx, gameType, betAmount)
	if err != nil {
		return nil, fmt.Errorf("initialize session: %w", err)
	}
	return s, nil
}

// StartGameSession resumes the session in memory or in the store when there
// is one, whatever its game type, and otherwise opens a new one.
func (e *Engine) StartGameSession(ctx context.Context, gameType GameType) (*GameSession, error) {
	if s := e.GetCurrentSession(); s != nil {
		return s, nil
	}

	if s, key := e.restore(ctx); s != nil {
		e.mu.Lock()
		if e.session == nil {
			e.session = s
			e.sessionKey = key
		}
		cur := *e.session
		e.mu.Unlock()
		logger.LogInfo("Restored session %s (%s, %d rounds)", cur.SessionID, cur.GameType, cur.GamesPlayed)
		return &cur, nil
	}

	s, err := e.openSession(ctx, gameType, 0)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return s, nil
}

// openSession is the single place sessions are created.
func (e *Engine) openSession(ctx context.Context, gameType GameType, betAmount float64) (*GameSession, error) {
	token := e.tokens.Token()
	if token == "" {
		return nil, apperrors.ErrAuthRequired
	}

	profile, err := e.server.GetProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	player := playerFromProfile(profile)
	key := e.playerKey()

	if gameType == "" {
		gameType = GameUnknown
	}
	s := &GameSession{
		SessionID:      e.newSessionID(),
		GameType:       gameType,
		StartTime:      e.now().UnixMilli(),
		InitialBalance: player.Balance,
		CurrentBalance: player.Balance,
		MaxWinAllowed:  e.policy.SessionCeiling(player.Balance, betAmount),
		BetAmount:      betAmount,
	}

	e.mu.Lock()
	e.session = s
	e.sessionKey = key
	e.player = player
	snapshot := *s
	e.mu.Unlock()

	e.save(ctx, key, &snapshot)
	logger.LogInfo("Opened session %s (%s) balance=%v ceiling=%v", s.SessionID, s.GameType, s.InitialBalance, s.MaxWinAllowed)
	return &snapshot, nil
}

// EndGameSession posts the session summary and clears local state. Posting
// failures are logged; the session is cleared regardless. Returns nil when
// no session was active.
func (e *Engine) EndGameSession(ctx context.Context) *SessionSummary {
	e.mu.RLock()
	if e.session == nil {
		e.mu.RUnlock()
		return nil
	}
	s := *e.session
	key := e.sessionKey
	e.mu.RUnlock()

	s.EndTime = e.now().UnixMilli()
	summary := &SessionSummary{
		GameSession: s,
		Duration:    s.EndTime - s.StartTime,
		NetResult:   s.NetResult(),
	}

	if token := e.tokens.Token(); token != "" {
		if err := e.server.EndSession(ctx, token, summary); err != nil {
			logger.LogError("Failed to report session %s end: %v", s.SessionID, err)
		}
	} else {
		logger.LogError("Session %s ended without a credential, summary not reported", s.SessionID)
	}

	e.clear(ctx, key)

	e.mu.Lock()
	e.session = nil
	e.sessionKey = ""
	e.mu.Unlock()

	logger.LogInfo("Ended session %s: rounds=%d net=%v", s.SessionID, s.GamesPlayed, summary.NetResult)
	return summary
}
