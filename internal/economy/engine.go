// Package economy runs the game economy for one player: session bookkeeping,
// round outcomes, and balance reconciliation with the backend.
//
// The backend owns the real balance. The engine keeps an optimistic local
// ledger per session, persists it after every change, and pushes each round's
// delta to the backend.
package economy

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/infinity-box/internal/api"
	"github.com/palemoky/infinity-box/internal/apperrors"
	"github.com/palemoky/infinity-box/internal/auth"
	"github.com/palemoky/infinity-box/internal/logger"
	"github.com/palemoky/infinity-box/internal/storage"
)

const defaultAutosaveInterval = 30 * time.Second

// Server is the backend the engine reconciles against.
type Server interface {
	GetProfile(ctx context.Context, token string) (*api.Profile, error)
	UpdateBalance(ctx context.Context, token string, req *api.UpdateBalanceRequest) (*api.UpdateBalanceResponse, error)
	EndSession(ctx context.Context, token string, summary any) error
	GetPlayerStats(ctx context.Context, token string) (map[string]any, error)
}

// SessionStore persists the session record for a player.
type SessionStore interface {
	Save(ctx context.Context, player string, data *storage.SessionData) error
	Load(ctx context.Context, player string) (*storage.SessionData, error)
	Delete(ctx context.Context, player string) error
}

// Options tune an Engine. Zero values select defaults.
type Options struct {
	Policy           Policy
	Random           RandomSource
	AutosaveInterval time.Duration
	Now              func() time.Time
	NewSessionID     func() string
}

// Engine is the economy for one player. Construct it once per host
// application and share it between game screens.
type Engine struct {
	server Server
	store  SessionStore
	tokens auth.TokenSource

	policy           Policy
	rng              RandomSource
	autosaveInterval time.Duration
	now              func() time.Time
	newSessionID     func() string

	mu         sync.RWMutex
	session    *GameSession
	sessionKey string // store key fixed when the session is opened or restored
	player     *PlayerData

	updating atomic.Bool

	closeOnce sync.Once
	done      chan struct{}
}

// NewEngine creates an engine.
func NewEngine(server Server, store SessionStore, tokens auth.TokenSource, opts Options) *Engine {
	e := &Engine{
		server:           server,
		store:            store,
		tokens:           tokens,
		policy:           opts.Policy,
		rng:              opts.Random,
		autosaveInterval: opts.AutosaveInterval,
		now:              opts.Now,
		newSessionID:     opts.NewSessionID,
		done:             make(chan struct{}),
	}
	if e.policy == (Policy{}) {
		e.policy = DefaultPolicy()
	}
	if e.rng == nil {
		e.rng = globalRandom{}
	}
	if e.autosaveInterval <= 0 {
		e.autosaveInterval = defaultAutosaveInterval
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newSessionID == nil {
		e.newSessionID = newSessionID
	}
	return e
}

// newSessionID returns a time-ordered random token.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Policy returns the engine's economic limits.
func (e *Engine) Policy() Policy {
	return e.policy
}

// GetCurrentSession returns a copy of the active session, or nil.
func (e *Engine) GetCurrentSession() *GameSession {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.session == nil {
		return nil
	}
	s := *e.session
	return &s
}

// GetPlayerData returns a copy of the cached profile, or nil before the first fetch.
func (e *Engine) GetPlayerData() *PlayerData {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.player == nil {
		return nil
	}
	p := *e.player
	return &p
}

// CalculateGameResult draws a random value and evaluates the round against
// the active session.
func (e *Engine) CalculateGameResult(playerScore float64, gameType GameType, betAmount float64) (*GameResult, error) {
	if !isFinite(playerScore) || !isFinite(betAmount) || betAmount < 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	e.mu.RLock()
	s := e.session
	if s == nil {
		e.mu.RUnlock()
		return nil, apperrors.ErrSessionNotInitialized
	}
	in := RoundInput{
		PlayerScore:    playerScore,
		GameType:       gameType,
		BetAmount:      betAmount,
		InitialBalance: s.InitialBalance,
		CurrentBalance: s.CurrentBalance,
		MaxWinAllowed:  s.MaxWinAllowed,
	}
	e.mu.RUnlock()

	in.Draw = e.rng.Float64()
	res := e.policy.Evaluate(in)
	return &res, nil
}

// CanPlay reports whether a round with betAmount may start, and why not.
func (e *Engine) CanPlay(betAmount float64) (allowed bool, reason string) {
	e.mu.RLock()
	s := e.session
	var balance float64
	if s != nil {
		balance = s.CurrentBalance
	}
	e.mu.RUnlock()

	if s == nil {
		return false, apperrors.ErrSessionNotInitialized.Message
	}
	if err := e.policy.CheckBet(betAmount, balance); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// GetPlayerStats fetches the stats payload. Any failure yields nil.
func (e *Engine) GetPlayerStats(ctx context.Context) map[string]any {
	token := e.tokens.Token()
	if token == "" {
		return nil
	}
	stats, err := e.server.GetPlayerStats(ctx, token)
	if err != nil {
		logger.LogError("Failed to fetch player stats: %v", err)
		return nil
	}
	return stats
}

// Reconcile refetches the authoritative balance and reports how far the local
// session projection has drifted from it. The session ledger is not touched.
func (e *Engine) Reconcile(ctx context.Context) (*Drift, error) {
	token := e.tokens.Token()
	if token == "" {
		return nil, apperrors.ErrAuthRequired
	}
	profile, err := e.server.GetProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.player = playerFromProfile(profile)

	d := &Drift{ServerBalance: e.player.Balance, LocalBalance: e.player.Balance}
	if e.session != nil {
		d.LocalBalance = e.session.CurrentBalance
	}
	d.Difference = d.ServerBalance - d.LocalBalance
	return d, nil
}

// Close stops autosave and flushes the session one last time.
func (e *Engine) Close(ctx context.Context) {
	e.closeOnce.Do(func() { close(e.done) })
	e.Flush(ctx)
}

func playerFromProfile(p *api.Profile) *PlayerData {
	return &PlayerData{
		ID:       p.ID,
		Username: p.Username,
		Balance:  p.Balance(),
	}
}

// playerKey namespaces storage by the credential's subject when it has one.
// It is resolved once per session; save and clear use the pinned key.
func (e *Engine) playerKey() string {
	sub, err := auth.Subject(e.tokens.Token())
	if err != nil {
		return ""
	}
	return sub
}
