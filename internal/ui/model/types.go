// Package model defines the arcade state machine driven by bubbletea.
package model

import (
	"context"

	"github.com/palemoky/infinity-box/internal/economy"
	"github.com/palemoky/infinity-box/internal/sound"
)

// Phase is the screen currently shown.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseStarting
	PhaseBet
	PhaseScore
	PhaseSettling
	PhaseResult
	PhaseStats
	PhaseSummary
)

// Engine is the part of the economy the arcade drives.
type Engine interface {
	Policy() economy.Policy
	StartGameSession(ctx context.Context, gameType economy.GameType) (*economy.GameSession, error)
	GetCurrentSession() *economy.GameSession
	GetPlayerData() *economy.PlayerData
	CanPlay(betAmount float64) (bool, string)
	CalculateGameResult(playerScore float64, gameType economy.GameType, betAmount float64) (*economy.GameResult, error)
	UpdatePlayerBalance(ctx context.Context, result *economy.GameResult) (*economy.UpdateResult, error)
	EndGameSession(ctx context.Context) *economy.SessionSummary
	GetPlayerStats(ctx context.Context) map[string]any
	Reconcile(ctx context.Context) (*economy.Drift, error)
}

// Sounds plays audio cues.
type Sounds interface {
	Play(cue sound.Cue)
}

// --- Tea Messages ---

// SessionStartedMsg reports the outcome of opening or resuming a session.
type SessionStartedMsg struct {
	Session *economy.GameSession
	Err     error
}

// RoundSettledMsg reports a played round and its balance update.
type RoundSettledMsg struct {
	Result *economy.GameResult
	Update *economy.UpdateResult
	Err    error
}

// StatsMsg carries the fetched player stats; nil when unavailable.
type StatsMsg struct {
	Stats map[string]any
}

// SessionEndedMsg carries the summary of the ended session.
type SessionEndedMsg struct {
	Summary *economy.SessionSummary
}

// DriftMsg carries a reconciliation report.
type DriftMsg struct {
	Drift *economy.Drift
	Err   error
}

// ClearErrorMsg clears the error line.
type ClearErrorMsg struct{}
