package economy

import (
	"math"
	"strconv"

	"github.com/palemoky/infinity-box/internal/apperrors"
	"github.com/palemoky/infinity-box/internal/config"
)

// Policy holds the fixed economic limits. It never changes per session.
type Policy struct {
	MaxWinPercentage float64
	MinBetAmount     float64
	MaxBetAmount     float64
	HouseEdge        float64
	SessionWinCap    float64
	BetCapMultiplier float64
}

// DefaultPolicy returns the stock limits.
func DefaultPolicy() Policy {
	return Policy{
		MaxWinPercentage: 0.10,
		MinBetAmount:     10,
		MaxBetAmount:     1000,
		HouseEdge:        0.05,
		SessionWinCap:    10000,
		BetCapMultiplier: 1.10,
	}
}

// PolicyFromConfig builds a policy from the economy config section.
func PolicyFromConfig(cfg config.EconomyConfig) Policy {
	return Policy{
		MaxWinPercentage: cfg.MaxWinPercentage,
		MinBetAmount:     cfg.MinBetAmount,
		MaxBetAmount:     cfg.MaxBetAmount,
		HouseEdge:        cfg.HouseEdge,
		SessionWinCap:    cfg.SessionWinCap,
		BetCapMultiplier: cfg.BetCapMultiplier,
	}
}

// SessionCeiling is the payout ceiling fixed at session start:
// balance*MaxWinPercentage, clamped to SessionWinCap, and to
// bet*BetCapMultiplier when a bet is declared.
func (p Policy) SessionCeiling(balance, bet float64) float64 {
	ceiling := balance * p.MaxWinPercentage
	if p.SessionWinCap > 0 && ceiling > p.SessionWinCap {
		ceiling = p.SessionWinCap
	}
	if bet > 0 {
		ceiling = math.Min(ceiling, bet*p.BetCapMultiplier)
	}
	if ceiling < 0 {
		return 0
	}
	return ceiling
}

// SkillFactor normalizes a raw score into [0,1] with a per-game curve.
// memory-match expects moves used, so fewer moves score higher.
func SkillFactor(score float64, gameType GameType) float64 {
	var f float64
	switch gameType {
	case GameSpeedChallenge:
		f = score / 100
	case GameMindPuzzles:
		f = score / 50
	case GameMemoryMatch:
		f = (100 - score) / 100
	case GameFruitCatching:
		f = score / 200
	default:
		return 0.5
	}
	return math.Max(0, math.Min(f, 1.0))
}

// EconomicFactor nudges win probability by how far the session balance has
// moved: below 30% of the start it helps, above 200% it throttles.
func EconomicFactor(current, initial float64) float64 {
	if initial == 0 {
		switch {
		case current > 0:
			return 0.3
		case current < 0:
			return 0.6
		default:
			return 0.5
		}
	}
	ratio := current / initial
	switch {
	case ratio < 0.3:
		return 0.6
	case ratio > 2.0:
		return 0.3
	default:
		return 0.5
	}
}

// RoundInput is everything a round outcome depends on.
type RoundInput struct {
	PlayerScore    float64
	GameType       GameType
	BetAmount      float64
	Draw           float64 // uniform in [0,1)
	InitialBalance float64
	CurrentBalance float64
	MaxWinAllowed  float64
}

// Evaluate computes a round outcome. It has no side effects; identical input
// always yields identical output.
//
// Non-finite bets and scores count as zero.
func (p Policy) Evaluate(in RoundInput) GameResult {
	if !isFinite(in.BetAmount) || in.BetAmount < 0 {
		in.BetAmount = 0
	}
	if !isFinite(in.PlayerScore) {
		in.PlayerScore = 0
	}
	skill := SkillFactor(in.PlayerScore, in.GameType)
	economic := EconomicFactor(in.CurrentBalance, in.InitialBalance)

	winProbability := 0.6*skill + 0.3*in.Draw + 0.1*economic
	adjusted := winProbability * (1 - p.HouseEdge)

	res := GameResult{
		GameType:       in.GameType,
		PlayerScore:    in.PlayerScore,
		BetAmount:      in.BetAmount,
		Probability:    adjusted,
		SkillFactor:    skill,
		EconomicFactor: economic,
	}

	// Exactly 0.5 loses.
	if adjusted > 0.5 {
		res.IsWin = true
		payout := in.BetAmount * (1 + adjusted*p.MaxWinPercentage*2)
		res.WinAmount = math.Min(payout, in.MaxWinAllowed)
	} else {
		res.LossAmount = in.BetAmount
	}
	return res
}

// CheckBet validates a wager against the balance and bet limits.
// It returns nil when the bet is allowed.
func (p Policy) CheckBet(bet, balance float64) error {
	switch {
	case !isFinite(bet) || bet < 0:
		return &limitError{err: apperrors.ErrInvalidAmount, reason: "invalid bet"}
	case bet > balance:
		return apperrors.ErrInsufficientBalance
	case bet < p.MinBetAmount:
		return &limitError{err: apperrors.ErrBetTooLow, reason: "minimum bet is " + formatAmount(p.MinBetAmount)}
	case bet > p.MaxBetAmount:
		return &limitError{err: apperrors.ErrBetTooHigh, reason: "maximum bet is " + formatAmount(p.MaxBetAmount)}
	}
	return nil
}

// limitError names the violated bound while still matching its sentinel.
type limitError struct {
	err    *apperrors.EconomyError
	reason string
}

func (e *limitError) Error() string { return e.reason }
func (e *limitError) Unwrap() error { return e.err }

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
