package economy

import (
	"context"
	"fmt"

	"github.com/palemoky/infinity-box/internal/api"
	"github.com/palemoky/infinity-box/internal/apperrors"
	"github.com/palemoky/infinity-box/internal/logger"
)

// ErrNoToken is the UpdateResult.Error reported without a credential.
const ErrNoToken = "No token"

// UpdatePlayerBalance applies a round to the local ledger, persists it, and
// pushes the delta to the backend.
//
// The local ledger is updated before the backend call. If that call fails the
// ledger keeps the round and an error is returned; Reconcile reports the
// resulting drift. On success only the cached profile balance takes the
// server's value, the session's CurrentBalance stays the local projection.
//
// Only one update may be in flight; overlapping calls get ErrUpdateInFlight.
// A nil result or one with negative or non-finite amounts is rejected with
// ErrInvalidAmount before anything changes.
func (e *Engine) UpdatePlayerBalance(ctx context.Context, result *GameResult) (*UpdateResult, error) {
	if !validResult(result) {
		return nil, apperrors.ErrInvalidAmount
	}

	token := e.tokens.Token()
	if token == "" {
		return &UpdateResult{Success: false, Error: ErrNoToken}, nil
	}

	if !e.updating.CompareAndSwap(false, true) {
		return nil, apperrors.ErrUpdateInFlight
	}
	defer e.updating.Store(false)

	if e.GetCurrentSession() == nil {
		gameType := result.GameType
		if gameType == "" {
			gameType = GameUnknown
		}
		if _, err := e.StartGameSession(ctx, gameType); err != nil {
			return nil, fmt.Errorf("update balance: %w", err)
		}
	}

	change := result.BalanceChange()

	e.mu.Lock()
	if e.session == nil {
		// Ended while the session was being opened.
		e.mu.Unlock()
		return nil, apperrors.ErrSessionNotInitialized
	}
	e.session.CurrentBalance += change
	e.session.TotalSpent += result.LossAmount
	e.session.TotalWon += result.WinAmount
	e.session.GamesPlayed++
	snapshot := *e.session
	key := e.sessionKey
	e.mu.Unlock()

	e.save(ctx, key, &snapshot)

	gameType := result.GameType
	if gameType == "" {
		gameType = snapshot.GameType
	}
	resp, err := e.server.UpdateBalance(ctx, token, &api.UpdateBalanceRequest{
		BalanceChange: change,
		GameType:      string(gameType),
		SessionID:     snapshot.SessionID,
		GameResult:    result,
	})
	if err != nil {
		logger.LogError("Balance update for session %s failed: %v", snapshot.SessionID, err)
		return nil, fmt.Errorf("update balance: %w", err)
	}

	e.mu.Lock()
	if e.player == nil {
		e.player = &PlayerData{}
	}
	e.player.Balance = resp.NewBalance
	e.mu.Unlock()

	return &UpdateResult{
		Success:    true,
		NewBalance: resp.NewBalance,
		Change:     change,
	}, nil
}

func validResult(r *GameResult) bool {
	if r == nil {
		return false
	}
	return isFinite(r.WinAmount) && isFinite(r.LossAmount) && r.WinAmount >= 0 && r.LossAmount >= 0
}
