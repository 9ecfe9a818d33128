package economy

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/infinity-box/internal/api"
	"github.com/palemoky/infinity-box/internal/auth"
	"github.com/palemoky/infinity-box/internal/devserver"
	"github.com/palemoky/infinity-box/internal/storage"
)

func TestEngine_AgainstDevServer(t *testing.T) {
	t.Parallel()

	dev := devserver.New(devserver.NewLedger(1000), devserver.NewTokenIssuer("integration"))
	hs := httptest.NewServer(dev.Handler())
	t.Cleanup(hs.Close)

	token, err := dev.Login("alice")
	require.NoError(t, err)

	backend, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "box.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	store := storage.NewSessionStore(backend, "gameSession")

	e := NewEngine(api.NewClient(hs.URL, 5*time.Second), store, auth.StaticToken(token), Options{
		Random: NewSeededRandom(1, 2),
	})
	ctx := context.Background()
	t.Cleanup(func() { e.Close(ctx) })

	s, err := e.InitializeGameSession(ctx, GameSpeedChallenge, 100)
	require.NoError(t, err)
	assert.InDelta(t, 1000, s.InitialBalance, 1e-9)
	assert.InDelta(t, 100, s.MaxWinAllowed, 1e-9)

	for i := 0; i < 5; i++ {
		ok, reason := e.CanPlay(100)
		require.True(t, ok, reason)

		res, err := e.CalculateGameResult(float64(20*i), GameSpeedChallenge, 100)
		require.NoError(t, err)

		upd, err := e.UpdatePlayerBalance(ctx, res)
		require.NoError(t, err)
		require.True(t, upd.Success)

		acct, err := dev.Ledger().Get("alice")
		require.NoError(t, err)
		assert.InDelta(t, acct.Coins, upd.NewBalance, 1e-9)
	}

	drift, err := e.Reconcile(ctx)
	require.NoError(t, err)
	assert.True(t, drift.InSync(), "drift %+v", drift)

	saved, err := store.Load(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 5, saved.GamesPlayed)

	stats := e.GetPlayerStats(ctx)
	require.NotNil(t, stats)
	assert.InDelta(t, 5, stats["gamesPlayed"], 1e-9)

	summary := e.EndGameSession(ctx)
	require.NotNil(t, summary)
	require.Len(t, dev.Summaries(), 1)
	assert.Equal(t, s.SessionID, dev.Summaries()[0]["sessionId"])
	assert.InDelta(t, summary.NetResult, dev.Summaries()[0]["netResult"], 1e-9)

	saved, err = store.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, saved)
}
