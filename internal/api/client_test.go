package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/infinity-box/internal/apperrors"
)

func ptr(v float64) *float64 { return &v }

func TestProfile_Balance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile Profile
		want    float64
	}{
		{"gold coins only", Profile{GoldCoins: ptr(500)}, 500},
		{"coins only", Profile{Coins: ptr(300)}, 300},
		{"both prefers gold", Profile{Coins: ptr(300), GoldCoins: ptr(500)}, 500},
		{"neither", Profile{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, tt.profile.Balance(), 1e-9)
		})
	}
}

func TestClient_GetProfile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathProfile, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"u1","username":"alice","coins":1000}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	p, err := c.GetProfile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.InDelta(t, 1000, p.Balance(), 1e-9)
}

func TestClient_UpdateBalance(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.InDelta(t, -100, body["balanceChange"], 1e-9)
		assert.Equal(t, "lucky-boxes", body["gameType"])
		assert.Equal(t, "s1", body["sessionId"])
		assert.NotNil(t, body["gameResult"])

		_, _ = w.Write([]byte(`{"newBalance":900}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	out, err := c.UpdateBalance(context.Background(), "tok", &UpdateBalanceRequest{
		BalanceChange: -100,
		GameType:      "lucky-boxes",
		SessionID:     "s1",
		GameResult:    map[string]any{"isWin": false},
	})
	require.NoError(t, err)
	assert.InDelta(t, 900, out.NewBalance, 1e-9)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	_, err := c.GetProfile(ctx, "tok")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamFetch)

	_, err = c.UpdateBalance(ctx, "tok", &UpdateBalanceRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUpdate)

	var ue *apperrors.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusBadGateway, ue.StatusCode)
	assert.Equal(t, "nope", ue.Body)

	assert.Error(t, c.EndSession(ctx, "tok", map[string]any{}))

	stats, err := c.GetPlayerStats(ctx, "tok")
	assert.Error(t, err)
	assert.Nil(t, stats)
}

func TestClient_EndSessionAndStats(t *testing.T) {
	t.Parallel()

	var ended map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PathSessionEnd:
			_ = json.NewDecoder(r.Body).Decode(&ended)
			w.WriteHeader(http.StatusNoContent)
		case PathPlayerStats:
			_, _ = w.Write([]byte(`{"gamesPlayed":12,"favorite":"memory-match"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	require.NoError(t, c.EndSession(ctx, "tok", map[string]any{"netResult": 15}))
	assert.InDelta(t, 15, ended["netResult"], 1e-9)

	stats, err := c.GetPlayerStats(ctx, "tok")
	require.NoError(t, err)
	assert.InDelta(t, 12, stats["gamesPlayed"], 1e-9)
	assert.Equal(t, "memory-match", stats["favorite"])
}

func TestClient_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, 0).GetProfile(ctx, "tok")
	assert.ErrorIs(t, err, context.Canceled)
}
