package view

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/infinity-box/internal/apperrors"
	"github.com/palemoky/infinity-box/internal/economy"
	"github.com/palemoky/infinity-box/internal/storage"
	"github.com/palemoky/infinity-box/internal/testutil"
	"github.com/palemoky/infinity-box/internal/ui/model"
)

func newModel(t *testing.T) (*model.ArcadeModel, *testutil.MockServer) {
	t.Helper()
	srv := new(testutil.MockServer)
	engine := economy.NewEngine(srv,
		storage.NewSessionStore(storage.NewMemoryBackend(), "gameSession"),
		testutil.NewMutableToken("tok"),
		economy.Options{Random: economy.FixedRandom(0.5)})
	t.Cleanup(func() { engine.Close(context.Background()) })

	m := model.NewArcadeModel(context.Background(), engine, nil)
	m.SetViewRenderer(CreateViewRenderer())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, srv
}

func TestMenuView(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t)
	out := m.View()

	tests := []struct {
		name     string
		contains string
	}{
		{"title", "Infinity Box"},
		{"no session yet", "no session"},
		{"speed challenge", "1. ⚡ Speed Challenge"},
		{"lucky boxes", "5. 🎁 Lucky Boxes"},
		{"cursor", "▶ 1."},
		{"hint", "S stats"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, out, tt.contains)
		})
	}
}

func TestBetAndScoreViews(t *testing.T) {
	t.Parallel()

	m, srv := newModel(t)
	srv.On("GetProfile", mock.Anything, "tok").Return(testutil.Coins(1000), nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Opening session")
	m.Update(cmd())

	out := m.View()
	assert.Contains(t, out, "Memory Match")
	assert.Contains(t, out, "round 1")
	assert.Contains(t, out, "max win 100")
	assert.Contains(t, out, "Bet:")
	assert.Contains(t, out, "session 1000 (0)")

	m.Input().SetValue("50")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	out = m.View()
	assert.Contains(t, out, "Score:")
	assert.Contains(t, out, "bet 50")
	assert.Contains(t, out, "moves used")
}

func TestResultView(t *testing.T) {
	t.Parallel()

	m, _ := newModel(t)

	m.Update(model.RoundSettledMsg{
		Result: &economy.GameResult{IsWin: true, WinAmount: 115.2, Probability: 0.76, SkillFactor: 1, EconomicFactor: 0.5},
		Update: &economy.UpdateResult{Success: true, NewBalance: 1115.2},
	})
	out := m.View()
	assert.Contains(t, out, "You won 115.2!")
	assert.Contains(t, out, "win chance 76%")
	assert.Contains(t, out, "server balance 1115.2")

	m.Update(model.RoundSettledMsg{
		Result: &economy.GameResult{LossAmount: 40, Probability: 0.304},
		Err:    apperrors.ErrSessionNotInitialized,
	})
	out = m.View()
	assert.Contains(t, out, "You lost 40")
	assert.NotContains(t, out, "server balance")
	assert.Contains(t, out, "session not initialized")
}

func TestStatsView(t *testing.T) {
	t.Parallel()

	out := StatsView(map[string]any{
		"gamesPlayed": 3.0,
		"netResult":   -12.5,
		"byGame":      map[string]any{"lucky-boxes": 5.0, "fruit-catching": -17.5},
	})
	assert.Contains(t, out, "gamesPlayed    3")
	assert.Contains(t, out, "netResult      -12.5")
	assert.Contains(t, out, "fruit-catching=-17.5 lucky-boxes=5")
	assert.Less(t, strings.Index(out, "byGame"), strings.Index(out, "gamesPlayed"))

	assert.Contains(t, StatsView(nil), "Stats unavailable")
}

func TestSummaryView(t *testing.T) {
	t.Parallel()

	assert.Contains(t, SummaryView(nil), "No session was active")

	s := &economy.SessionSummary{
		GameSession: economy.GameSession{GameType: economy.GameFruitCatching, GamesPlayed: 4, TotalWon: 30, TotalSpent: 80},
		Duration:    125_000,
		NetResult:   -50,
	}
	out := SummaryView(s)
	assert.Contains(t, out, "Fruit Catching")
	assert.Contains(t, out, "rounds    4")
	assert.Contains(t, out, "net       -50")
	assert.Contains(t, out, "duration  125s")
}

func TestDriftLine(t *testing.T) {
	t.Parallel()

	assert.Contains(t, DriftLine(&economy.Drift{ServerBalance: 1000, LocalBalance: 1000}), "in sync with server at 1000")
	assert.Contains(t, DriftLine(&economy.Drift{ServerBalance: 1000, LocalBalance: 900, Difference: 100}),
		"server 1000, local 900 (+100)")
}

func TestBalanceLine(t *testing.T) {
	t.Parallel()

	assert.Contains(t, BalanceLine(nil, nil), "no session")

	out := BalanceLine(&economy.PlayerData{Username: "alice", Balance: 1095},
		&economy.GameSession{InitialBalance: 1000, CurrentBalance: 1100, TotalWon: 100})
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "1095")
	assert.Contains(t, out, "session 1100 (+100)")
}
