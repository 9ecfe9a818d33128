package model

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/infinity-box/internal/apperrors"
	"github.com/palemoky/infinity-box/internal/economy"
	"github.com/palemoky/infinity-box/internal/logger"
	"github.com/palemoky/infinity-box/internal/sound"
	"github.com/palemoky/infinity-box/internal/ui/common"
)

const errorDisplayTime = 3 * time.Second

// ArcadeModel is the host UI for the mini-game economy.
type ArcadeModel struct {
	ctx    context.Context
	engine Engine
	sounds Sounds

	phase    Phase
	selected int
	gameType economy.GameType
	bet      float64
	err      string

	lastResult *economy.GameResult
	lastUpdate *economy.UpdateResult
	stats      map[string]any
	summary    *economy.SessionSummary
	drift      *economy.Drift

	input  textinput.Model
	width  int
	height int

	// View renderer (injected to break circular import)
	viewRenderer func(*ArcadeModel) string
}

// NewArcadeModel creates the arcade. sounds may be nil.
func NewArcadeModel(ctx context.Context, engine Engine, sounds Sounds) *ArcadeModel {
	ti := textinput.New()
	ti.CharLimit = 12
	ti.Width = 20

	return &ArcadeModel{
		ctx:    ctx,
		engine: engine,
		sounds: sounds,
		phase:  PhaseMenu,
		input:  ti,
	}
}

// --- Accessors used by the view package ---

func (m *ArcadeModel) Phase() Phase                      { return m.phase }
func (m *ArcadeModel) Selected() int                     { return m.selected }
func (m *ArcadeModel) GameType() economy.GameType        { return m.gameType }
func (m *ArcadeModel) Bet() float64                      { return m.bet }
func (m *ArcadeModel) Error() string                     { return m.err }
func (m *ArcadeModel) LastResult() *economy.GameResult   { return m.lastResult }
func (m *ArcadeModel) LastUpdate() *economy.UpdateResult { return m.lastUpdate }
func (m *ArcadeModel) Stats() map[string]any             { return m.stats }
func (m *ArcadeModel) Summary() *economy.SessionSummary  { return m.summary }
func (m *ArcadeModel) Drift() *economy.Drift             { return m.drift }
func (m *ArcadeModel) Session() *economy.GameSession     { return m.engine.GetCurrentSession() }
func (m *ArcadeModel) Player() *economy.PlayerData       { return m.engine.GetPlayerData() }
func (m *ArcadeModel) Policy() economy.Policy            { return m.engine.Policy() }
func (m *ArcadeModel) Input() *textinput.Model           { return &m.input }
func (m *ArcadeModel) Width() int                        { return m.width }
func (m *ArcadeModel) Height() int                       { return m.height }

// SetViewRenderer sets the view rendering function.
func (m *ArcadeModel) SetViewRenderer(fn func(*ArcadeModel) string) {
	m.viewRenderer = fn
}

func (m *ArcadeModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles tea messages.
func (m *ArcadeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}

	case SessionStartedMsg:
		if msg.Err != nil {
			m.phase = PhaseMenu
			cmds = append(cmds, m.fail(describe(msg.Err)))
			break
		}
		m.gameType = msg.Session.GameType
		m.play(sound.CueSession)
		m.enterBet()

	case RoundSettledMsg:
		m.lastResult = msg.Result
		m.lastUpdate = msg.Update
		m.phase = PhaseResult
		m.input.Blur()
		switch {
		case msg.Err != nil:
			cmds = append(cmds, m.fail(describe(msg.Err)))
		case msg.Update != nil && !msg.Update.Success:
			cmds = append(cmds, m.fail(msg.Update.Error))
		}
		if msg.Result != nil {
			m.play(sound.ForOutcome(msg.Result.IsWin))
		}

	case StatsMsg:
		m.stats = msg.Stats
		m.phase = PhaseStats

	case SessionEndedMsg:
		m.summary = msg.Summary
		m.phase = PhaseSummary

	case DriftMsg:
		if msg.Err != nil {
			cmds = append(cmds, m.fail(describe(msg.Err)))
			break
		}
		m.drift = msg.Drift

	case ClearErrorMsg:
		m.err = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the model.
func (m *ArcadeModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.viewRenderer == nil {
		return "View renderer not initialized"
	}
	return common.DocStyle.Render(m.viewRenderer(m))
}

func (m *ArcadeModel) enterMenu() {
	m.phase = PhaseMenu
	m.input.Reset()
	m.input.Blur()
}

func (m *ArcadeModel) enterBet() {
	m.phase = PhaseBet
	m.input.Reset()
	m.input.Placeholder = fmt.Sprintf("bet %s-%s",
		common.FormatCoins(m.Policy().MinBetAmount), common.FormatCoins(m.Policy().MaxBetAmount))
	m.input.Focus()
}

func (m *ArcadeModel) enterScore() {
	m.phase = PhaseScore
	m.input.Reset()
	m.input.Placeholder = common.ScoreHint(m.gameType)
	m.input.Focus()
}

// --- Commands ---

func (m *ArcadeModel) startSession(gameType economy.GameType) tea.Cmd {
	m.phase = PhaseStarting
	return func() tea.Msg {
		s, err := m.engine.StartGameSession(m.ctx, gameType)
		return SessionStartedMsg{Session: s, Err: err}
	}
}

func (m *ArcadeModel) playRound(score float64) tea.Cmd {
	m.phase = PhaseSettling
	gameType, bet := m.gameType, m.bet
	return func() tea.Msg {
		res, err := m.engine.CalculateGameResult(score, gameType, bet)
		if err != nil {
			return RoundSettledMsg{Err: err}
		}
		upd, err := m.engine.UpdatePlayerBalance(m.ctx, res)
		return RoundSettledMsg{Result: res, Update: upd, Err: err}
	}
}

func (m *ArcadeModel) fetchStats() tea.Cmd {
	return func() tea.Msg {
		return StatsMsg{Stats: m.engine.GetPlayerStats(m.ctx)}
	}
}

func (m *ArcadeModel) endSession() tea.Cmd {
	return func() tea.Msg {
		return SessionEndedMsg{Summary: m.engine.EndGameSession(m.ctx)}
	}
}

func (m *ArcadeModel) reconcile() tea.Cmd {
	return func() tea.Msg {
		d, err := m.engine.Reconcile(m.ctx)
		return DriftMsg{Drift: d, Err: err}
	}
}

func (m *ArcadeModel) fail(reason string) tea.Cmd {
	m.err = reason
	m.play(sound.CueDenied)
	return tea.Tick(errorDisplayTime, func(time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func (m *ArcadeModel) play(cue sound.Cue) {
	if m.sounds != nil {
		m.sounds.Play(cue)
	}
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("enter a number")
	}
	return v, nil
}

// describe turns an engine error into a line for the player.
func describe(err error) string {
	switch apperrors.Code(err) {
	case apperrors.CodeAuthRequired:
		return "not logged in"
	case apperrors.CodeUpstreamFetch:
		return "could not reach the server"
	case apperrors.CodeUpstreamUpdate:
		return "server rejected the round, it is kept locally"
	case apperrors.CodeUpdateInFlight:
		return "previous round is still settling"
	case apperrors.CodeInvalidAmount:
		return "enter a valid amount"
	}
	logger.LogError("Arcade error: %v", err)
	return err.Error()
}
