package model

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/infinity-box/internal/economy"
)

// handleKey processes a key press. handled means the input field must not
// see the key.
func (m *ArcadeModel) handleKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return true, tea.Quit
	}

	switch m.phase {
	case PhaseMenu:
		return m.handleMenuKey(msg)
	case PhaseBet:
		return m.handleBetKey(msg)
	case PhaseScore:
		return m.handleScoreKey(msg)
	case PhaseResult:
		switch msg.Type {
		case tea.KeyEnter:
			m.enterBet()
			return true, nil
		case tea.KeyEsc:
			m.enterMenu()
			return true, nil
		}
		return true, nil
	case PhaseStats, PhaseSummary:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
			m.enterMenu()
		}
		return true, nil
	case PhaseStarting, PhaseSettling:
		// Waiting on the engine.
		return true, nil
	}
	return false, nil
}

func (m *ArcadeModel) handleMenuKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	games := economy.GameTypes

	switch msg.Type {
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		return true, nil
	case tea.KeyDown:
		if m.selected < len(games)-1 {
			m.selected++
		}
		return true, nil
	case tea.KeyEnter:
		return true, m.startSession(games[m.selected])
	case tea.KeyEsc:
		return true, tea.Quit
	case tea.KeyRunes:
	default:
		return true, nil
	}

	if len(msg.Runes) != 1 {
		return true, nil
	}
	r := msg.Runes[0]
	switch {
	case r >= '1' && int(r-'1') < len(games):
		m.selected = int(r - '1')
		return true, m.startSession(games[m.selected])
	case r == 's':
		return true, m.fetchStats()
	case r == 'e':
		return true, m.endSession()
	case r == 'r':
		return true, m.reconcile()
	case r == 'q':
		return true, tea.Quit
	}
	return true, nil
}

func (m *ArcadeModel) handleBetKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.enterMenu()
		return true, nil
	case tea.KeyEnter:
		bet, err := parseAmount(m.input.Value())
		if err != nil {
			return true, m.fail(err.Error())
		}
		if ok, reason := m.engine.CanPlay(bet); !ok {
			return true, m.fail(reason)
		}
		m.bet = bet
		m.err = ""
		m.enterScore()
		return true, nil
	}
	return false, nil
}

func (m *ArcadeModel) handleScoreKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.enterBet()
		return true, nil
	case tea.KeyEnter:
		score, err := parseAmount(m.input.Value())
		if err != nil {
			return true, m.fail(err.Error())
		}
		m.err = ""
		m.input.Blur()
		return true, m.playRound(score)
	}
	return false, nil
}
