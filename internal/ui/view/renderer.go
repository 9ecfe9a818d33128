// Package view provides UI rendering functions.
package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/infinity-box/internal/economy"
	"github.com/palemoky/infinity-box/internal/ui/common"
	"github.com/palemoky/infinity-box/internal/ui/model"
)

// CreateViewRenderer creates a view renderer function that can be injected into ArcadeModel.
func CreateViewRenderer() func(*model.ArcadeModel) string {
	return func(m *model.ArcadeModel) string {
		var body string
		switch m.Phase() {
		case model.PhaseMenu:
			body = MenuView(m)
		case model.PhaseStarting:
			body = "Opening session..."
		case model.PhaseBet:
			body = BetView(m)
		case model.PhaseScore:
			body = ScoreView(m)
		case model.PhaseSettling:
			body = "Settling round..."
		case model.PhaseResult:
			body = ResultView(m)
		case model.PhaseStats:
			body = StatsView(m.Stats())
		case model.PhaseSummary:
			body = SummaryView(m.Summary())
		default:
			body = "Unknown phase"
		}

		var sb strings.Builder
		sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, common.TitleStyle("🎰 Infinity Box")))
		sb.WriteString("\n")
		sb.WriteString(lipgloss.PlaceHorizontal(m.Width(), lipgloss.Center, BalanceLine(m.Player(), m.Session())))
		sb.WriteString("\n\n")
		sb.WriteString(body)
		if e := m.Error(); e != "" {
			sb.WriteString("\n")
			sb.WriteString(common.ErrorStyle.Render("⚠ " + e))
		}
		return sb.String()
	}
}

// BalanceLine shows the server balance and the session projection.
func BalanceLine(player *economy.PlayerData, session *economy.GameSession) string {
	var parts []string
	if player != nil {
		name := "player"
		if player.Username != "" {
			name = common.TruncateName(player.Username, 16)
		}
		parts = append(parts, fmt.Sprintf("%s %s %s", name, common.CoinIcon,
			common.BalanceStyle.Render(common.FormatCoins(player.Balance))))
	}
	if session != nil {
		parts = append(parts, fmt.Sprintf("session %s (%s)",
			common.FormatCoins(session.CurrentBalance), common.FormatSigned(session.NetResult())))
	}
	if len(parts) == 0 {
		return common.HintStyle.Render("no session")
	}
	return strings.Join(parts, "  •  ")
}

// MenuView renders the game picker.
func MenuView(m *model.ArcadeModel) string {
	lines := []string{"Pick a game:", ""}
	for i, gt := range economy.GameTypes {
		prefix := "  "
		if i == m.Selected() {
			prefix = "▶ "
		}
		lines = append(lines, fmt.Sprintf("%s%d. %s", prefix, i+1, common.GameLabel(gt)))
	}
	menu := common.BoxStyle.Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	var sb strings.Builder
	sb.WriteString(menu)
	if d := m.Drift(); d != nil {
		sb.WriteString("\n")
		sb.WriteString(DriftLine(d))
	}
	sb.WriteString("\n")
	sb.WriteString(common.HintStyle.Render("↑/↓ + Enter or 1-5 to play • S stats • R reconcile • E end session • Q quit"))
	return sb.String()
}

// DriftLine reports how far the local session is from the server.
func DriftLine(d *economy.Drift) string {
	if d.InSync() {
		return common.WinStyle.Render("✔ in sync with server at " + common.FormatCoins(d.ServerBalance))
	}
	return common.LoseStyle.Render(fmt.Sprintf("✘ server %s, local %s (%s)",
		common.FormatCoins(d.ServerBalance), common.FormatCoins(d.LocalBalance), common.FormatSigned(d.Difference)))
}

// BetView asks for the wager.
func BetView(m *model.ArcadeModel) string {
	var sb strings.Builder
	sb.WriteString(common.GameLabel(m.GameType()))
	sb.WriteString("\n")
	if s := m.Session(); s != nil {
		sb.WriteString(common.HintStyle.Render(fmt.Sprintf("round %d • max win %s",
			s.GamesPlayed+1, common.FormatCoins(s.MaxWinAllowed))))
		sb.WriteString("\n")
	}
	sb.WriteString(common.PromptStyle.Render("Bet: " + m.Input().View()))
	sb.WriteString("\n")
	sb.WriteString(common.HintStyle.Render("Enter to confirm • Esc back"))
	return sb.String()
}

// ScoreView asks for the mini-game score.
func ScoreView(m *model.ArcadeModel) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s • bet %s\n", common.GameLabel(m.GameType()), common.FormatCoins(m.Bet())))
	sb.WriteString(common.PromptStyle.Render("Score: " + m.Input().View()))
	sb.WriteString("\n")
	sb.WriteString(common.HintStyle.Render(common.ScoreHint(m.GameType()) + " • Esc change bet"))
	return sb.String()
}

// ResultView shows the settled round.
func ResultView(m *model.ArcadeModel) string {
	res := m.LastResult()
	if res == nil {
		return common.HintStyle.Render("Round not played • Enter retry • Esc menu")
	}

	var sb strings.Builder
	if res.IsWin {
		sb.WriteString(common.WinStyle.Render(fmt.Sprintf("%s You won %s!", common.WinIcon, common.FormatCoins(res.WinAmount))))
	} else {
		sb.WriteString(common.LoseStyle.Render(fmt.Sprintf("%s You lost %s", common.LoseIcon, common.FormatCoins(res.LossAmount))))
	}
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("win chance %.0f%% • skill %.2f • economy %.2f\n",
		res.Probability*100, res.SkillFactor, res.EconomicFactor))
	if upd := m.LastUpdate(); upd != nil && upd.Success {
		sb.WriteString(fmt.Sprintf("server balance %s\n", common.FormatCoins(upd.NewBalance)))
	}
	sb.WriteString(common.HintStyle.Render("Enter play again • Esc menu"))
	return sb.String()
}

// StatsView renders the stats payload as sorted key/value lines.
func StatsView(stats map[string]any) string {
	var sb strings.Builder
	sb.WriteString(common.StatsIcon + " Player stats\n\n")
	if len(stats) == 0 {
		sb.WriteString(common.HintStyle.Render("Stats unavailable"))
	} else {
		keys := make([]string, 0, len(stats))
		for k := range stats {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("%-14s %s\n", k, formatValue(stats[k])))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(common.HintStyle.Render("Enter back"))
	return sb.String()
}

// SummaryView renders the posted session summary.
func SummaryView(s *economy.SessionSummary) string {
	var sb strings.Builder
	sb.WriteString(common.SessionIcon + " Session ended\n\n")
	if s == nil {
		sb.WriteString(common.HintStyle.Render("No session was active"))
	} else {
		sb.WriteString(fmt.Sprintf("game      %s\n", common.GameLabel(s.GameType)))
		sb.WriteString(fmt.Sprintf("rounds    %d\n", s.GamesPlayed))
		sb.WriteString(fmt.Sprintf("won       %s\n", common.FormatCoins(s.TotalWon)))
		sb.WriteString(fmt.Sprintf("spent     %s\n", common.FormatCoins(s.TotalSpent)))
		sb.WriteString(fmt.Sprintf("net       %s\n", common.FormatSigned(s.NetResult)))
		sb.WriteString(fmt.Sprintf("duration  %ds\n", s.Duration/1000))
	}
	sb.WriteString("\n")
	sb.WriteString(common.HintStyle.Render("Enter back"))
	return sb.String()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return common.FormatCoins(x)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+formatValue(x[k]))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(v)
	}
}
