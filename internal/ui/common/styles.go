// Package common provides shared styles and utilities for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"
)

// Icon constants
const (
	CoinIcon    = "🪙"
	WinIcon     = "🎉"
	LoseIcon    = "💸"
	SessionIcon = "🎮"
	StatsIcon   = "📊"
)

// Lipgloss Styles
var (
	DocStyle     = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	PromptStyle  = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	HintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	WinStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	LoseStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	BalanceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)
