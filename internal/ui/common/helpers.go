// Package common provides shared utilities for the UI.
package common

import (
	"strconv"
	"strings"

	"github.com/palemoky/infinity-box/internal/economy"
)

// TruncateName truncates a player name to the specified maximum length.
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}

// FormatCoins renders an amount with at most two decimals.
func FormatCoins(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// FormatSigned renders a balance change with an explicit sign.
func FormatSigned(v float64) string {
	if v > 0 {
		return "+" + FormatCoins(v)
	}
	return FormatCoins(v)
}

// GameLabel is the menu name of a mini-game.
func GameLabel(gt economy.GameType) string {
	switch gt {
	case economy.GameSpeedChallenge:
		return "⚡ Speed Challenge"
	case economy.GameMindPuzzles:
		return "🧩 Mind Puzzles"
	case economy.GameMemoryMatch:
		return "🃏 Memory Match"
	case economy.GameFruitCatching:
		return "🍎 Fruit Catching"
	case economy.GameLuckyBoxes:
		return "🎁 Lucky Boxes"
	default:
		return "❔ " + string(gt)
	}
}

// ScoreHint tells the player what the score field means for a game.
func ScoreHint(gt economy.GameType) string {
	switch gt {
	case economy.GameSpeedChallenge:
		return "points scored (100 is perfect)"
	case economy.GameMindPuzzles:
		return "puzzles solved (50 is perfect)"
	case economy.GameMemoryMatch:
		return "moves used (fewer is better)"
	case economy.GameFruitCatching:
		return "fruit caught (200 is perfect)"
	default:
		return "score is ignored, pure luck"
	}
}
