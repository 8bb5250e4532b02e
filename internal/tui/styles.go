package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"})
	specialStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"})
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0E442"))
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)

	activeTab   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(lipgloss.Color("#7D56F4")).Foreground(lipgloss.Color("#7D56F4")).Bold(true).Padding(0, 1)
	inactiveTab = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.AdaptiveColor{Light: "#AAA", Dark: "#555"})

	colName   = lipgloss.NewStyle().Width(22)
	colURL    = lipgloss.NewStyle().Width(34)
	colStatus = lipgloss.NewStyle().Width(12)
	colRoutes = lipgloss.NewStyle().Width(8)
)

// statusStyle picks a style for a backend status tag. The vocabulary is owned
// by the backend and inconsistently cased, so matching is case-insensitive and
// unknown tags render unstyled.
func statusStyle(tag string) lipgloss.Style {
	switch strings.ToLower(tag) {
	case "online", "success", "up":
		return specialStyle
	case "offline", "error", "down":
		return dangerStyle
	case "checking", "pending", "warning", "loading":
		return warnStyle
	default:
		return lipgloss.NewStyle()
	}
}

// limitStr truncates on runes; names, URLs and response bodies can carry
// multibyte text and must never be cut mid-rune.
func limitStr(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	if max <= 3 {
		if max < 0 {
			max = 0
		}
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
