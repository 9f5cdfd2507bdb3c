package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SpaceGreen theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconLeaf    = "🌿"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconTip     = "💡"
	IconEvent   = "📅"
	IconCalc    = "🧮"
	IconWater   = "💧"
	IconMoney   = "💰"
	IconGlobe   = "🌏"
)

var (
	cPrimary = lipgloss.Color("35")  // green
	cAccent  = lipgloss.Color("42")  // bright green
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "done":
		return Good.Render("done")
	case "in-progress":
		return H2.Render("in-progress")
	case "planned":
		return Warn.Render("planned")
	default:
		return Muted.Render(status)
	}
}

func SourceIcon(sourceType string) string {
	switch sourceType {
	case "tip":
		return IconTip
	case "event":
		return IconEvent
	case "calculator":
		return IconCalc
	default:
		return IconLeaf
	}
}
