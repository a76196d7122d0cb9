package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HomeQuest theme (CLI + TUI).

const (
	IconQuest   = "🗺️"
	IconMission = "🧹"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconLoop    = "🔁"
	IconDaily   = "📅"
	IconUndo    = "↩️"
	IconClock   = "⏱️"
	IconRoom    = "🚪"
	IconTrash   = "🗑️"
	IconCount   = "🔢"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
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

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp   = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeLevelDown = lipgloss.NewStyle().Bold(true).Foreground(cWarn).Render("LEVEL DOWN")
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

// StatusText renders a mission status; overdue only applies to pending missions.
func StatusText(status string, overdue bool) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch {
	case s == "done":
		return Good.Render("done")
	case s == "pending" && overdue:
		return Bad.Render("overdue")
	case s == "pending":
		return Warn.Render("pending")
	default:
		return Muted.Render(status)
	}
}

func DifficultyText(difficulty string) string {
	switch difficulty {
	case "hard":
		return Bad.Render("hard")
	case "medium":
		return Warn.Render("medium")
	default:
		return Good.Render("easy")
	}
}

func MissionIcon(recurring bool, daily bool) string {
	if recurring {
		return IconLoop
	}
	if daily {
		return IconDaily
	}
	return IconMission
}

// ProgressBar renders pct (0-100) as a fixed-width bar.
func ProgressBar(pct int, width int) string {
	if width <= 0 {
		return ""
	}
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}
