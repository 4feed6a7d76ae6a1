package components

import (
	"strings"

	"github.com/theirongolddev/vaporcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusLine is what the bottom bar reports about the current session.
type StatusLine struct {
	Scenario string // name of the loaded or last saved scenario, "" if unsaved
	Notice   string // transient message from the last action
	Loss     bool   // max income does not cover total costs
}

// RenderStatusBar renders key hints on the left and the session state on
// the right, filling exactly width cells.
func RenderStatusBar(width int, s StatusLine) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	notice := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	loss := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)

	left := base.Render(" [?]help  [ctrl+s]save  [q]uit")

	var right []string
	if s.Notice != "" {
		right = append(right, notice.Render(s.Notice))
	}
	if s.Loss {
		right = append(right, loss.Render("▼ loss"))
	}
	name := s.Scenario
	if name == "" {
		name = "unsaved"
	}
	right = append(right, base.Render(name+" "))
	rightStr := strings.Join(right, base.Render("  "))

	gap := width - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if gap < 1 {
		// Drop the hints before the session state.
		left = ""
		gap = max(0, width-lipgloss.Width(rightStr))
	}

	bar := left + base.Render(strings.Repeat(" ", gap)) + rightStr
	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}
