package components

import (
	"fmt"
	"math"

	"github.com/theirongolddev/vaporcalc/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPct returns green/yellow/orange/red based on how much of the
// income is consumed by costs.
func ColorForPct(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 1:
		return string(t.Red)
	case pct >= 0.9:
		return string(t.Orange)
	case pct >= 0.7:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// CostShareBar renders a labeled gauge of costs as a share of income.
// Shares above 100% are drawn full and flagged in red. An undefined share
// (Inf/Inf or NaN amounts) is drawn empty and labeled "n/a".
func CostShareBar(label string, costs, income float64, labelW, barWidth int) string {
	t := theme.Active

	pct := 0.0
	switch {
	case income > 0:
		pct = costs / income
	case costs > 0:
		pct = 1
	}
	if pct < 0 {
		pct = 0
	}
	text := fmt.Sprintf("%3.0f%%", pct*100)
	shown := pct
	switch {
	case math.IsNaN(pct):
		text, shown = " n/a", 0
	case math.IsInf(pct, 1):
		text, shown = " ∞%", 1
	case shown > 1:
		shown = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForPct(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForPct(pct))).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(shown) +
		spaceStyle.Render(" ") +
		pctStyle.Render(text)
}
