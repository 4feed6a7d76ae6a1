package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/vaporcalc/internal/model"
	"github.com/theirongolddev/vaporcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Table represents a bordered text table for CLI output.
// A row holding the single cell "---" renders as a separator.
type Table struct {
	Title    string
	Headers  []string
	Rows     [][]string
	Widths   []int        // optional column widths, auto-calculated if nil
	Emphasis map[int]bool // row indexes drawn bold in the accent color
}

// palette is the set of styles derived from the active theme.
type palette struct {
	title, header, value, muted, dim, emphasis, negative lipgloss.Style
}

func currentPalette() palette {
	t := theme.Active
	return palette{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary).Align(lipgloss.Center),
		header:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		value:    lipgloss.NewStyle().Foreground(t.TextPrimary),
		muted:    lipgloss.NewStyle().Foreground(t.TextMuted),
		dim:      lipgloss.NewStyle().Foreground(t.TextDim),
		emphasis: lipgloss.NewStyle().Bold(true).Foreground(t.AccentBright),
		negative: lipgloss.NewStyle().Foreground(t.Red),
	}
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	p := currentPalette()
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(p.title.Render(title))
}

// RenderTable renders a bordered table with headers and rows. The first
// column is left-aligned and the rest, being amounts, right-aligned.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}
	p := currentPalette()

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}
	widths := columnWidths(t, numCols)

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i < numCols-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		return p.dim.Render(b.String()) + "\n"
	}
	bar := p.dim.Render("│")

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + p.header.Render(t.Title) + "\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(bar)
		for i, h := range t.Headers {
			b.WriteString(p.header.Render(pad(h, widths[i], false)))
			if i < numCols-1 {
				b.WriteString(bar)
			}
		}
		b.WriteString(bar + "\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	for r, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}

		b.WriteString(bar)
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			style := p.value
			switch {
			case t.Emphasis[r]:
				style = p.emphasis
			case i > 0 && strings.HasPrefix(cell, "-"):
				style = p.negative
			}
			b.WriteString(style.Render(pad(cell, widths[i], i > 0)))
			if i < numCols-1 {
				b.WriteString(bar)
			}
		}
		b.WriteString(bar + "\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

func columnWidths(t Table, numCols int) []int {
	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			continue
		}
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

// pad surrounds s with one space each side and fills it to width w.
func pad(s string, w int, right bool) string {
	fill := strings.Repeat(" ", max(0, w-lipgloss.Width(s)))
	if right {
		return " " + fill + s + " "
	}
	return " " + s + fill + " "
}

// RenderHorizontalBar renders a labeled horizontal bar scaled to maxValue.
// Negative and NaN values render as an empty bar, +Inf as a full one.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int, color lipgloss.Color) string {
	p := currentPalette()

	barLen := 0
	switch {
	case math.IsInf(value, 1):
		barLen = maxWidth
	case maxValue > 0 && value > 0:
		if frac := value / maxValue; !math.IsNaN(frac) {
			barLen = int(math.Min(frac, 1) * float64(maxWidth))
		}
	}
	barLen = max(0, min(barLen, maxWidth))

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", barLen))
	fill := strings.Repeat(" ", maxWidth-barLen)

	valStyle := p.value
	if value < 0 {
		valStyle = p.negative
	}
	return fmt.Sprintf("  %s %s%s %s", p.muted.Render(fmt.Sprintf("%-7s", label)), bar, fill, valStyle.Render(FormatMoney(value)))
}

// RenderScenarioChart renders income, costs and profit bars for each
// scenario, all scaled to the largest value.
func RenderScenarioChart(bars []model.ScenarioBar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active
	p := currentPalette()

	// Overflowed values draw full-width and do not set the scale.
	peak := 0.0
	for _, sb := range bars {
		for _, v := range []float64{sb.Income, sb.Costs, sb.Profit} {
			if !math.IsInf(v, 0) && v > peak {
				peak = v
			}
		}
	}

	var b strings.Builder
	for i, sb := range bars {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  " + p.header.Render(sb.Name) + "\n")
		b.WriteString(RenderHorizontalBar("Income", sb.Income, peak, width, t.Accent) + "\n")
		b.WriteString(RenderHorizontalBar("Costs", sb.Costs, peak, width, t.Magenta) + "\n")
		b.WriteString(RenderHorizontalBar("Profit", sb.Profit, peak, width, t.Green) + "\n")
	}
	return b.String()
}
