package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/vaporcalc/internal/cli"
	"github.com/theirongolddev/vaporcalc/internal/model"
	"github.com/theirongolddev/vaporcalc/internal/tui/components"
	"github.com/theirongolddev/vaporcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderChartTab(cw, h int) string {
	t := theme.Active
	bars := model.ChartData(a.inputs, a.out)

	groups := make([]string, len(bars))
	values := make([][]float64, len(bars))
	for i, bar := range bars {
		groups[i] = bar.Name
		values[i] = []float64{bar.Income, bar.Costs, bar.Profit}
	}
	series := []components.Series{
		{Name: "Income", Color: t.Accent},
		{Name: "Costs", Color: t.Magenta},
		{Name: "Profit", Color: t.Green},
	}

	// Chart card takes whatever the share card and table leave over
	chartH := h - 16
	if chartH < 6 {
		chartH = 6
	}
	innerW := components.CardInnerWidth(cw)
	chart := components.GroupedBarChart(groups, series, values, innerW, chartH)

	var b strings.Builder
	b.WriteString(components.ContentCard("Income vs Costs", chart, cw))
	b.WriteString("\n")

	// Cost share gauges and the underlying numbers side by side
	var left, right strings.Builder
	halves := components.LayoutRow(cw, 2)
	barW := components.CardInnerWidth(halves[0]) - 14 - 6
	if barW < 10 {
		barW = 10
	}
	for i, bar := range bars {
		if i > 0 {
			left.WriteString("\n")
		}
		left.WriteString(components.CostShareBar(bar.Name, bar.Costs, bar.Income, 14, barW))
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	right.WriteString(labelStyle.Render(fmt.Sprintf("%-14s %12s %12s %12s", "", "Income", "Costs", "Profit")))
	for _, bar := range bars {
		right.WriteString("\n")
		right.WriteString(labelStyle.Render(fmt.Sprintf("%-14s ", bar.Name)))
		right.WriteString(valueStyle.Render(fmt.Sprintf("%12s %12s %12s",
			cli.FormatMoney(bar.Income), cli.FormatMoney(bar.Costs), cli.FormatMoney(bar.Profit))))
	}

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Cost Share of Income", left.String(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Scenarios", right.String(), cw))
	} else {
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Cost Share of Income", left.String(), halves[0]),
			components.ContentCard("Scenarios", right.String(), halves[1]),
		}))
	}

	return b.String()
}
