package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/vaporcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Series is one colored bar drawn inside every group.
type Series struct {
	Name  string
	Color lipgloss.Color
}

// GroupedBarChart renders vertical bars in groups that share a y-axis.
// values[g][s] is the value of series s in group g; negative and NaN values
// are drawn as empty bars and +Inf as full ones.
func GroupedBarChart(groups []string, series []Series, values [][]float64, width, height int) string {
	if len(groups) == 0 || len(series) == 0 || len(values) != len(groups) {
		return ""
	}
	if height < 3 {
		height = 3
	}

	t := theme.Active

	// Overflowed values do not set the scale; the cap keeps tick doubling finite.
	maxVal := 0.0
	for _, row := range values {
		for _, v := range row {
			if !math.IsInf(v, 0) && v > maxVal {
				maxVal = v
			}
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}
	maxVal = math.Min(maxVal, maxChartValue)

	// Y-axis: compute tick step and ceiling
	tickStep := chartTickStep(maxVal)
	maxIntervals := height / 2
	if maxIntervals < 2 {
		maxIntervals = 2
	}
	for {
		n := int(math.Ceil(maxVal / tickStep))
		if n <= maxIntervals {
			break
		}
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := int(math.Round(ceiling / tickStep))
	if numIntervals < 1 {
		numIntervals = 1
	}

	rowsPerTick := height / numIntervals
	if rowsPerTick < 1 {
		rowsPerTick = 1
	}
	chartH := rowsPerTick * numIntervals

	yLabelW := len(formatChartLabel(ceiling)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}
	tickLabels := make(map[int]string)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := width - yLabelW - 1
	if chartW < 10 {
		chartW = 10
	}

	// Bar sizing: one column between bars in a group, groupGap between groups.
	nG, nS := len(groups), len(series)
	groupGap := 4
	barW := (chartW - (nG-1)*groupGap - nG*(nS-1)) / (nG * nS)
	if barW < 1 {
		barW = 1
	}
	if barW > 8 {
		barW = 8
	}
	groupW := nS*barW + (nS - 1)
	axisLen := nG*groupW + (nG-1)*groupGap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for g, vals := range values {
			if g > 0 {
				b.WriteString(space.Render(strings.Repeat(" ", groupGap)))
			}
			for s, sr := range series {
				if s > 0 {
					b.WriteString(space.Render(" "))
				}
				v := 0.0
				if s < len(vals) {
					v = vals[s]
				}
				barStyle := lipgloss.NewStyle().Foreground(sr.Color).Background(t.Surface)
				switch {
				case v >= rowTop:
					b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
				case v > rowBottom:
					frac := (v - rowBottom) / (rowTop - rowBottom)
					idx := int(frac * 8)
					if idx > 8 {
						idx = 8
					}
					if idx < 1 {
						idx = 1
					}
					b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
				default:
					b.WriteString(space.Render(strings.Repeat(" ", barW)))
				}
			}
		}
		b.WriteString("\n")
	}

	// X-axis line with 0 label
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))
	b.WriteString("\n")

	// Group labels, centered under each group
	labels := []rune(strings.Repeat(" ", axisLen))
	for g, name := range groups {
		lbl := []rune(name)
		if len(lbl) > groupW+groupGap-1 {
			lbl = lbl[:groupW+groupGap-1]
		}
		start := g*(groupW+groupGap) + (groupW-len(lbl))/2
		if start < 0 {
			start = 0
		}
		for i, r := range lbl {
			if start+i < len(labels) {
				labels[start+i] = r
			}
		}
	}
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	b.WriteString(space.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(labelStyle.Render(strings.TrimRight(string(labels), " ")))
	b.WriteString("\n")

	// Legend
	b.WriteString(space.Render(strings.Repeat(" ", yLabelW+1)))
	for i, sr := range series {
		if i > 0 {
			b.WriteString(space.Render("   "))
		}
		b.WriteString(lipgloss.NewStyle().Foreground(sr.Color).Background(t.Surface).Render("■ "))
		b.WriteString(labelStyle.Render(sr.Name))
	}

	return b.String()
}

const maxChartValue = 1e300

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.0e", v)
	case v >= 1e9:
		if v == math.Trunc(v/1e9)*1e9 {
			return fmt.Sprintf("%.0fB", v/1e9)
		}
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
