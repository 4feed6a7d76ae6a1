package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/vaporcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowEqualHeight(t *testing.T) {
	theme.SetActive("vaporwave")

	short := ContentCard("Short", "Content", 22)
	tall := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	if lipgloss.Height(short) >= lipgloss.Height(tall) {
		t.Fatal("short card should be shorter than tall card")
	}

	joined := CardRow([]string{short, tall})
	if got, want := lipgloss.Height(joined), lipgloss.Height(tall); got != want {
		t.Errorf("CardRow height = %d, want %d", got, want)
	}
	for i, line := range strings.Split(joined, "\n") {
		if w := lipgloss.Width(line); w != 44 {
			t.Errorf("line %d width = %d, want 44", i, w)
		}
	}
}

func TestMetricCard(t *testing.T) {
	theme.SetActive("vaporwave")

	card := MetricCard(Metric{Label: "Max Profit", Value: "$1,000.00", Note: "at $10,000.00 income"}, 30)
	for _, want := range []string{"Max Profit", "$1,000.00", "at $10,000.00 income"} {
		if !strings.Contains(card, want) {
			t.Errorf("MetricCard missing %q", want)
		}
	}
	if w := lipgloss.Width(card); w != 30 {
		t.Errorf("MetricCard width = %d, want 30", w)
	}

	noNote := MetricCard(Metric{Label: "Min Income", Value: "$11,250.00"}, 30)
	if lipgloss.Height(noNote) >= lipgloss.Height(card) {
		t.Error("card without a note should be one line shorter")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("vaporwave")

	row := MetricCardRow([]Metric{
		{Label: "A", Value: "1"},
		{Label: "B", Value: "2", Note: "taller"},
		{Label: "C", Value: "3"},
	}, 91)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 91 {
			t.Errorf("line %d width = %d, want 91", i, w)
		}
	}
	if MetricCardRow(nil, 91) != "" {
		t.Error("MetricCardRow(nil) should be empty")
	}
}

func TestCardInnerWidth(t *testing.T) {
	if got := CardInnerWidth(40); got != 36 {
		t.Errorf("CardInnerWidth(40) = %d, want 36", got)
	}
	if got := CardInnerWidth(5); got != 10 {
		t.Errorf("CardInnerWidth(5) = %d, want 10", got)
	}
}
