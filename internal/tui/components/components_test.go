package components

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		sum := 0
		for _, w := range LayoutRow(101, n) {
			sum += w
		}
		if sum != 101 {
			t.Errorf("LayoutRow(101, %d) sums to %d", n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow(10, 0) should be nil")
	}
}

func TestGroupedBarChart(t *testing.T) {
	series := []Series{{Name: "Income"}, {Name: "Costs"}, {Name: "Profit"}}
	values := [][]float64{{10000, 9000, 1000}, {11250, 9000, 2250}}

	out := GroupedBarChart([]string{"Max Scenario", "Min Scenario"}, series, values, 60, 10)
	if out == "" {
		t.Fatal("empty chart")
	}
	for _, want := range []string{"Max Scenario", "Min Scenario", "Income", "Profit", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart missing %q", want)
		}
	}
	// y-axis ceiling is a round tick above the max value
	if !strings.Contains(out, "12k") {
		t.Errorf("chart missing 12k tick:\n%s", out)
	}
}

func TestGroupedBarChart_BadInput(t *testing.T) {
	if got := GroupedBarChart(nil, nil, nil, 40, 10); got != "" {
		t.Errorf("nil input rendered %q", got)
	}
	if got := GroupedBarChart([]string{"a"}, []Series{{Name: "x"}}, nil, 40, 10); got != "" {
		t.Error("mismatched values rendered a chart")
	}
}

func TestGroupedBarChart_NegativeDrawnEmpty(t *testing.T) {
	out := GroupedBarChart([]string{"g"}, []Series{{Name: "s"}}, [][]float64{{-500}}, 30, 6)
	if strings.ContainsAny(out, "▁▂▃▄▅▆▇█") {
		t.Errorf("negative value drew a bar:\n%s", out)
	}
}

func TestChartTickStep(t *testing.T) {
	cases := []struct {
		max  float64
		want float64
	}{
		{0, 1},
		{10, 2},
		{11250, 2000},
		{100, 20},
		{40, 5},
	}
	for _, c := range cases {
		if got := chartTickStep(c.max); got != c.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", c.max, got, c.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	cases := map[float64]string{
		2000:    "2k",
		2500:    "2.5k",
		3000000: "3M",
		50:      "50",
		0.5:     "0.50",
	}
	for v, want := range cases {
		if got := formatChartLabel(v); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestCostShareBar(t *testing.T) {
	out := CostShareBar("Max", 9000, 10000, 6, 20)
	if !strings.Contains(out, " 90%") {
		t.Errorf("CostShareBar = %q, want 90%%", out)
	}
	// labelW + space + bar + space + "NNN%"
	if w := lipgloss.Width(out); w != 6+1+20+1+4 {
		t.Errorf("width = %d, want %d", w, 6+1+20+1+4)
	}

	if out := CostShareBar("Zero", 100, 0, 6, 20); !strings.Contains(out, "100%") {
		t.Errorf("costs with no income = %q, want 100%%", out)
	}
	if out := CostShareBar("Over", 300, 100, 6, 20); !strings.Contains(out, "300%") {
		t.Errorf("over budget = %q, want 300%%", out)
	}
}

func TestCostShareBar_NonFinite(t *testing.T) {
	inf := CostShareBar("Max", math.Inf(1), 10000, 6, 20)
	if !strings.Contains(inf, "∞%") {
		t.Errorf("infinite costs = %q, want ∞%%", inf)
	}
	nan := CostShareBar("Min", math.Inf(1), math.Inf(1), 6, 20)
	if !strings.Contains(nan, "n/a") {
		t.Errorf("Inf/Inf share = %q, want n/a", nan)
	}
	for _, out := range []string{inf, nan} {
		if w := lipgloss.Width(out); w != 6+1+20+1+4 {
			t.Errorf("width = %d, want %d", w, 6+1+20+1+4)
		}
	}
}

func TestGroupedBarChart_Overflow(t *testing.T) {
	series := []Series{{Name: "Income"}, {Name: "Costs"}, {Name: "Profit"}}
	values := [][]float64{
		{5000, math.Inf(1), math.Inf(-1)},
		{math.Inf(1), math.Inf(1), math.NaN()},
	}
	out := GroupedBarChart([]string{"Max Scenario", "Min Scenario"}, series, values, 60, 10)
	if out == "" || !strings.Contains(out, "█") {
		t.Fatalf("chart = %q, want bars", out)
	}

	huge := GroupedBarChart([]string{"A"}, series, [][]float64{{1e308, 5e307, 0}}, 60, 10)
	for i, line := range strings.Split(huge, "\n") {
		if w := lipgloss.Width(line); w > 60 {
			t.Errorf("line %d width = %d, want <= 60", i, w)
		}
	}
}

func TestFormatChartLabel_Huge(t *testing.T) {
	if got := formatChartLabel(2e20); got != "2e+20" {
		t.Errorf("formatChartLabel(2e20) = %q, want 2e+20", got)
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if TabIdxByKey('z') != -1 {
		t.Error("TabIdxByKey('z') should be -1")
	}
}

func TestRenderStatusBar(t *testing.T) {
	bar := RenderStatusBar(100, StatusLine{Scenario: "plan", Notice: "saved plan"})
	if w := lipgloss.Width(bar); w != 100 {
		t.Errorf("status bar width = %d, want 100", w)
	}
	if !strings.Contains(bar, "saved plan") || !strings.Contains(bar, "[?]help") {
		t.Errorf("status bar missing text: %q", bar)
	}

	unsaved := RenderStatusBar(80, StatusLine{Loss: true})
	if !strings.Contains(unsaved, "unsaved") || !strings.Contains(unsaved, "loss") {
		t.Errorf("status bar = %q, want unsaved and loss markers", unsaved)
	}

	narrow := RenderStatusBar(20, StatusLine{Scenario: "plan", Notice: "opened plan"})
	if w := lipgloss.Width(narrow); w > 20 {
		t.Errorf("narrow status bar width = %d, want <= 20", w)
	}
}
