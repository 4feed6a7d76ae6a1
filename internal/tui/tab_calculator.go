package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/vaporcalc/internal/cli"
	"github.com/theirongolddev/vaporcalc/internal/model"
	"github.com/theirongolddev/vaporcalc/internal/tui/components"
	"github.com/theirongolddev/vaporcalc/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fieldKind int

const (
	fieldMaxIncome fieldKind = iota
	fieldDevCost
	fieldMonthly
	fieldTaxRate
	fieldItemName
	fieldItemPrice
)

// formField addresses one editable value. list and idx are only
// meaningful for item fields.
type formField struct {
	kind fieldKind
	list model.ItemList
	idx  int
}

// calcState tracks the calculator tab state.
type calcState struct {
	cursor  int
	editing bool
	input   textinput.Model
	orig    model.Inputs // restored on Esc
}

func (c *calcState) clampCursor(n int) {
	if c.cursor >= n {
		c.cursor = n - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// fields returns the editable fields in form order.
func (a App) fields() []formField {
	fs := []formField{{kind: fieldMaxIncome}, {kind: fieldDevCost}}
	for i := range a.inputs.HardwareItems {
		fs = append(fs,
			formField{kind: fieldItemName, list: model.HardwareList, idx: i},
			formField{kind: fieldItemPrice, list: model.HardwareList, idx: i})
	}
	fs = append(fs, formField{kind: fieldMonthly})
	for i := range a.inputs.OperationalItems {
		fs = append(fs,
			formField{kind: fieldItemName, list: model.OperationalList, idx: i},
			formField{kind: fieldItemPrice, list: model.OperationalList, idx: i})
	}
	return append(fs, formField{kind: fieldTaxRate})
}

func (a App) focusedField() (formField, bool) {
	fs := a.fields()
	if a.calc.cursor < 0 || a.calc.cursor >= len(fs) {
		return formField{}, false
	}
	return fs[a.calc.cursor], true
}

// targetList is the list that `a` appends to for a field.
func (f formField) targetList() model.ItemList {
	switch f.kind {
	case fieldItemName, fieldItemPrice:
		return f.list
	case fieldMonthly, fieldTaxRate:
		return model.OperationalList
	default:
		return model.HardwareList
	}
}

func (f formField) isItem() bool {
	return f.kind == fieldItemName || f.kind == fieldItemPrice
}

// editValue is the raw text placed in the input when editing starts.
func editValue(in model.Inputs, f formField) string {
	num := func(v float64) string {
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	switch f.kind {
	case fieldMaxIncome:
		return num(in.MaxIncome)
	case fieldDevCost:
		return num(in.DevelopmentCost)
	case fieldMonthly:
		return num(in.MonthlyCost)
	case fieldTaxRate:
		return num(in.TaxRate)
	case fieldItemName:
		items := *in.Items(f.list)
		if f.idx < len(items) {
			return items[f.idx].Name
		}
	case fieldItemPrice:
		items := *in.Items(f.list)
		if f.idx < len(items) {
			return num(items[f.idx].Price)
		}
	}
	return ""
}

// applyField writes text into the field, coercing numbers with ParsePrice.
func applyField(in *model.Inputs, f formField, text string) {
	switch f.kind {
	case fieldMaxIncome:
		in.MaxIncome = model.ParsePrice(text)
	case fieldDevCost:
		in.DevelopmentCost = model.ParsePrice(text)
	case fieldMonthly:
		in.MonthlyCost = model.ParsePrice(text)
	case fieldTaxRate:
		in.TaxRate = model.ParsePrice(strings.TrimSuffix(strings.TrimSpace(text), "%"))
	case fieldItemName:
		in.SetItemName(f.list, f.idx, text)
	case fieldItemPrice:
		in.SetItemPrice(f.list, f.idx, model.ParsePrice(text))
	}
}

func (a App) updateCalcKeys(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.fields())
	switch key {
	case "j", "down":
		if a.calc.cursor < n-1 {
			a.calc.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.calc.cursor > 0 {
			a.calc.cursor--
		}
		return a, nil, true
	case "g":
		a.calc.cursor = 0
		return a, nil, true
	case "G":
		a.calc.cursor = n - 1
		return a, nil, true
	case "enter":
		m, cmd := a.calcStartEdit()
		return m, cmd, true
	case "a":
		list := model.HardwareList
		if f, ok := a.focusedField(); ok {
			list = f.targetList()
		}
		idx := a.inputs.AddItem(list)
		a.recompute()
		a.focusField(formField{kind: fieldItemName, list: list, idx: idx})
		a.status = "added " + list.String() + " row"
		m, cmd := a.calcStartEdit()
		return m, cmd, true
	case "d":
		f, ok := a.focusedField()
		if !ok || !f.isItem() {
			return a, nil, true
		}
		a.inputs.RemoveItem(f.list, f.idx)
		a.recompute()
		a.status = "removed " + f.list.String() + " row"
		return a, nil, true
	}
	return a, nil, false
}

// focusField moves the cursor onto target if it exists.
func (a *App) focusField(target formField) {
	for i, f := range a.fields() {
		if f == target {
			a.calc.cursor = i
			return
		}
	}
}

func (a App) calcStartEdit() (tea.Model, tea.Cmd) {
	f, ok := a.focusedField()
	if !ok {
		return a, nil
	}

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 24
	switch f.kind {
	case fieldItemName:
		ti.Placeholder = "name"
	case fieldTaxRate:
		ti.Placeholder = "percent"
	default:
		ti.Placeholder = "0"
	}
	ti.SetValue(editValue(a.inputs, f))
	ti.Focus()

	a.calc.orig = a.inputs.Clone()
	a.calc.input = ti
	a.calc.editing = true
	return a, ti.Cursor.BlinkCmd()
}

// updateCalcInput applies every keystroke to the inputs so results track
// the text as it is typed.
func (a App) updateCalcInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f, ok := a.focusedField()
	if !ok {
		a.calc.editing = false
		return a, nil
	}

	switch msg.String() {
	case "enter":
		if f.kind == fieldItemName {
			applyField(&a.inputs, f, strings.TrimSpace(a.calc.input.Value()))
		}
		a.calc.editing = false
		a.recompute()
		return a, nil
	case "esc":
		a.inputs = a.calc.orig
		a.calc.editing = false
		a.recompute()
		return a, nil
	}

	var cmd tea.Cmd
	a.calc.input, cmd = a.calc.input.Update(msg)
	applyField(&a.inputs, f, a.calc.input.Value())
	a.out = model.ComputeWithMargin(a.inputs, a.margin)
	return a, cmd
}

func (a App) renderCalculatorTab(cw int) string {
	if a.isCompactLayout() {
		return a.renderForm(cw) + "\n" + a.renderResults(cw)
	}
	widths := components.LayoutRow(cw, 2)
	return components.CardRow([]string{a.renderForm(widths[0]), a.renderResults(widths[1])})
}

func (a App) renderForm(w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Magenta).Bold(true)
	selectedStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	fields := a.fields()
	cursorField, _ := a.focusedField()

	labelW := 18
	cell := func(f formField, text string, width int) string {
		focused := len(fields) > 0 && f == cursorField
		if focused && a.calc.editing {
			return a.calc.input.View()
		}
		text = fmt.Sprintf("%-*s", width, truncStr(text, width))
		if focused {
			return selectedStyle.Render(text)
		}
		return valueStyle.Render(text)
	}
	marker := func(focused bool) string {
		if focused {
			return markerStyle.Render("▸ ")
		}
		return "  "
	}

	var b strings.Builder
	scalar := func(f formField, label, value string) {
		b.WriteString(marker(f == cursorField))
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)))
		b.WriteString(cell(f, value, 14))
		b.WriteString("\n")
	}
	list := func(l model.ItemList, title string) {
		b.WriteString(sectionStyle.Render("  " + title))
		b.WriteString("\n")
		items := *a.inputs.Items(l)
		if len(items) == 0 {
			b.WriteString(hintStyle.Render("    no items, press a to add"))
			b.WriteString("\n")
			return
		}
		nameW := innerW - 2 - 2 - 14 - 2
		if nameW > 28 {
			nameW = 28
		}
		if nameW < 10 {
			nameW = 10
		}
		for i, it := range items {
			nameF := formField{kind: fieldItemName, list: l, idx: i}
			priceF := formField{kind: fieldItemPrice, list: l, idx: i}
			name := it.Name
			if name == "" && !(a.calc.editing && nameF == cursorField) {
				name = "(unnamed)"
			}
			b.WriteString(marker(nameF == cursorField || priceF == cursorField))
			b.WriteString("  ")
			b.WriteString(cell(nameF, name, nameW))
			b.WriteString("  ")
			b.WriteString(cell(priceF, cli.FormatMoney(it.Price), 14))
			b.WriteString("\n")
		}
	}

	scalar(formField{kind: fieldMaxIncome}, "Max Income", cli.FormatMoney(a.inputs.MaxIncome))
	scalar(formField{kind: fieldDevCost}, "Development Cost", cli.FormatMoney(a.inputs.DevelopmentCost))
	list(model.HardwareList, "Hardware")
	scalar(formField{kind: fieldMonthly}, "Monthly Cost", cli.FormatMoney(a.inputs.MonthlyCost))
	list(model.OperationalList, "Operational")
	scalar(formField{kind: fieldTaxRate}, "Tax Rate", cli.FormatPercent(a.inputs.TaxRate))

	b.WriteString("\n")
	if a.calc.editing {
		b.WriteString(hintStyle.Render("[Enter] done  [Esc] cancel"))
	} else {
		b.WriteString(hintStyle.Render("[j/k] move  [Enter] edit  [a] add row  [d] remove row"))
	}

	return components.ContentCard("Inputs", b.String(), w)
}

func (a App) renderResults(w int) string {
	t := theme.Active
	out := a.out

	profitTone := t.Green
	if out.MaxProfit < 0 {
		profitTone = t.Red
	}
	cards := []components.Metric{
		{Label: "Total with Taxes", Value: cli.FormatMoney(out.TotalWithTaxes),
			Note: "costs + " + cli.FormatPercent(a.inputs.TaxRate) + " tax", Tone: t.AccentBright},
		{Label: "Max Profit", Value: cli.FormatMoney(out.MaxProfit),
			Note: "at " + cli.FormatMoney(a.inputs.MaxIncome) + " income", Tone: profitTone},
		{Label: "Min Income", Value: cli.FormatMoney(out.MinIncome),
			Note: "for a " + cli.FormatRatio(out.ProfitMargin) + " margin"},
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	totalStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	profitStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	lossStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)

	money := func(v float64) string { return fmt.Sprintf("%14s", cli.FormatMoney(v)) }
	profit := func(v float64) string {
		if v < 0 {
			return lossStyle.Render(money(v))
		}
		return profitStyle.Render(money(v))
	}

	rows := []struct {
		label string
		value string
	}{
		{"Hardware Cost", valueStyle.Render(money(out.HardwareCost))},
		{"Operational Cost", valueStyle.Render(money(out.OperationalCost))},
		{"Total Costs", valueStyle.Render(money(out.TotalCosts))},
		{"Taxes", valueStyle.Render(money(out.Taxes))},
		{"Total with Taxes", totalStyle.Render(money(out.TotalWithTaxes))},
		{"", ""},
		{"Max Profit", profit(out.MaxProfit)},
		{"Min Income", valueStyle.Render(money(out.MinIncome))},
		{"Min Profit", profit(out.MinProfit)},
	}

	var body strings.Builder
	for i, r := range rows {
		if r.label != "" {
			body.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", r.label)))
			body.WriteString(r.value)
		}
		if i < len(rows)-1 {
			body.WriteString("\n")
		}
	}

	return components.MetricCardRow(cards, w) + "\n" +
		components.ContentCard("Results", body.String(), w)
}
