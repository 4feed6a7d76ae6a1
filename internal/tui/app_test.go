package tui

import (
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/vaporcalc/internal/config"
	"github.com/theirongolddev/vaporcalc/internal/model"
	"github.com/theirongolddev/vaporcalc/internal/store"
	"github.com/theirongolddev/vaporcalc/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeStore struct {
	saved map[string]model.Inputs
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string]model.Inputs)}
}

func (f *fakeStore) Save(name string, in model.Inputs) error {
	f.saved[name] = in.Clone()
	return nil
}

func (f *fakeStore) Load(name string) (store.Scenario, error) {
	in, ok := f.saved[name]
	if !ok {
		return store.Scenario{}, fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	return store.Scenario{Name: name, Inputs: in.Clone()}, nil
}

func (f *fakeStore) List() ([]store.Summary, error) {
	var out []store.Summary
	for name, in := range f.saved {
		out = append(out, store.Summary{
			Name:           name,
			Items:          len(in.HardwareItems) + len(in.OperationalItems),
			TotalWithTaxes: model.Compute(in).TotalWithTaxes,
			MaxIncome:      in.MaxIncome,
			UpdatedAt:      time.Now(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) Delete(name string) error {
	if _, ok := f.saved[name]; !ok {
		return store.ErrNotFound
	}
	delete(f.saved, name)
	return nil
}

func newTestApp(s ScenarioStore) App {
	return NewApp(Options{
		Config: config.DefaultConfig(),
		Inputs: model.DefaultInputs(),
		Margin: model.DefaultProfitMargin,
		Store:  s,
	})
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		m, _ := a.Update(keyMsg(k))
		a = m.(App)
	}
	return a
}

func TestNewApp_ComputesOutputs(t *testing.T) {
	a := newTestApp(nil)
	if a.out.TotalWithTaxes != 9000 {
		t.Errorf("TotalWithTaxes = %v, want 9000", a.out.TotalWithTaxes)
	}
	if a.out.MinIncome != 11250 {
		t.Errorf("MinIncome = %v, want 11250", a.out.MinIncome)
	}
}

func TestNewApp_InvalidMarginFallsBack(t *testing.T) {
	a := NewApp(Options{Inputs: model.DefaultInputs(), Margin: 1})
	if a.margin != model.DefaultProfitMargin {
		t.Errorf("margin = %v, want default", a.margin)
	}
}

func TestFieldsOrder(t *testing.T) {
	a := newTestApp(nil)
	fs := a.fields()
	want := []fieldKind{
		fieldMaxIncome, fieldDevCost,
		fieldItemName, fieldItemPrice, // Server
		fieldMonthly,
		fieldItemName, fieldItemPrice, // Office Rent
		fieldTaxRate,
	}
	if len(fs) != len(want) {
		t.Fatalf("len(fields) = %d, want %d", len(fs), len(want))
	}
	for i, k := range want {
		if fs[i].kind != k {
			t.Errorf("fields[%d].kind = %d, want %d", i, fs[i].kind, k)
		}
	}
	if fs[5].list != model.OperationalList {
		t.Errorf("fields[5].list = %v, want operational", fs[5].list)
	}
}

func TestAddRowEditsLiveAndCommits(t *testing.T) {
	a := newTestApp(nil)

	// Cursor on Max Income: `a` appends to hardware and starts editing its name.
	a = press(t, a, "a")
	if len(a.inputs.HardwareItems) != 2 {
		t.Fatalf("HardwareItems = %+v, want 2 rows", a.inputs.HardwareItems)
	}
	if !a.calc.editing {
		t.Fatal("expected name edit to start after adding a row")
	}
	a = press(t, a, "GPU", "enter")
	if got := a.inputs.HardwareItems[1].Name; got != "GPU" {
		t.Errorf("new row name = %q, want GPU", got)
	}

	// Move to the price cell and type; outputs follow each keystroke.
	a = press(t, a, "j", "enter", "500")
	if a.out.HardwareCost != 1500 {
		t.Errorf("live HardwareCost = %v, want 1500", a.out.HardwareCost)
	}
	a = press(t, a, "enter")
	if a.calc.editing {
		t.Error("still editing after enter")
	}
	if a.out.TotalWithTaxes != 9600 {
		t.Errorf("TotalWithTaxes = %v, want 9600", a.out.TotalWithTaxes)
	}
}

func TestEscRestoresInputs(t *testing.T) {
	a := newTestApp(nil)
	a = press(t, a, "a", "enter") // add hardware row, accept empty name
	a = press(t, a, "j", "enter", "123")
	if a.out.HardwareCost != 1123 {
		t.Fatalf("live HardwareCost = %v, want 1123", a.out.HardwareCost)
	}
	a = press(t, a, "esc")
	if a.out.HardwareCost != 1000 {
		t.Errorf("HardwareCost after esc = %v, want 1000", a.out.HardwareCost)
	}
}

func TestRemoveRow(t *testing.T) {
	a := newTestApp(nil)
	before := a.out

	a = press(t, a, "a", "enter") // empty hardware row added
	a = press(t, a, "d")
	if len(a.inputs.HardwareItems) != 1 {
		t.Fatalf("HardwareItems = %+v, want 1 row", a.inputs.HardwareItems)
	}
	if a.out != before {
		t.Errorf("outputs after add+remove = %+v, want %+v", a.out, before)
	}

	// d on a scalar field is a no-op
	a.calc.cursor = 0
	a = press(t, a, "d")
	if len(a.inputs.HardwareItems) != 1 {
		t.Errorf("d on scalar removed a row: %+v", a.inputs.HardwareItems)
	}
}

func TestAddOnMonthlyTargetsOperational(t *testing.T) {
	a := newTestApp(nil)
	a.calc.cursor = 4 // Monthly Cost
	a = press(t, a, "a")
	if len(a.inputs.OperationalItems) != 2 {
		t.Errorf("OperationalItems = %+v, want 2 rows", a.inputs.OperationalItems)
	}
}

func TestApplyField(t *testing.T) {
	in := model.DefaultInputs()
	applyField(&in, formField{kind: fieldTaxRate}, "15%")
	if in.TaxRate != 15 {
		t.Errorf("TaxRate = %v, want 15", in.TaxRate)
	}
	applyField(&in, formField{kind: fieldMaxIncome}, "$12,500")
	if in.MaxIncome != 12500 {
		t.Errorf("MaxIncome = %v, want 12500", in.MaxIncome)
	}
	applyField(&in, formField{kind: fieldDevCost}, "lots")
	if in.DevelopmentCost != 0 {
		t.Errorf("DevelopmentCost = %v, want 0", in.DevelopmentCost)
	}
	applyField(&in, formField{kind: fieldItemPrice, list: model.OperationalList, idx: 0}, "99")
	if in.OperationalItems[0].Price != 99 {
		t.Errorf("OperationalItems[0].Price = %v, want 99", in.OperationalItems[0].Price)
	}
	// out of range is ignored
	applyField(&in, formField{kind: fieldItemName, list: model.HardwareList, idx: 7}, "x")
	if len(in.HardwareItems) != 1 {
		t.Errorf("HardwareItems = %+v", in.HardwareItems)
	}
}

func TestParseMarginPercent(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"20", 0.2, true},
		{"35%", 0.35, true},
		{"0", 0, true},
		{"100", 0, false},
		{"-5", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := parseMarginPercent(c.in)
		if ok != c.ok || (ok && model.Round(got) != c.want) {
			t.Errorf("parseMarginPercent(%q) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestSaveScenario(t *testing.T) {
	fs := newFakeStore()
	a := newTestApp(fs)

	a = press(t, a, "ctrl+s")
	if !a.saving {
		t.Fatal("ctrl+s did not open the save prompt")
	}
	a = press(t, a, "launch")

	m, cmd := a.Update(keyMsg("enter"))
	a = m.(App)
	if cmd == nil {
		t.Fatal("enter returned no save command")
	}
	m, _ = a.Update(cmd())
	a = m.(App)

	if _, ok := fs.saved["launch"]; !ok {
		t.Fatalf("store has %v, want launch", fs.saved)
	}
	if a.scenario != "launch" {
		t.Errorf("scenario = %q, want launch", a.scenario)
	}
}

func TestSaveWithoutStore(t *testing.T) {
	a := press(t, newTestApp(nil), "ctrl+s")
	if a.saving {
		t.Error("save prompt opened without a store")
	}
	if !strings.Contains(a.status, "unavailable") {
		t.Errorf("status = %q", a.status)
	}
}

func TestOpenScenarioFromList(t *testing.T) {
	fs := newFakeStore()
	_ = fs.Save("lean", model.Inputs{MaxIncome: 5000, DevelopmentCost: 1000})
	a := newTestApp(fs)

	a.activeTab = tabScenarios
	m, _ := a.Update(listScenariosCmd(fs)())
	a = m.(App)
	if len(a.scenList.items) != 1 {
		t.Fatalf("items = %+v", a.scenList.items)
	}

	m, cmd := a.Update(keyMsg("enter"))
	a = m.(App)
	if cmd == nil {
		t.Fatal("enter returned no open command")
	}
	m, _ = a.Update(cmd())
	a = m.(App)

	if a.activeTab != tabCalculator {
		t.Errorf("activeTab = %d, want calculator", a.activeTab)
	}
	if a.scenario != "lean" || a.out.TotalWithTaxes != 1000 {
		t.Errorf("scenario = %q, TotalWithTaxes = %v", a.scenario, a.out.TotalWithTaxes)
	}
}

func TestSettingsMarginRecomputes(t *testing.T) {
	a := newTestApp(nil)
	a.activeTab = tabSettings
	a.settings.cursor = settingsFieldMargin
	a.settings.input = newSettingsInput()
	a.settings.input.SetValue("50")
	a.settingsSave()

	if a.settings.saveErr != nil {
		t.Fatalf("saveErr = %v", a.settings.saveErr)
	}
	if a.out.MinIncome != 18000 || a.out.MinProfit != 9000 {
		t.Errorf("MinIncome/MinProfit = %v/%v, want 18000/9000", a.out.MinIncome, a.out.MinProfit)
	}
	if a.cfg.Model.ProfitMargin != 0.5 {
		t.Errorf("cfg margin = %v, want 0.5", a.cfg.Model.ProfitMargin)
	}

	a.settings.input.SetValue("120")
	a.settingsSave()
	if a.settings.saveErr == nil {
		t.Error("margin 120% accepted")
	}
	if a.margin != 0.5 {
		t.Errorf("margin changed to %v after rejected input", a.margin)
	}
}

func TestApplySetup(t *testing.T) {
	orig := theme.Active
	defer func() { theme.Active = orig }()

	cfg := config.DefaultConfig()
	cfg.Defaults = config.DefaultsConfig{}

	err := ApplySetup(&cfg, SetupValues{Theme: "tokyo-night", Margin: "25", Currency: " € ", Defaults: true})
	if err != nil {
		t.Fatalf("ApplySetup: %v", err)
	}
	if cfg.Model.ProfitMargin != 0.25 || cfg.Model.Currency != "€" || cfg.Appearance.Theme != "tokyo-night" {
		t.Errorf("cfg = %+v", cfg)
	}
	if model.Compute(cfg.Inputs()) != model.Compute(model.DefaultInputs()) {
		t.Error("Defaults did not reset starting inputs")
	}

	if err := ApplySetup(&cfg, SetupValues{Margin: "abc"}); err == nil {
		t.Error("ApplySetup accepted a non-numeric margin")
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(newFakeStore())
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	a = m.(App)

	wants := []string{"Max Profit", "Income vs Costs", "No saved scenarios", "Profit Margin"}
	for tab, want := range wants {
		a.activeTab = tab
		view := a.View()
		if !strings.Contains(view, want) {
			t.Errorf("tab %d view missing %q", tab, want)
		}
		if got := len(strings.Split(view, "\n")); got != 45 {
			t.Errorf("tab %d view height = %d, want 45", tab, got)
		}
	}
}

func TestViewRendersOverflowedInputs(t *testing.T) {
	a := newTestApp(newFakeStore())
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	a = m.(App)
	a.inputs.DevelopmentCost = 1e308
	a.inputs.MonthlyCost = 1e308
	a.recompute()

	for tab := range 4 {
		a.activeTab = tab
		view := a.View()
		if got := len(strings.Split(view, "\n")); got != 45 {
			t.Errorf("tab %d view height = %d, want 45", tab, got)
		}
	}
	a.activeTab = 0
	if view := a.View(); !strings.Contains(view, "∞") {
		t.Error("calculator should show overflowed totals as ∞")
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(nil)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(m.View(), "too narrow") {
		t.Error("expected too-narrow notice")
	}
}
