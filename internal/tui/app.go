// Package tui provides the interactive Bubble Tea calculator for vaporcalc.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/vaporcalc/internal/cli"
	"github.com/theirongolddev/vaporcalc/internal/config"
	"github.com/theirongolddev/vaporcalc/internal/model"
	"github.com/theirongolddev/vaporcalc/internal/store"
	"github.com/theirongolddev/vaporcalc/internal/tui/components"
	"github.com/theirongolddev/vaporcalc/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ScenarioStore is the part of the scenario database the TUI needs.
type ScenarioStore interface {
	Save(name string, in model.Inputs) error
	Load(name string) (store.Scenario, error)
	List() ([]store.Summary, error)
	Delete(name string) error
}

// Options configures a new App.
type Options struct {
	Config     config.Config
	ConfigPath string        // where settings are persisted; empty disables saving
	Inputs     model.Inputs  // starting inputs
	Margin     float64       // profit margin used for the min scenario
	Scenario   string        // name of the scenario the inputs came from, if any
	Store      ScenarioStore // optional
	NeedSetup  bool          // show the first-run form
}

// App is the root Bubble Tea model.
type App struct {
	// Model
	inputs   model.Inputs
	out      model.Outputs
	margin   float64
	scenario string

	cfg     config.Config
	cfgPath string
	store   ScenarioStore

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	status    string

	// Per-tab state
	calc     calcState
	scenList scenariosState
	settings settingsState

	// Save-as prompt (ctrl+s)
	saving    bool
	saveInput textinput.Model

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues // shared with the form across model copies
	needSetup bool

	spinner spinner.Model
}

const (
	tabCalculator = iota
	tabChart
	tabScenarios
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5 // minimum content area height
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	margin := opts.Margin
	if margin < 0 || margin >= 1 {
		margin = model.DefaultProfitMargin
	}

	a := App{
		inputs:    opts.Inputs.Clone(),
		margin:    margin,
		scenario:  opts.Scenario,
		cfg:       opts.Config,
		cfgPath:   opts.ConfigPath,
		store:     opts.Store,
		needSetup: opts.NeedSetup,
		spinner:   sp,
	}
	if a.needSetup {
		vals := SetupValuesFrom(a.cfg)
		a.setupVals = &vals
		a.setupForm = NewSetupForm(a.setupVals)
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// recompute derives every output from the current inputs.
func (a *App) recompute() {
	a.out = model.ComputeWithMargin(a.inputs, a.margin)
	a.calc.clampCursor(len(a.fields()))
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil || a.calc.editing || a.settings.editing || a.saving {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
			return a, nil
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
			return a, nil
		case tea.MouseButtonLeft:
			// Tab bar plus the info row
			if msg.Y <= 1 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					return a.switchTab(tab)
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup form intercepts all keys
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Text inputs intercept all keys
		switch {
		case a.saving:
			return a.updateSaveInput(msg)
		case a.activeTab == tabCalculator && a.calc.editing:
			return a.updateCalcInput(msg)
		case a.activeTab == tabSettings && a.settings.editing:
			return a.updateSettingsInput(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if key == "ctrl+s" {
			return a.startSave()
		}

		// Per-tab keybindings
		switch a.activeTab {
		case tabCalculator:
			if m, cmd, ok := a.updateCalcKeys(key); ok {
				return m, cmd
			}
		case tabScenarios:
			if m, cmd, ok := a.updateScenariosKeys(key); ok {
				return m, cmd
			}
		case tabSettings:
			if m, cmd, ok := a.updateSettingsKeys(key); ok {
				return m, cmd
			}
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Tab navigation
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				return a.switchTab(idx)
			}
		}
		switch key {
		case "left", "shift+tab":
			return a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
		case "right", "tab":
			return a.switchTab((a.activeTab + 1) % len(components.Tabs))
		}
		return a, nil

	case scenariosLoadedMsg:
		a.scenList.loading = false
		a.scenList.items = msg.items
		a.scenList.err = msg.err
		if a.scenList.cursor >= len(a.scenList.items) {
			a.scenList.cursor = len(a.scenList.items) - 1
		}
		if a.scenList.cursor < 0 {
			a.scenList.cursor = 0
		}
		return a, nil

	case scenarioOpenedMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("open failed: %v", msg.err)
			return a, nil
		}
		a.inputs = msg.scenario.Inputs
		a.scenario = msg.scenario.Name
		a.calc = calcState{}
		a.recompute()
		a.activeTab = tabCalculator
		a.status = "opened " + msg.scenario.Name
		return a, nil

	case scenarioSavedMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("save failed: %v", msg.err)
			return a, nil
		}
		a.scenario = msg.name
		a.status = "saved " + msg.name
		if a.activeTab == tabScenarios {
			cmd := a.loadScenarios()
			return a, cmd
		}
		return a, nil

	case scenarioDeletedMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("delete failed: %v", msg.err)
			return a, nil
		}
		a.status = "deleted " + msg.name
		if a.scenario == msg.name {
			a.scenario = ""
		}
		cmd := a.loadScenarios()
		return a, cmd

	case spinner.TickMsg:
		if a.scenList.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the active text input or setup form
	// (cursor blinks, etc.)
	switch {
	case a.setupForm != nil:
		return a.updateSetupForm(msg)
	case a.calc.editing:
		var cmd tea.Cmd
		a.calc.input, cmd = a.calc.input.Update(msg)
		return a, cmd
	case a.settings.editing:
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	case a.saving:
		var cmd tea.Cmd
		a.saveInput, cmd = a.saveInput.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) switchTab(idx int) (tea.Model, tea.Cmd) {
	a.activeTab = idx
	if idx == tabScenarios {
		cmd := a.loadScenarios()
		return a, cmd
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case tabCalculator:
		a.calc.cursor += delta
		a.calc.clampCursor(len(a.fields()))
	case tabScenarios:
		a.scenList.cursor += delta
		if a.scenList.cursor >= len(a.scenList.items) {
			a.scenList.cursor = len(a.scenList.items) - 1
		}
		if a.scenList.cursor < 0 {
			a.scenList.cursor = 0
		}
	case tabSettings:
		a.settings.cursor += delta
		if a.settings.cursor >= settingsFieldCount {
			a.settings.cursor = settingsFieldCount - 1
		}
		if a.settings.cursor < 0 {
			a.settings.cursor = 0
		}
	}
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := ApplySetup(&a.cfg, *a.setupVals); err != nil {
			a.status = err.Error()
		} else {
			a.margin = a.cfg.Model.ProfitMargin
			cli.Currency = a.cfg.Model.Currency
			if a.setupVals.Defaults {
				a.inputs = a.cfg.Inputs()
			}
			a.recompute()
			if err := a.saveConfig(); err != nil {
				a.status = fmt.Sprintf("could not save config: %v", err)
			}
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil

	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// saveConfig persists a.cfg when a config path is set.
func (a App) saveConfig() error {
	if a.cfgPath == "" {
		return nil
	}
	return config.SaveTo(a.cfgPath, a.cfg)
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	// First-run setup form
	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  vaporcalc needs at least %d columns.\n  Current width: %d\n",
		a.width,
		minTerminalWidth,
		a.width,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Magenta).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"c h s x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move between fields"},
		}},
		{"Calculator", []struct{ key, desc string }{
			{"Enter", "Edit field"},
			{"Esc", "Cancel edit"},
			{"a", "Add a row to the focused list"},
			{"d", "Remove the focused row"},
		}},
		{"Scenarios", []struct{ key, desc string }{
			{"^s", "Save inputs as a scenario"},
			{"Enter", "Open scenario"},
			{"D", "Delete scenario"},
			{"r", "Reload list"},
		}},
		{"General", []struct{ key, desc string }{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + info pill
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	name := a.scenario
	if name == "" {
		name = "unsaved"
	}
	info := pillStyle.Render(" ") +
		pillAccentStyle.Render(name) +
		pillStyle.Render(" │ margin ") +
		pillAccentStyle.Render(cli.FormatRatio(a.margin)) +
		pillStyle.Render(" │ tax ") +
		pillAccentStyle.Render(cli.FormatPercent(a.inputs.TaxRate)) +
		pillStyle.Render(" ")

	infoRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		infoRowStyle.Render(info)

	// 2. Status bar (or the save prompt)
	var statusBar string
	if a.saving {
		promptStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
		statusBar = lipgloss.NewStyle().Background(t.Surface).Width(w).Render(
			promptStyle.Render(" Save as: ") + a.saveInput.View())
	} else {
		statusBar = components.RenderStatusBar(w, components.StatusLine{
			Scenario: a.scenario,
			Notice:   a.status,
			Loss:     a.out.MaxProfit < 0,
		})
	}

	// 3. Content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabCalculator:
		content = a.renderCalculatorTab(cw)
	case tabChart:
		content = a.renderChartTab(cw, contentH)
	case tabScenarios:
		content = a.renderScenariosTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when w > cw
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Save As ────────────────────────────────────────────────────

func (a App) startSave() (tea.Model, tea.Cmd) {
	if a.store == nil {
		a.status = "scenario store unavailable"
		return a, nil
	}
	ti := textinput.New()
	ti.Placeholder = "scenario name"
	ti.CharLimit = 64
	ti.Width = 40
	ti.SetValue(a.scenario)
	ti.Focus()
	a.saveInput = ti
	a.saving = true
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSaveInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.saving = false
		name := strings.TrimSpace(a.saveInput.Value())
		if name == "" {
			a.status = "save cancelled: empty name"
			return a, nil
		}
		return a, saveScenarioCmd(a.store, name, a.inputs.Clone())
	case "esc":
		a.saving = false
		return a, nil
	}

	var cmd tea.Cmd
	a.saveInput, cmd = a.saveInput.Update(msg)
	return a, cmd
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
