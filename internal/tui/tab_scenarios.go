package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/vaporcalc/internal/cli"
	"github.com/theirongolddev/vaporcalc/internal/model"
	"github.com/theirongolddev/vaporcalc/internal/store"
	"github.com/theirongolddev/vaporcalc/internal/tui/components"
	"github.com/theirongolddev/vaporcalc/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// scenariosState holds the scenarios tab state.
type scenariosState struct {
	cursor  int
	items   []store.Summary
	loading bool
	err     error
}

type scenariosLoadedMsg struct {
	items []store.Summary
	err   error
}

type scenarioOpenedMsg struct {
	scenario store.Scenario
	err      error
}

type scenarioSavedMsg struct {
	name string
	err  error
}

type scenarioDeletedMsg struct {
	name string
	err  error
}

// loadScenarios marks the list as loading and returns the fetch command.
func (a *App) loadScenarios() tea.Cmd {
	if a.store == nil {
		return nil
	}
	a.scenList.loading = true
	return tea.Batch(listScenariosCmd(a.store), a.spinner.Tick)
}

func listScenariosCmd(s ScenarioStore) tea.Cmd {
	return func() tea.Msg {
		items, err := s.List()
		return scenariosLoadedMsg{items: items, err: err}
	}
}

func openScenarioCmd(s ScenarioStore, name string) tea.Cmd {
	return func() tea.Msg {
		sc, err := s.Load(name)
		return scenarioOpenedMsg{scenario: sc, err: err}
	}
}

func saveScenarioCmd(s ScenarioStore, name string, in model.Inputs) tea.Cmd {
	return func() tea.Msg {
		return scenarioSavedMsg{name: name, err: s.Save(name, in)}
	}
}

func deleteScenarioCmd(s ScenarioStore, name string) tea.Cmd {
	return func() tea.Msg {
		return scenarioDeletedMsg{name: name, err: s.Delete(name)}
	}
}

func (a App) updateScenariosKeys(key string) (tea.Model, tea.Cmd, bool) {
	if a.store == nil {
		return a, nil, false
	}
	ss := &a.scenList
	switch key {
	case "j", "down":
		if ss.cursor < len(ss.items)-1 {
			ss.cursor++
		}
		return a, nil, true
	case "k", "up":
		if ss.cursor > 0 {
			ss.cursor--
		}
		return a, nil, true
	case "enter":
		if ss.cursor < len(ss.items) {
			return a, openScenarioCmd(a.store, ss.items[ss.cursor].Name), true
		}
		return a, nil, true
	case "D":
		if ss.cursor < len(ss.items) {
			return a, deleteScenarioCmd(a.store, ss.items[ss.cursor].Name), true
		}
		return a, nil, true
	case "r":
		cmd := a.loadScenarios()
		return a, cmd, true
	}
	return a, nil, false
}

func (a App) renderScenariosTab(cw int) string {
	t := theme.Active
	ss := a.scenList

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	switch {
	case a.store == nil:
		return components.ContentCard("Scenarios", mutedStyle.Render("Scenario store unavailable"), cw)
	case ss.loading:
		return components.ContentCard("Scenarios", a.spinner.View()+mutedStyle.Render(" Loading scenarios..."), cw)
	case ss.err != nil:
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange)
		return components.ContentCard("Scenarios", warnStyle.Render(fmt.Sprintf("Could not list scenarios: %v", ss.err)), cw)
	case len(ss.items) == 0:
		return components.ContentCard("Scenarios",
			mutedStyle.Render("No saved scenarios yet")+"\n\n"+hintStyle.Render("Press ctrl+s to save the current inputs"), cw)
	}

	innerW := components.CardInnerWidth(cw)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	currentStyle := lipgloss.NewStyle().Foreground(t.Magenta)

	nameW := innerW - 2 - 7 - 14 - 14 - 18 - 4
	if nameW < 12 {
		nameW = 12
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %6s %14s %14s %18s",
		nameW, "Name", "Items", "Costs+Tax", "Max Income", "Updated")))
	b.WriteString("\n")

	for i, s := range ss.items {
		line := fmt.Sprintf("%-*s %6d %14s %14s %18s",
			nameW, truncStr(s.Name, nameW),
			s.Items,
			cli.FormatMoney(s.TotalWithTaxes),
			cli.FormatMoney(s.MaxIncome),
			s.UpdatedAt.Local().Format("2006-01-02 15:04"))

		mark := "  "
		if s.Name == a.scenario {
			mark = currentStyle.Render("● ")
		}
		if i == ss.cursor {
			b.WriteString(mark + selectedStyle.Render(line))
		} else {
			b.WriteString(mark + rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[j/k] move  [Enter] open  [D] delete  [r] reload"))

	return components.ContentCard(fmt.Sprintf("Scenarios (%d)", len(ss.items)), b.String(), cw)
}
