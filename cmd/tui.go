package cmd

import (
	"fmt"

	"github.com/theirongolddev/vaporcalc/internal/config"
	"github.com/theirongolddev/vaporcalc/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive calculator",
	RunE:  runTUI,
}

func init() {
	// Same input sources as calc, so a saved scenario or file can seed the form.
	addInputFlags(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	margin, err := effectiveMargin(cmd)
	if err != nil {
		return err
	}
	in, name, err := buildInputs(cmd)
	if err != nil {
		return err
	}

	// The TUI works without saved scenarios, so a broken store is only a warning.
	var scenarios tui.ScenarioStore
	if s, err := openStore(); err != nil {
		warnf("%v; saving disabled\n", err)
	} else {
		defer s.Close()
		scenarios = s
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(tui.Options{
		Config:     cfg,
		ConfigPath: configPath(),
		Inputs:     in,
		Margin:     margin,
		Scenario:   name,
		Store:      scenarios,
		NeedSetup:  flagConfigPath == "" && !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
