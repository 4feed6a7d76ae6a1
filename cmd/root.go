// Package cmd implements the vaporcalc CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/vaporcalc/internal/cli"
	"github.com/theirongolddev/vaporcalc/internal/config"
	"github.com/theirongolddev/vaporcalc/internal/model"
	"github.com/theirongolddev/vaporcalc/internal/store"
	"github.com/theirongolddev/vaporcalc/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagConfigPath string
	flagMargin     float64
	flagQuiet      bool
)

// cfg is loaded once per invocation by the root pre-run hook.
var cfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "vaporcalc",
	Short: "SaaS cost and profit calculator",
	Long: "Estimate what a SaaS product costs to run and what it must earn.\n" +
		"Edit costs interactively with `vaporcalc tui`, or print a report with flags.",
	PersistentPreRunE: loadConfig,
	RunE:              runCalc,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().Float64Var(&flagMargin, "margin", model.DefaultProfitMargin, "Profit margin for the min scenario, 0 <= m < 1")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress warnings")
}

func configPath() string {
	if flagConfigPath != "" {
		return flagConfigPath
	}
	return config.Path()
}

// loadConfig reads the config file and applies its appearance settings.
// An unreadable or invalid file falls back to defaults with a warning.
func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.LoadFrom(configPath())
	if err != nil {
		warnf("Config unusable, using defaults: %v\n", err)
	}
	cfg = loaded

	theme.SetActive(cfg.Appearance.Theme)
	if cfg.Model.Currency != "" {
		cli.Currency = cfg.Model.Currency
	}
	return nil
}

// effectiveMargin returns --margin when given, else the configured margin.
func effectiveMargin(cmd *cobra.Command) (float64, error) {
	m := cfg.Model.ProfitMargin
	if f := cmd.Flags().Lookup("margin"); f != nil && f.Changed {
		m = flagMargin
	}
	if m < 0 || m >= 1 {
		return 0, fmt.Errorf("%w (got %v)", config.ErrInvalidMargin, m)
	}
	return m, nil
}

// openStore opens the scenario database named by the config.
func openStore() (*store.Store, error) {
	s, err := store.Open(cfg.StorePath())
	if err != nil {
		return nil, fmt.Errorf("opening scenario store: %w", err)
	}
	return s, nil
}

func warnf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format, args...)
}
