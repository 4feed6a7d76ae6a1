package cmd

import (
	"fmt"

	"github.com/theirongolddev/vaporcalc/internal/cli"
	"github.com/theirongolddev/vaporcalc/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	path := configPath()
	fmt.Printf("  Config file: %s\n", path)
	if _, err := config.LoadFrom(path); err != nil {
		fmt.Printf("  Status: invalid (%v), using defaults\n", err)
	} else if flagConfigPath == "" && !config.Exists() {
		fmt.Println("  Status: using defaults (no config file)")
	} else {
		fmt.Println("  Status: loaded")
	}
	fmt.Println()

	fmt.Println("  [Model]")
	fmt.Printf("    Profit margin: %s\n", cli.FormatRatio(cfg.Model.ProfitMargin))
	fmt.Printf("    Currency:      %s\n", cfg.Model.Currency)
	fmt.Println()

	in := cfg.Inputs()
	fmt.Println("  [Defaults]")
	fmt.Printf("    Max income:        %s\n", cli.FormatMoney(in.MaxIncome))
	fmt.Printf("    Development cost:  %s\n", cli.FormatMoney(in.DevelopmentCost))
	fmt.Printf("    Monthly cost:      %s\n", cli.FormatMoney(in.MonthlyCost))
	fmt.Printf("    Tax rate:          %s\n", cli.FormatPercent(in.TaxRate))
	fmt.Printf("    Hardware items:    %d\n", len(in.HardwareItems))
	fmt.Printf("    Operational items: %d\n", len(in.OperationalItems))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Store]")
	fmt.Printf("    Path: %s\n", cfg.StorePath())
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", cfg.Server.Addr)
	fmt.Printf("    Events buffer: %d\n", cfg.Server.EventsBuffer)
	fmt.Println()

	fmt.Println("  Run `vaporcalc setup` to reconfigure.")
	return nil
}
