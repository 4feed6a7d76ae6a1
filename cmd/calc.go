package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/vaporcalc/internal/cli"
	"github.com/theirongolddev/vaporcalc/internal/model"
	"github.com/theirongolddev/vaporcalc/internal/scenario"

	"github.com/spf13/cobra"
)

var (
	flagFile        string
	flagScenario    string
	flagMaxIncome   float64
	flagDevCost     float64
	flagMonthlyCost float64
	flagTaxRate     float64
	flagHardware    []string
	flagOperational []string
	flagJSON        bool
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Print a cost and profit report",
	Long: "Print a cost and profit report.\n\n" +
		"Inputs start from the config defaults, then --file, then --scenario,\n" +
		"then individual flags. Any --hardware or --operational flag replaces\n" +
		"that whole list.",
	Example: "  vaporcalc calc --max-income 25000 --hardware Server=1200 --hardware NAS=600\n" +
		"  vaporcalc calc --scenario launch --json",
	RunE: runCalc,
}

func init() {
	// The root command runs calc too, so both carry the flags.
	for _, c := range []*cobra.Command{rootCmd, calcCmd} {
		addInputFlags(c)
		c.Flags().BoolVar(&flagJSON, "json", false, "Print {inputs, outputs, chart} as JSON")
	}
	rootCmd.AddCommand(calcCmd)
}

// addInputFlags registers the flags read by buildInputs.
func addInputFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVarP(&flagFile, "file", "f", "", "Read inputs from a YAML scenario file")
	f.StringVarP(&flagScenario, "scenario", "s", "", "Read inputs from a saved scenario")
	f.Float64Var(&flagMaxIncome, "max-income", 0, "Expected maximum income")
	f.Float64Var(&flagDevCost, "dev-cost", 0, "Development cost")
	f.Float64Var(&flagMonthlyCost, "monthly-cost", 0, "Monthly cost")
	f.Float64Var(&flagTaxRate, "tax-rate", 0, "Tax rate in percent")
	f.StringArrayVar(&flagHardware, "hardware", nil, "Hardware item as name=price (repeatable)")
	f.StringArrayVar(&flagOperational, "operational", nil, "Operational item as name=price (repeatable)")
}

// calcOverrides carries the per-field flags that were set explicitly.
type calcOverrides struct {
	MaxIncome   *float64
	DevCost     *float64
	MonthlyCost *float64
	TaxRate     *float64
	Hardware    []string
	Operational []string
}

func overridesFromFlags(cmd *cobra.Command) calcOverrides {
	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	var o calcOverrides
	if changed("max-income") {
		o.MaxIncome = &flagMaxIncome
	}
	if changed("dev-cost") {
		o.DevCost = &flagDevCost
	}
	if changed("monthly-cost") {
		o.MonthlyCost = &flagMonthlyCost
	}
	if changed("tax-rate") {
		o.TaxRate = &flagTaxRate
	}
	if changed("hardware") {
		o.Hardware = flagHardware
	}
	if changed("operational") {
		o.Operational = flagOperational
	}
	return o
}

// apply writes the overrides into in. Item flags replace the whole list.
func (o calcOverrides) apply(in *model.Inputs) {
	if o.MaxIncome != nil {
		in.MaxIncome = *o.MaxIncome
	}
	if o.DevCost != nil {
		in.DevelopmentCost = *o.DevCost
	}
	if o.MonthlyCost != nil {
		in.MonthlyCost = *o.MonthlyCost
	}
	if o.TaxRate != nil {
		in.TaxRate = *o.TaxRate
	}
	if o.Hardware != nil {
		in.HardwareItems = parseItems(o.Hardware)
	}
	if o.Operational != nil {
		in.OperationalItems = parseItems(o.Operational)
	}
}

func parseItems(specs []string) []model.LineItem {
	items := make([]model.LineItem, 0, len(specs))
	for _, s := range specs {
		items = append(items, model.ParseItem(s))
	}
	return items
}

// buildInputs layers config defaults, --file, --scenario and flag
// overrides. It returns the inputs and the scenario name they came from.
func buildInputs(cmd *cobra.Command) (model.Inputs, string, error) {
	in := cfg.Inputs()
	name := ""

	if flagFile != "" {
		f, err := scenario.ReadFile(flagFile)
		if err != nil {
			return model.Inputs{}, "", err
		}
		in, name = f.Inputs, f.Name
	}

	if flagScenario != "" {
		s, err := openStore()
		if err != nil {
			return model.Inputs{}, "", err
		}
		defer s.Close()

		sc, err := s.Load(flagScenario)
		if err != nil {
			return model.Inputs{}, "", err
		}
		in, name = sc.Inputs, sc.Name
	}

	overridesFromFlags(cmd).apply(&in)
	return in, name, nil
}

type calcReport struct {
	Inputs  model.Inputs        `json:"inputs"`
	Outputs model.Outputs       `json:"outputs"`
	Chart   []model.ScenarioBar `json:"chart"`
}

func runCalc(cmd *cobra.Command, _ []string) error {
	margin, err := effectiveMargin(cmd)
	if err != nil {
		return err
	}
	in, name, err := buildInputs(cmd)
	if err != nil {
		return err
	}

	out := model.ComputeWithMargin(in, margin)

	if flagJSON {
		if !out.Finite() {
			return errors.New("outputs overflow: amounts are too large to encode as JSON")
		}
		return printJSON(calcReport{Inputs: in, Outputs: out, Chart: model.ChartData(in, out)})
	}

	printReport(in, out, name)
	return nil
}

// printReport renders the title, both tables and the scenario chart.
func printReport(in model.Inputs, out model.Outputs, name string) {
	title := "SAAS COST CALCULATOR"
	if name != "" {
		title += "  " + name
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()
	fmt.Print(cli.RenderTable(inputsTable(in)))
	fmt.Println()
	fmt.Print(cli.RenderTable(resultsTable(out)))
	fmt.Println()
	fmt.Print(cli.RenderScenarioChart(model.ChartData(in, out), 40))

	if out.MaxProfit < 0 {
		warnf("Max income does not cover costs: short by %s\n", cli.FormatMoney(-out.MaxProfit))
	}
}

func inputsTable(in model.Inputs) cli.Table {
	rows := [][]string{
		{"Max Income", cli.FormatMoney(in.MaxIncome)},
		{"Development Cost", cli.FormatMoney(in.DevelopmentCost)},
	}
	for _, it := range in.HardwareItems {
		rows = append(rows, []string{"  hw: " + itemLabel(it), cli.FormatMoney(it.Price)})
	}
	rows = append(rows, []string{"Monthly Cost", cli.FormatMoney(in.MonthlyCost)})
	for _, it := range in.OperationalItems {
		rows = append(rows, []string{"  ops: " + itemLabel(it), cli.FormatMoney(it.Price)})
	}
	rows = append(rows, []string{"Tax Rate", cli.FormatPercent(in.TaxRate)})

	return cli.Table{
		Title:   "Inputs",
		Headers: []string{"Input", "Value"},
		Rows:    rows,
	}
}

func resultsTable(out model.Outputs) cli.Table {
	return cli.Table{
		Title:    "Results",
		Headers:  []string{"Metric", "Value"},
		Emphasis: map[int]bool{4: true},
		Rows: [][]string{
			{"Hardware Cost", cli.FormatMoney(out.HardwareCost)},
			{"Operational Cost", cli.FormatMoney(out.OperationalCost)},
			{"Total Costs", cli.FormatMoney(out.TotalCosts)},
			{"Taxes", cli.FormatMoney(out.Taxes)},
			{"Total with Taxes", cli.FormatMoney(out.TotalWithTaxes)},
			{"---"},
			{"Max Profit", cli.FormatMoney(out.MaxProfit)},
			{"Profit Margin", cli.FormatRatio(out.ProfitMargin)},
			{"Min Income", cli.FormatMoney(out.MinIncome)},
			{"Min Profit", cli.FormatMoney(out.MinProfit)},
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func itemLabel(it model.LineItem) string {
	if it.Name == "" {
		return "(unnamed)"
	}
	return it.Name
}
