package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/vaporcalc/internal/cli"
	"github.com/theirongolddev/vaporcalc/internal/model"
	"github.com/theirongolddev/vaporcalc/internal/scenario"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	flagExportOut  string
	flagImportName string
)

var scenarioCmd = &cobra.Command{
	Use:     "scenario",
	Aliases: []string{"scenarios", "sc"},
	Short:   "Manage saved scenarios",
}

var scenarioSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save inputs under a name (same input flags as calc)",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioSave,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios",
	Args:  cobra.NoArgs,
	RunE:  runScenarioList,
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print the report for a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioShow,
}

var scenarioDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioDelete,
}

var scenarioExportCmd = &cobra.Command{
	Use:   "export NAME",
	Short: "Write a saved scenario as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioExport,
}

var scenarioImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Save a YAML scenario file into the store (FILE may be -)",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioImport,
}

func init() {
	addInputFlags(scenarioSaveCmd)
	scenarioListCmd.Flags().BoolVar(&flagJSON, "json", false, "Print as JSON")
	scenarioShowCmd.Flags().BoolVar(&flagJSON, "json", false, "Print {inputs, outputs, chart} as JSON")
	scenarioExportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Write to file instead of stdout")
	scenarioImportCmd.Flags().StringVar(&flagImportName, "name", "", "Store under this name instead of the file's")

	scenarioCmd.AddCommand(scenarioSaveCmd, scenarioListCmd, scenarioShowCmd,
		scenarioDeleteCmd, scenarioExportCmd, scenarioImportCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func runScenarioSave(cmd *cobra.Command, args []string) error {
	in, _, err := buildInputs(cmd)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Save(args[0], in); err != nil {
		return err
	}
	fmt.Printf("  Saved scenario %q (total with taxes %s)\n",
		strings.TrimSpace(args[0]), cli.FormatMoney(model.Compute(in).TotalWithTaxes))
	return nil
}

func runScenarioList(_ *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	list, err := s.List()
	if err != nil {
		return fmt.Errorf("listing scenarios: %w", err)
	}

	if flagJSON {
		return printJSON(list)
	}

	if len(list) == 0 {
		fmt.Println("\n  No saved scenarios.")
		fmt.Println("  Save one with `vaporcalc scenario save NAME`.")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, sc := range list {
		rows = append(rows, []string{
			sc.Name,
			cli.FormatNumber(int64(sc.Items)),
			cli.FormatMoney(sc.TotalWithTaxes),
			cli.FormatMoney(sc.MaxIncome),
			humanize.Time(sc.UpdatedAt),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Scenarios (%d)", len(list)),
		Headers: []string{"Name", "Items", "Costs+Tax", "Max Income", "Updated"},
		Rows:    rows,
	}))
	return nil
}

func runScenarioShow(cmd *cobra.Command, args []string) error {
	margin, err := effectiveMargin(cmd)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	sc, err := s.Load(args[0])
	if err != nil {
		return err
	}

	out := model.ComputeWithMargin(sc.Inputs, margin)
	if flagJSON {
		return printJSON(calcReport{Inputs: sc.Inputs, Outputs: out, Chart: model.ChartData(sc.Inputs, out)})
	}
	printReport(sc.Inputs, out, sc.Name)
	return nil
}

func runScenarioDelete(_ *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("  Deleted scenario %q\n", args[0])
	return nil
}

func runScenarioExport(_ *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	sc, err := s.Load(args[0])
	if err != nil {
		return err
	}

	f := scenario.File{Name: sc.Name, Inputs: sc.Inputs}
	if flagExportOut == "" || flagExportOut == "-" {
		return scenario.Encode(os.Stdout, f)
	}
	if err := scenario.WriteFile(flagExportOut, f); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "  Wrote %s\n", flagExportOut)
	return nil
}

func runScenarioImport(_ *cobra.Command, args []string) error {
	path := args[0]

	var f scenario.File
	var err error
	if path == "-" {
		f, err = scenario.Decode(os.Stdin)
	} else {
		f, err = scenario.ReadFile(path)
	}
	if err != nil {
		return err
	}

	name := importName(flagImportName, f.Name, path)
	if name == "" {
		return fmt.Errorf("no scenario name in %s; pass --name", path)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Save(name, f.Inputs); err != nil {
		return err
	}
	fmt.Printf("  Imported %q from %s\n", name, path)
	return nil
}

// importName picks the stored name: the flag, then the document's own
// name, then the file name without extension.
func importName(flagName, docName, path string) string {
	for _, n := range []string{flagName, docName} {
		if n = strings.TrimSpace(n); n != "" {
			return n
		}
	}
	if path == "-" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
