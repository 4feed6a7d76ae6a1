package cmd

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/theirongolddev/vaporcalc/internal/config"
	"github.com/theirongolddev/vaporcalc/internal/model"
	"github.com/theirongolddev/vaporcalc/internal/scenario"

	"github.com/spf13/cobra"
)

func TestParseItems(t *testing.T) {
	got := parseItems([]string{"Server=1200", " NAS = 1,500 ", "Cables", "Bad=abc"})
	want := []model.LineItem{
		{Name: "Server", Price: 1200},
		{Name: "NAS", Price: 1500},
		{Name: "Cables", Price: 0},
		{Name: "Bad", Price: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseItems() = %+v, want %+v", got, want)
	}
}

func TestCalcOverridesApply(t *testing.T) {
	in := model.DefaultInputs()
	origOps := in.OperationalItems

	income := 25000.0
	tax := 10.0
	o := calcOverrides{
		MaxIncome: &income,
		TaxRate:   &tax,
		Hardware:  []string{"GPU=900"},
	}
	o.apply(&in)

	if in.MaxIncome != 25000 {
		t.Errorf("MaxIncome = %v, want 25000", in.MaxIncome)
	}
	if in.TaxRate != 10 {
		t.Errorf("TaxRate = %v, want 10", in.TaxRate)
	}
	if len(in.HardwareItems) != 1 || in.HardwareItems[0].Price != 900 {
		t.Errorf("HardwareItems = %+v, want single GPU=900", in.HardwareItems)
	}
	if !reflect.DeepEqual(in.OperationalItems, origOps) {
		t.Errorf("OperationalItems changed without a flag: %+v", in.OperationalItems)
	}
	if in.DevelopmentCost != model.DefaultInputs().DevelopmentCost {
		t.Errorf("DevelopmentCost changed without a flag: %v", in.DevelopmentCost)
	}
}

func TestCalcOverridesEmptyListClears(t *testing.T) {
	in := model.DefaultInputs()
	calcOverrides{Operational: []string{}}.apply(&in)
	if len(in.OperationalItems) != 0 {
		t.Errorf("OperationalItems = %+v, want empty", in.OperationalItems)
	}
}

func TestImportName(t *testing.T) {
	tests := []struct {
		flag, doc, path string
		want            string
	}{
		{"custom", "doc", "/tmp/file.yaml", "custom"},
		{"  ", "doc", "/tmp/file.yaml", "doc"},
		{"", "", "/tmp/launch-plan.yaml", "launch-plan"},
		{"", "", "-", ""},
	}
	for _, tt := range tests {
		if got := importName(tt.flag, tt.doc, tt.path); got != tt.want {
			t.Errorf("importName(%q, %q, %q) = %q, want %q", tt.flag, tt.doc, tt.path, got, tt.want)
		}
	}
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"serve", "--detach", "--addr", ":9000", "--detach=true"})
	want := []string{"serve", "--addr", ":9000"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("filterDetachArg() = %v, want %v", got, want)
	}
}

func TestPIDRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vaporcalcd.pid")
	if err := writePID(path, 4242); err != nil {
		t.Fatal(err)
	}
	pid, err := readPID(path)
	if err != nil {
		t.Fatal(err)
	}
	if pid != 4242 {
		t.Errorf("readPID() = %d, want 4242", pid)
	}

	if err := ensureDaemonNotRunning(filepath.Join(t.TempDir(), "missing.pid")); err != nil {
		t.Errorf("ensureDaemonNotRunning(missing) = %v, want nil", err)
	}
}

// marginCmd mirrors how subcommands see the inherited --margin flag.
func marginCmd() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().Float64Var(&flagMargin, "margin", model.DefaultProfitMargin, "")
	return c
}

func TestEffectiveMargin(t *testing.T) {
	saved := cfg
	defer func() { cfg = saved }()

	cfg = config.DefaultConfig()
	cfg.Model.ProfitMargin = 0.3

	c := marginCmd()
	m, err := effectiveMargin(c)
	if err != nil || m != 0.3 {
		t.Errorf("effectiveMargin() without flag = %v, %v; want 0.3 from config", m, err)
	}

	if err := c.Flags().Set("margin", "0.5"); err != nil {
		t.Fatal(err)
	}
	m, err = effectiveMargin(c)
	if err != nil || m != 0.5 {
		t.Errorf("effectiveMargin() with flag = %v, %v; want 0.5", m, err)
	}

	if err := c.Flags().Set("margin", "1"); err != nil {
		t.Fatal(err)
	}
	if _, err := effectiveMargin(c); !errors.Is(err, config.ErrInvalidMargin) {
		t.Errorf("effectiveMargin(1) error = %v, want ErrInvalidMargin", err)
	}
}

func TestBuildInputsLayers(t *testing.T) {
	saved := cfg
	savedFile := flagFile
	defer func() {
		cfg = saved
		flagFile = savedFile
	}()
	cfg = config.DefaultConfig()

	path := filepath.Join(t.TempDir(), "plan.yaml")
	doc := scenario.File{Name: "plan", Inputs: model.DefaultInputs()}
	doc.Inputs.MaxIncome = 40000
	if err := scenario.WriteFile(path, doc); err != nil {
		t.Fatal(err)
	}

	// Registering the flags resets the bound vars to their defaults.
	c := &cobra.Command{Use: "test"}
	addInputFlags(c)
	if err := c.Flags().Set("dev-cost", "7000"); err != nil {
		t.Fatal(err)
	}
	flagFile = path

	in, name, err := buildInputs(c)
	if err != nil {
		t.Fatal(err)
	}
	if name != "plan" {
		t.Errorf("name = %q, want plan", name)
	}
	if in.MaxIncome != 40000 {
		t.Errorf("MaxIncome = %v, want 40000 from file", in.MaxIncome)
	}
	if in.DevelopmentCost != 7000 {
		t.Errorf("DevelopmentCost = %v, want 7000 from flag", in.DevelopmentCost)
	}
}
