package scenario

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/vaporcalc/internal/model"
)

const sampleYAML = `name: launch
max_income: 10000
development_cost: 2000
monthly_cost: 3000
tax_rate: 20
hardware:
  - name: Server
    price: 1000
operational:
  - name: Office Rent
    price: 1500
`

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if f.Name != "launch" {
		t.Errorf("Name = %q, want launch", f.Name)
	}
	if got, want := model.Compute(f.Inputs), model.Compute(model.DefaultInputs()); got != want {
		t.Errorf("outputs = %+v, want %+v", got, want)
	}
}

func TestDecode_MissingKeysAreZero(t *testing.T) {
	f, err := Decode(strings.NewReader("development_cost: 500\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if f.DevelopmentCost != 500 || f.MaxIncome != 0 || f.TaxRate != 0 || len(f.HardwareItems) != 0 {
		t.Errorf("inputs = %+v", f.Inputs)
	}
}

func TestDecode_Errors(t *testing.T) {
	for _, doc := range []string{"", "unknown_key: 1\n", "max_income: [1, 2]\n"} {
		if _, err := Decode(strings.NewReader(doc)); err == nil {
			t.Errorf("Decode(%q) returned nil error", doc)
		}
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	want := File{Name: "export", Inputs: model.DefaultInputs()}

	if err := WriteFile(path, want); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Name != want.Name || len(got.OperationalItems) != 1 || got.OperationalItems[0].Name != "Office Rent" {
		t.Errorf("got %+v", got)
	}
}

func TestEncode_UsesSnakeCaseKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, File{Inputs: model.DefaultInputs()}); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"max_income:", "development_cost:", "hardware:", "operational:", "tax_rate:"} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("encoded YAML missing %q:\n%s", key, buf.String())
		}
	}
	if strings.Contains(buf.String(), "name: \"\"") {
		t.Errorf("empty name should be omitted:\n%s", buf.String())
	}
}
