// Package config loads and saves vaporcalc's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/vaporcalc/internal/model"

	"github.com/BurntSushi/toml"
)

// Config holds all vaporcalc configuration.
type Config struct {
	Model      ModelConfig      `toml:"model"`
	Defaults   DefaultsConfig   `toml:"defaults"`
	Appearance AppearanceConfig `toml:"appearance"`
	Store      StoreConfig      `toml:"store"`
	Server     ServerConfig     `toml:"server"`
}

// ModelConfig holds cost model tuning.
type ModelConfig struct {
	ProfitMargin float64 `toml:"profit_margin"`
	Currency     string  `toml:"currency"`
}

// DefaultsConfig holds the starting inputs for a new calculation.
type DefaultsConfig struct {
	MaxIncome       float64    `toml:"max_income"`
	DevelopmentCost float64    `toml:"development_cost"`
	MonthlyCost     float64    `toml:"monthly_cost"`
	TaxRate         float64    `toml:"tax_rate"`
	Hardware        []ItemSpec `toml:"hardware"`
	Operational     []ItemSpec `toml:"operational"`
}

// ItemSpec is a line item as written in the config file.
type ItemSpec struct {
	Name  string  `toml:"name"`
	Price float64 `toml:"price"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// StoreConfig holds the scenario database location.
type StoreConfig struct {
	Path string `toml:"path,omitempty"`
}

// ServerConfig holds local HTTP API settings.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	EventsBuffer int    `toml:"events_buffer"`
}

// ErrInvalidMargin is returned by Validate when the profit margin would make
// the minimum-income divisor zero or negative.
var ErrInvalidMargin = errors.New("profit_margin must be in [0, 1)")

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	def := model.DefaultInputs()
	return Config{
		Model: ModelConfig{
			ProfitMargin: model.DefaultProfitMargin,
			Currency:     "$",
		},
		Defaults: DefaultsConfig{
			MaxIncome:       def.MaxIncome,
			DevelopmentCost: def.DevelopmentCost,
			MonthlyCost:     def.MonthlyCost,
			TaxRate:         def.TaxRate,
			Hardware:        toSpecs(def.HardwareItems),
			Operational:     toSpecs(def.OperationalItems),
		},
		Appearance: AppearanceConfig{
			Theme: "vaporwave",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8787",
			EventsBuffer: 200,
		},
	}
}

// Inputs returns the configured starting inputs as a fresh model value.
func (c Config) Inputs() model.Inputs {
	return model.Inputs{
		MaxIncome:        c.Defaults.MaxIncome,
		DevelopmentCost:  c.Defaults.DevelopmentCost,
		HardwareItems:    fromSpecs(c.Defaults.Hardware),
		MonthlyCost:      c.Defaults.MonthlyCost,
		OperationalItems: fromSpecs(c.Defaults.Operational),
		TaxRate:          c.Defaults.TaxRate,
	}
}

// SetInputs stores in as the starting inputs.
func (c *Config) SetInputs(in model.Inputs) {
	c.Defaults = DefaultsConfig{
		MaxIncome:       in.MaxIncome,
		DevelopmentCost: in.DevelopmentCost,
		MonthlyCost:     in.MonthlyCost,
		TaxRate:         in.TaxRate,
		Hardware:        toSpecs(in.HardwareItems),
		Operational:     toSpecs(in.OperationalItems),
	}
}

// Validate checks values that would otherwise break the cost model.
func (c Config) Validate() error {
	if c.Model.ProfitMargin < 0 || c.Model.ProfitMargin >= 1 {
		return fmt.Errorf("%w (got %v)", ErrInvalidMargin, c.Model.ProfitMargin)
	}
	if c.Server.EventsBuffer < 0 {
		return fmt.Errorf("events_buffer must not be negative (got %d)", c.Server.EventsBuffer)
	}
	return nil
}

func toSpecs(items []model.LineItem) []ItemSpec {
	specs := make([]ItemSpec, len(items))
	for i, it := range items {
		specs[i] = ItemSpec(it)
	}
	return specs
}

func fromSpecs(specs []ItemSpec) []model.LineItem {
	items := make([]model.LineItem, len(specs))
	for i, s := range specs {
		items[i] = model.LineItem(s)
	}
	return items
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vaporcalc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "vaporcalc")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory for the scenario store.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "vaporcalc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "vaporcalc")
}

// StorePath returns the configured scenario database path or the default.
func (c Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(DataDir(), "scenarios.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config file at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating parent directories.
func SaveTo(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
