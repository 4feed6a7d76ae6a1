package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/vaporcalc/internal/config"
	"github.com/theirongolddev/vaporcalc/internal/model"
	"github.com/theirongolddev/vaporcalc/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the setup form.
type SetupValues struct {
	Theme    string
	Margin   string // percent, e.g. "20"
	Currency string
	Defaults bool // reset starting inputs to the built-in defaults
}

// SetupValuesFrom pre-fills the form from an existing config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	th := cfg.Appearance.Theme
	if !theme.Valid(th) {
		th = theme.Vaporwave.Name
	}
	cur := cfg.Model.Currency
	if cur == "" {
		cur = "$"
	}
	return SetupValues{
		Theme:    th,
		Margin:   fmt.Sprintf("%g", model.Round(cfg.Model.ProfitMargin*100)),
		Currency: cur,
	}
}

// NewSetupForm builds the first-run form. Answers are written into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to vaporcalc").
				Description("A few settings before the calculator opens.\nRun `vaporcalc setup` anytime to change them."),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewInput().
				Title("Profit margin (%)").
				Description("Used to derive the minimum income scenario.").
				Placeholder("20").
				Value(&vals.Margin).
				Validate(func(s string) error {
					if _, ok := parseMarginPercent(s); !ok {
						return errors.New("enter a percentage from 0 up to but not including 100")
					}
					return nil
				}),
			huh.NewInput().
				Title("Currency symbol").
				Placeholder("$").
				CharLimit(4).
				Value(&vals.Currency),
			huh.NewConfirm().
				Title("Reset starting inputs to the built-in example?").
				Affirmative("Yes").
				Negative("No").
				Value(&vals.Defaults),
		),
	).WithTheme(huh.ThemeCharm())
}

// ApplySetup copies form answers into cfg and activates the chosen theme.
func ApplySetup(cfg *config.Config, vals SetupValues) error {
	m, ok := parseMarginPercent(vals.Margin)
	if !ok {
		return fmt.Errorf("%w (got %q)", config.ErrInvalidMargin, vals.Margin)
	}
	cfg.Model.ProfitMargin = m

	cur := strings.TrimSpace(vals.Currency)
	if cur == "" {
		cur = "$"
	}
	cfg.Model.Currency = cur

	if theme.Valid(vals.Theme) {
		cfg.Appearance.Theme = vals.Theme
		theme.SetActive(vals.Theme)
	}

	if vals.Defaults {
		cfg.SetInputs(model.DefaultInputs())
	}
	return nil
}
