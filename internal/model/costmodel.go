// Package model defines the cost model: editable inputs and the financial
// figures derived from them.
package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultProfitMargin is the fraction of income kept as profit in the
// minimum-income scenario.
const DefaultProfitMargin = 0.20

// Inputs holds every user-editable parameter of the cost model.
type Inputs struct {
	MaxIncome        float64    `json:"max_income" yaml:"max_income"`
	DevelopmentCost  float64    `json:"development_cost" yaml:"development_cost"`
	HardwareItems    []LineItem `json:"hardware_items" yaml:"hardware"`
	MonthlyCost      float64    `json:"monthly_cost" yaml:"monthly_cost"`
	OperationalItems []LineItem `json:"operational_items" yaml:"operational"`
	TaxRate          float64    `json:"tax_rate" yaml:"tax_rate"` // percent
}

// Outputs holds the figures derived from Inputs. Always recomputed, never
// edited directly.
type Outputs struct {
	HardwareCost    float64 `json:"hardware_cost"`
	OperationalCost float64 `json:"operational_cost"`
	TotalCosts      float64 `json:"total_costs"`
	Taxes           float64 `json:"taxes"`
	TotalWithTaxes  float64 `json:"total_with_taxes"`
	ProfitMargin    float64 `json:"profit_margin"`
	MaxProfit       float64 `json:"max_profit"`
	MinIncome       float64 `json:"min_income"`
	MinProfit       float64 `json:"min_profit"`
}

// Finite reports whether every figure is a real number. Inputs near the
// float64 limit can overflow to ±Inf, and Inf − Inf yields NaN.
func (o Outputs) Finite() bool {
	for _, v := range []float64{
		o.HardwareCost, o.OperationalCost, o.TotalCosts, o.Taxes, o.TotalWithTaxes,
		o.ProfitMargin, o.MaxProfit, o.MinIncome, o.MinProfit,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ScenarioBar is one group in the income/costs/profit chart.
type ScenarioBar struct {
	Name   string  `json:"name"`
	Income float64 `json:"income"`
	Costs  float64 `json:"costs"`
	Profit float64 `json:"profit"`
}

// DefaultInputs returns the starting state of a fresh calculator.
func DefaultInputs() Inputs {
	return Inputs{
		MaxIncome:        10000,
		DevelopmentCost:  2000,
		HardwareItems:    []LineItem{{Name: "Server", Price: 1000}},
		MonthlyCost:      3000,
		OperationalItems: []LineItem{{Name: "Office Rent", Price: 1500}},
		TaxRate:          20,
	}
}

// Compute derives all outputs using DefaultProfitMargin.
func Compute(in Inputs) Outputs {
	return ComputeWithMargin(in, DefaultProfitMargin)
}

// ComputeWithMargin derives all outputs for the given profit margin.
// The margin must be below 1; config validation guarantees that for
// user-supplied values.
func ComputeWithMargin(in Inputs, margin float64) Outputs {
	var out Outputs
	out.HardwareCost = SumPrices(in.HardwareItems)
	out.OperationalCost = SumPrices(in.OperationalItems)
	out.TotalCosts = in.DevelopmentCost + out.HardwareCost + in.MonthlyCost + out.OperationalCost
	out.Taxes = out.TotalCosts * (in.TaxRate / 100)
	out.TotalWithTaxes = out.TotalCosts + out.Taxes

	out.ProfitMargin = margin
	out.MaxProfit = in.MaxIncome - out.TotalWithTaxes
	out.MinIncome = out.TotalWithTaxes / (1 - margin)
	out.MinProfit = out.MinIncome * margin
	return out
}

// ChartData returns the max and min scenario rows for the bar chart.
func ChartData(in Inputs, out Outputs) []ScenarioBar {
	return []ScenarioBar{
		{Name: "Max Scenario", Income: in.MaxIncome, Costs: out.TotalWithTaxes, Profit: out.MaxProfit},
		{Name: "Min Scenario", Income: out.MinIncome, Costs: out.TotalWithTaxes, Profit: out.MinProfit},
	}
}

// Clone returns a deep copy so item edits never alias the source.
func (in Inputs) Clone() Inputs {
	c := in
	c.HardwareItems = append([]LineItem(nil), in.HardwareItems...)
	c.OperationalItems = append([]LineItem(nil), in.OperationalItems...)
	return c
}

// Round rounds a currency amount to cents (half away from zero).
// NaN and ±Inf are returned unchanged.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
