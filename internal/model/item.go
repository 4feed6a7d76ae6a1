package model

import (
	"math"
	"strconv"
	"strings"
)

// LineItem is a named cost entry the user can add, edit and remove.
type LineItem struct {
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
}

// ItemList identifies one of the two editable line-item lists.
type ItemList int

const (
	HardwareList ItemList = iota
	OperationalList
)

func (l ItemList) String() string {
	switch l {
	case HardwareList:
		return "hardware"
	case OperationalList:
		return "operational"
	default:
		return "unknown"
	}
}

// ParseItemList maps "hardware"/"operational" (or "hw"/"ops") to an ItemList.
func ParseItemList(s string) (ItemList, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hardware", "hw":
		return HardwareList, true
	case "operational", "ops", "op":
		return OperationalList, true
	}
	return 0, false
}

// SumPrices totals the price of every item. Empty or nil lists sum to 0.
func SumPrices(items []LineItem) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Price
	}
	return total
}

// Items returns a pointer to the named list so callers can edit it in place.
func (in *Inputs) Items(l ItemList) *[]LineItem {
	if l == OperationalList {
		return &in.OperationalItems
	}
	return &in.HardwareItems
}

// AddItem appends an empty row to the list and returns its index.
func (in *Inputs) AddItem(l ItemList) int {
	items := in.Items(l)
	*items = append(*items, LineItem{})
	return len(*items) - 1
}

// RemoveItem deletes the row at idx. Out-of-range indexes are ignored.
func (in *Inputs) RemoveItem(l ItemList, idx int) {
	items := in.Items(l)
	if idx < 0 || idx >= len(*items) {
		return
	}
	next := make([]LineItem, 0, len(*items)-1)
	next = append(next, (*items)[:idx]...)
	next = append(next, (*items)[idx+1:]...)
	*items = next
}

// SetItemName renames the row at idx. Out-of-range indexes are ignored.
func (in *Inputs) SetItemName(l ItemList, idx int, name string) {
	items := *in.Items(l)
	if idx < 0 || idx >= len(items) {
		return
	}
	items[idx].Name = name
}

// SetItemPrice reprices the row at idx. Out-of-range indexes are ignored.
func (in *Inputs) SetItemPrice(l ItemList, idx int, price float64) {
	items := *in.Items(l)
	if idx < 0 || idx >= len(items) {
		return
	}
	items[idx].Price = price
}

// ParsePrice coerces free-form numeric text into a number. Anything that
// does not parse becomes 0, so bad input never reaches the model as a fault.
// Whitespace, a leading "$" and "," group separators are accepted.
func ParsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseItem parses "name=price" into a LineItem. A missing "=" yields a
// named item with price 0.
func ParseItem(s string) LineItem {
	name, price, _ := strings.Cut(s, "=")
	return LineItem{Name: strings.TrimSpace(name), Price: ParsePrice(price)}
}
