package model

import "testing"

func TestAddRemoveItem_RestoresTotals(t *testing.T) {
	in := DefaultInputs()
	before := Compute(in)

	for _, list := range []ItemList{HardwareList, OperationalList} {
		idx := in.AddItem(list)
		in.SetItemName(list, idx, "Temp")
		in.SetItemPrice(list, idx, 4242)

		mid := Compute(in)
		if mid.TotalCosts != before.TotalCosts+4242 {
			t.Fatalf("%s: TotalCosts after add = %v, want %v", list, mid.TotalCosts, before.TotalCosts+4242)
		}

		in.RemoveItem(list, idx)
		after := Compute(in)
		if after != before {
			t.Fatalf("%s: outputs after add+remove = %+v, want %+v", list, after, before)
		}
	}
}

func TestAddItem_AppendsEmptyRow(t *testing.T) {
	var in Inputs
	idx := in.AddItem(OperationalList)
	if idx != 0 {
		t.Fatalf("AddItem index = %d, want 0", idx)
	}
	if got := in.OperationalItems[0]; got != (LineItem{}) {
		t.Fatalf("new row = %+v, want zero LineItem", got)
	}
	if len(in.HardwareItems) != 0 {
		t.Fatalf("hardware list touched: %+v", in.HardwareItems)
	}
}

func TestRemoveItem_KeepsOrder(t *testing.T) {
	in := Inputs{HardwareItems: []LineItem{{"a", 1}, {"b", 2}, {"c", 3}}}
	in.RemoveItem(HardwareList, 1)
	if len(in.HardwareItems) != 2 || in.HardwareItems[0].Name != "a" || in.HardwareItems[1].Name != "c" {
		t.Fatalf("items = %+v, want [a c]", in.HardwareItems)
	}
}

func TestItemOps_OutOfRangeIgnored(t *testing.T) {
	in := DefaultInputs()
	in.RemoveItem(HardwareList, 5)
	in.RemoveItem(HardwareList, -1)
	in.SetItemName(OperationalList, 9, "nope")
	in.SetItemPrice(OperationalList, -2, 1)

	if Compute(in) != Compute(DefaultInputs()) {
		t.Fatal("out-of-range edits changed the model")
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1500", 1500},
		{"  12.5 ", 12.5},
		{"$1,234.50", 1234.5},
		{"-20", -20},
		{"", 0},
		{"abc", 0},
		{"12abc", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1e3", 1000},
	}
	for _, c := range cases {
		if got := ParsePrice(c.in); got != c.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseItem(t *testing.T) {
	if got := ParseItem("Server=1000"); got != (LineItem{"Server", 1000}) {
		t.Errorf("ParseItem = %+v", got)
	}
	if got := ParseItem(" Office Rent = $1,500 "); got != (LineItem{"Office Rent", 1500}) {
		t.Errorf("ParseItem = %+v", got)
	}
	if got := ParseItem("Laptop"); got != (LineItem{"Laptop", 0}) {
		t.Errorf("ParseItem = %+v", got)
	}
}

func TestParseItemList(t *testing.T) {
	for _, s := range []string{"hardware", "HW"} {
		if l, ok := ParseItemList(s); !ok || l != HardwareList {
			t.Errorf("ParseItemList(%q) = %v, %v", s, l, ok)
		}
	}
	if l, ok := ParseItemList("ops"); !ok || l != OperationalList {
		t.Errorf("ParseItemList(ops) = %v, %v", l, ok)
	}
	if _, ok := ParseItemList("other"); ok {
		t.Error("ParseItemList(other) ok = true, want false")
	}
}
