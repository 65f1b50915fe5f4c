package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartAddAndRemove(t *testing.T) {
	var cart Cart

	cart.Add("a", "Margherita", decimal.NewFromInt(100))
	cart.Add("a", "Margherita", decimal.NewFromInt(100))
	cart.Add("b", "Garlic Naan", decimal.NewFromInt(50))

	if got := cart.Quantity("a"); got != 2 {
		t.Errorf("expected quantity 2 for item a, got %d", got)
	}
	if got := cart.Quantity("b"); got != 1 {
		t.Errorf("expected quantity 1 for item b, got %d", got)
	}
	if got := len(cart.Lines()); got != 2 {
		t.Errorf("expected 2 lines, got %d", got)
	}

	cart.Remove("a")
	if got := cart.Quantity("a"); got != 1 {
		t.Errorf("expected quantity 1 after remove, got %d", got)
	}

	cart.Remove("a")
	if got := cart.Quantity("a"); got != 0 {
		t.Errorf("expected line deleted at quantity zero, got %d", got)
	}
	if got := len(cart.Lines()); got != 1 {
		t.Errorf("expected 1 line after deletion, got %d", got)
	}
}

func TestCartNeverHoldsDuplicateOrEmptyLines(t *testing.T) {
	var cart Cart

	// Arbitrary interleaving of adds and removes.
	ops := []struct {
		add bool
		id  string
	}{
		{true, "a"}, {true, "b"}, {true, "a"}, {false, "b"},
		{false, "b"}, {true, "c"}, {false, "a"}, {false, "a"},
		{true, "b"}, {false, "missing"},
	}

	for _, op := range ops {
		if op.add {
			cart.Add(op.id, "Item "+op.id, decimal.NewFromInt(10))
		} else {
			cart.Remove(op.id)
		}

		seen := map[string]bool{}
		for _, line := range cart.Lines() {
			if line.Quantity < 1 {
				t.Fatalf("line %s has quantity %d", line.ItemID, line.Quantity)
			}
			if seen[line.ItemID] {
				t.Fatalf("duplicate line for item %s", line.ItemID)
			}
			seen[line.ItemID] = true
		}
	}
}

func TestCartRemoveAbsentIsNoop(t *testing.T) {
	var cart Cart
	cart.Add("a", "Samosa", decimal.NewFromInt(30))

	before := cart.Lines()
	cart.Remove("not-there")
	after := cart.Lines()

	if len(before) != len(after) || before[0] != after[0] {
		t.Errorf("cart changed after removing absent item: %+v vs %+v", before, after)
	}
}

func TestCartAddRemoveRoundTrip(t *testing.T) {
	var cart Cart
	cart.Add("keep", "Dal", decimal.NewFromInt(80))

	for i := 0; i < 3; i++ {
		cart.Add("x", "Paneer Tikka", decimal.NewFromInt(220))
	}
	for i := 0; i < 3; i++ {
		cart.Remove("x")
	}

	if got := cart.Quantity("x"); got != 0 {
		t.Errorf("expected item x gone after round trip, got quantity %d", got)
	}
	if got := len(cart.Lines()); got != 1 {
		t.Errorf("expected only the untouched line to remain, got %d lines", got)
	}
}

func TestCartTotals(t *testing.T) {
	var cart Cart

	if !cart.Total().Equal(decimal.Zero) {
		t.Errorf("empty cart total = %s, want 0", cart.Total())
	}
	if cart.ItemCount() != 0 {
		t.Errorf("empty cart item count = %d, want 0", cart.ItemCount())
	}

	cart.Add("a", "Biryani", decimal.NewFromInt(100))
	cart.Add("a", "Biryani", decimal.NewFromInt(100))
	cart.Add("b", "Raita", decimal.NewFromInt(50))

	if got := cart.Total(); !got.Equal(decimal.NewFromInt(250)) {
		t.Errorf("total = %s, want 250", got)
	}
	if got := cart.ItemCount(); got != 3 {
		t.Errorf("item count = %d, want 3", got)
	}
}

func TestCartTotalKeepsPrecision(t *testing.T) {
	var cart Cart
	price, _ := decimal.NewFromString("99.95")
	cart.Add("a", "Thali", price)
	cart.Add("a", "Thali", price)

	want, _ := decimal.NewFromString("199.90")
	if got := cart.Total(); !got.Equal(want) {
		t.Errorf("total = %s, want %s", got, want)
	}
}

func TestCartSnapshot(t *testing.T) {
	var cart Cart
	cart.Add("a", "Butter Chicken", decimal.NewFromInt(350))
	cart.Add("b", "Naan", decimal.NewFromInt(40))
	cart.Add("b", "Naan", decimal.NewFromInt(40))

	items := cart.Snapshot()
	if len(items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(items))
	}
	if items[0].Name != "Butter Chicken" || items[0].Qty != 1 || !items[0].Price.Equal(decimal.NewFromInt(350)) {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Name != "Naan" || items[1].Qty != 2 {
		t.Errorf("unexpected second item: %+v", items[1])
	}
}
