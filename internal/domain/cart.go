package domain

import "github.com/shopspring/decimal"

// CartLine is one distinct item in a cart. Name and price are snapshots
// taken when the line is first added.
type CartLine struct {
	ItemID   string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Cart is the in-memory order draft for one browsing session. Lines are
// kept in insertion order and never share an item id; a line's quantity is
// always at least 1. All methods are total over the cart state.
type Cart struct {
	lines []CartLine
}

// Add increments the quantity for the item, inserting a new line with the
// given snapshot on first add.
func (c *Cart) Add(itemID, name string, price decimal.Decimal) {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, CartLine{ItemID: itemID, Name: name, Price: price, Quantity: 1})
}

// Remove decrements the quantity for the item, deleting the line when it
// reaches zero. Absent ids are a no-op.
func (c *Cart) Remove(itemID string) {
	for i := range c.lines {
		if c.lines[i].ItemID != itemID {
			continue
		}
		if c.lines[i].Quantity > 1 {
			c.lines[i].Quantity--
		} else {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
}

// Quantity returns the stored quantity for the item, or 0 if absent.
func (c *Cart) Quantity(itemID string) int {
	for _, l := range c.lines {
		if l.ItemID == itemID {
			return l.Quantity
		}
	}
	return 0
}

// ItemCount is the sum of all line quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total is the sum of price times quantity over all lines, at full
// precision. The empty cart totals zero.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Snapshot converts the cart into order items for persistence. Only the
// name, quantity and unit price are carried over.
func (c *Cart) Snapshot() []OrderItem {
	items := make([]OrderItem, len(c.lines))
	for i, l := range c.lines {
		items[i] = OrderItem{Name: l.Name, Qty: l.Quantity, Price: l.Price}
	}
	return items
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.lines = nil
}
