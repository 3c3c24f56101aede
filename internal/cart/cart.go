// Package cart holds the cart domain: line items, the ordered cart and its invariants.
package cart

import (
	"github.com/shopspring/decimal"
)

// LineItem is one product entry in the cart.
type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price * quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(li.Price).Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is an ordered list of line items with at most one line per product name.
// The zero value is an empty cart ready to use. Cart is not safe for concurrent use.
type Cart struct {
	items []LineItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add appends a product with quantity 1, or increments the quantity of the
// line already holding that name. The caller validates name and price.
func (c *Cart) Add(p Product) {
	if i := c.indexOf(p.Name); i >= 0 {
		c.items[i].Quantity++
		return
	}
	c.items = append(c.items, LineItem{Name: p.Name, Price: p.Price, Quantity: 1})
}

// Increment adds one to the quantity at index. Reports false if index is out of range.
func (c *Cart) Increment(index int) bool {
	if !c.inRange(index) {
		return false
	}
	c.items[index].Quantity++
	return true
}

// Decrement removes one from the quantity at index while it stays at least 1.
// Reports whether the quantity changed.
func (c *Cart) Decrement(index int) bool {
	if !c.inRange(index) || c.items[index].Quantity <= 1 {
		return false
	}
	c.items[index].Quantity--
	return true
}

// Remove deletes the line at index, shifting later lines down.
func (c *Cart) Remove(index int) bool {
	if !c.inRange(index) {
		return false
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Total returns the sum of price * quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Snapshot returns a read-only view of the cart for rendering.
func (c *Cart) Snapshot() Snapshot {
	lines := make([]Line, 0, len(c.items))
	count := 0
	for i, item := range c.items {
		lines = append(lines, Line{
			Index:    i,
			Name:     item.Name,
			Price:    decimal.NewFromFloat(item.Price),
			Quantity: item.Quantity,
			Subtotal: item.Subtotal(),
		})
		count += item.Quantity
	}
	return Snapshot{Lines: lines, Total: c.Total(), Count: count}
}

func (c *Cart) indexOf(name string) int {
	for i := range c.items {
		if c.items[i].Name == name {
			return i
		}
	}
	return -1
}

func (c *Cart) inRange(index int) bool {
	return index >= 0 && index < len(c.items)
}

// Line is one rendered row of a Snapshot.
type Line struct {
	Index    int
	Name     string
	Price    decimal.Decimal
	Quantity int
	Subtotal decimal.Decimal
}

// Snapshot is an immutable copy of the cart contents and its total.
type Snapshot struct {
	Lines []Line
	Total decimal.Decimal
	// Count is the number of units across all lines.
	Count int
}

// IsEmpty reports whether the snapshot has no lines.
func (s Snapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}
