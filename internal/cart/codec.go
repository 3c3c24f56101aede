package cart

import (
	"bytes"
	"encoding/json"
	"fmt"

	carterrors "github.com/abgdnv/cartkeeper/internal/errors"
)

// storedItem mirrors one element of the persisted array. Pointers tell a
// missing field apart from a zero value.
type storedItem struct {
	Name     *string      `json:"name"`
	Price    *float64     `json:"price"`
	Quantity *json.Number `json:"quantity"`
	// Qty is the field name used by carts written before quantity was spelled out.
	Qty *json.Number `json:"qty"`
}

// Encode serializes the cart as [{"name":..,"price":..,"quantity":..}, ...].
// An empty cart encodes as [].
func Encode(c *Cart) ([]byte, error) {
	items := c.items
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(items)
}

// Decode parses a persisted cart. Returns an error wrapping ErrMalformedCart
// unless data is a JSON array of well formed, uniquely named line items.
func Decode(data []byte) (*Cart, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: not a JSON array", carterrors.ErrMalformedCart)
	}

	var stored []storedItem
	if err := json.Unmarshal(trimmed, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", carterrors.ErrMalformedCart, err)
	}

	c := New()
	seen := make(map[string]struct{}, len(stored))
	for i, s := range stored {
		item, err := s.toLineItem()
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", carterrors.ErrMalformedCart, i, err)
		}
		if _, dup := seen[item.Name]; dup {
			return nil, fmt.Errorf("%w: item %d: duplicate name %q", carterrors.ErrMalformedCart, i, item.Name)
		}
		seen[item.Name] = struct{}{}
		c.items = append(c.items, item)
	}
	return c, nil
}

func (s storedItem) toLineItem() (LineItem, error) {
	if s.Name == nil || s.Price == nil {
		return LineItem{}, fmt.Errorf("name and price are required")
	}
	p, err := NewProduct(*s.Name, *s.Price)
	if err != nil {
		return LineItem{}, err
	}

	qty := s.Quantity
	if qty == nil {
		qty = s.Qty
	}
	if qty == nil {
		return LineItem{}, fmt.Errorf("quantity is required")
	}
	n, err := qty.Int64()
	if err != nil {
		return LineItem{}, fmt.Errorf("quantity %q is not an integer", qty.String())
	}
	if n < 1 {
		return LineItem{}, fmt.Errorf("quantity %d is below 1", n)
	}
	return LineItem{Name: p.Name, Price: p.Price, Quantity: int(n)}, nil
}
