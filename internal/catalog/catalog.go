// Package catalog lists the products the user can add to the cart.
package catalog

import (
	"fmt"

	"github.com/abgdnv/cartkeeper/internal/cart"
	"github.com/abgdnv/cartkeeper/internal/config"
)

// Item is one product on offer. Price is kept as text and is only
// validated when the item is added to the cart.
type Item struct {
	Name  string
	Price string
}

// Input returns the raw add-to-cart input for the item.
func (i Item) Input() cart.ProductInput {
	return cart.ProductInput{Name: i.Name, Price: i.Price}
}

// Catalog is an ordered, read-only list of products.
type Catalog struct {
	items []Item
}

// New creates a catalog from the configured products, keeping their order.
func New(products []config.ProductConfig) *Catalog {
	items := make([]Item, 0, len(products))
	for _, p := range products {
		items = append(items, Item{Name: p.Name, Price: p.Price})
	}
	return &Catalog{items: items}
}

// Items returns a copy of the products on offer.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.items)
}

// At returns the product at the 0-based index.
func (c *Catalog) At(index int) (Item, error) {
	if index < 0 || index >= len(c.items) {
		return Item{}, fmt.Errorf("product %d does not exist, the catalog has %d products", index+1, len(c.items))
	}
	return c.items[index], nil
}
