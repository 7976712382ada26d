// Package cart implements the client-held cart: an ordered list of selected
// items with one entry per unit, duplicates allowed. Tax and shipping do not
// live here; they belong to the order workflow.
package cart

import (
	"errors"

	"github.com/amanisrajpoot/youandonly-sub000/internal/http/cartcookie"
)

var ErrIndexOutOfRange = errors.New("cart index out of range")

type Item struct {
	ProductID string
	VariantID string
}

type Cart struct {
	items []Item
}

func FromCookie(c cartcookie.Cart) *Cart {
	items := make([]Item, 0, len(c.Entries))
	for _, e := range c.Entries {
		if e.ProductID == "" {
			continue
		}
		items = append(items, Item{ProductID: e.ProductID, VariantID: e.VariantID})
	}
	return &Cart{items: items}
}

func (c *Cart) ToCookie() cartcookie.Cart {
	entries := make([]cartcookie.Entry, len(c.items))
	for i, it := range c.items {
		entries[i] = cartcookie.Entry{ProductID: it.ProductID, VariantID: it.VariantID}
	}
	return cartcookie.Cart{Entries: entries}
}

// Add appends qty entries for the item; qty < 1 counts as 1.
func (c *Cart) Add(item Item, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := 0; i < qty; i++ {
		c.items = append(c.items, item)
	}
}

// Remove deletes the entry at the given position, preserving order.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

// Items returns the ordered sequence, one entry per unit.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) Clear() { c.items = nil }

// Subtotal folds the given unit prices (cents, keyed by product id) over the
// list. Unknown products contribute nothing; the order workflow is the place
// that rejects them.
func (c *Cart) Subtotal(priceCents map[string]int64) int64 {
	var sum int64
	for _, it := range c.items {
		sum += priceCents[it.ProductID]
	}
	return sum
}

// Lines collapses the ordered per-unit entries into (item, quantity) lines in
// first-seen order, the shape order creation expects.
type Line struct {
	Item     Item
	Quantity int
}

func (c *Cart) Lines() []Line {
	index := make(map[Item]int, len(c.items))
	out := make([]Line, 0, len(c.items))
	for _, it := range c.items {
		if i, ok := index[it]; ok {
			out[i].Quantity++
			continue
		}
		index[it] = len(out)
		out = append(out, Line{Item: it, Quantity: 1})
	}
	return out
}
