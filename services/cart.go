package services

import (
	"github.com/shopspring/decimal"

	"github.com/savoria/savoria-api/models"
)

// CartLine is one menu item in a cart with its quantity. A line never
// exists with a quantity below 1.
type CartLine struct {
	Item     models.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the items a customer has picked before checkout. It lives in
// memory for the length of an ordering session and is discarded once the
// order is submitted. Lines keep insertion order for display.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem puts the item in the cart, incrementing the quantity when a line
// for the same menu item already exists.
func (c *Cart) AddItem(item models.MenuItem) {
	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, CartLine{Item: item, Quantity: 1})
}

// RemoveItem deletes the line for the given menu item id. Removing an item
// that is not in the cart is a no-op.
func (c *Cart) RemoveItem(itemID uint) {
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the quantity of an existing line. Quantities
// below 1 are ignored and the line keeps its previous quantity; taking a
// line out of the cart goes through RemoveItem.
func (c *Cart) UpdateQuantity(itemID uint, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Lines returns a copy of the cart's lines.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Total sums unit price times quantity over all lines using exact decimal
// arithmetic, so repeated cents never drift the way binary floats do.
// Rounding to two places happens only when the value is persisted or
// rendered.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}
