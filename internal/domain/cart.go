package domain

import "context"

// CartLine is one (product, quantity) pairing inside a cart.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart tracks the quantities of products a visitor intends to purchase.
// It is a plain aggregate: it knows nothing about sessions, persistence,
// or HTTP, and it does no locking of its own. The session store serializes
// access per session key; carts from different sessions are never shared.
//
// Invariant: at most one line per distinct product identity (by ID), with
// first-add insertion order preserved.
type Cart struct {
	lines []CartLine
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddItem increments the line for p by quantity, appending a new line at
// the end when p has no line yet. Quantity is passed through unchanged;
// callers enforce positive values at the boundary.
func (c *Cart) AddItem(p Product, quantity int) {
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, CartLine{Product: p, Quantity: quantity})
}

// RemoveLine removes every line whose product matches p by identity.
// Removing an absent product is a no-op.
func (c *Cart) RemoveLine(p Product) {
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.Product.ID != p.ID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// ComputeTotalValue returns the cart total in cents: the sum over all
// lines of quantity * unit price. Zero for an empty cart.
func (c *Cart) ComputeTotalValue() int64 {
	var total int64
	for _, line := range c.lines {
		total += int64(line.Quantity) * line.Product.PriceCents
	}
	return total
}

// Clear removes all lines, returning the cart to its empty state.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns an order-preserving copy of the current lines.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// OrderProcessor accepts a finalized cart plus shipping details and
// finalizes the order. Implementations signal failure through the returned
// error; the checkout workflow leaves the cart untouched on failure.
type OrderProcessor interface {
	ProcessOrder(ctx context.Context, cart *Cart, details *ShippingDetails) error
}
