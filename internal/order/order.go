// Package order contains the OrderProcessor implementations the checkout
// workflow hands finished orders to: an SMTP confirmation mailer and a
// NATS publisher for downstream fulfilment.
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/okrause/sportshop/internal/domain"
)

// message is the wire shape of a submitted order.
type message struct {
	Lines       []messageLine          `json:"lines"`
	TotalCents  int64                  `json:"totalCents"`
	ShipTo      domain.ShippingDetails `json:"shipTo"`
	GiftWrap    bool                   `json:"giftWrap"`
	SubmittedAt time.Time              `json:"submittedAt"`
}

type messageLine struct {
	ProductID      int64  `json:"productId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	SubtotalCents  int64  `json:"subtotalCents"`
}

// newMessage snapshots the cart and shipping details at submission time.
func newMessage(cart *domain.Cart, details *domain.ShippingDetails, now time.Time) message {
	lines := cart.Lines()
	out := message{
		Lines:       make([]messageLine, len(lines)),
		TotalCents:  cart.ComputeTotalValue(),
		ShipTo:      *details,
		GiftWrap:    details.GiftWrap,
		SubmittedAt: now,
	}
	for i, line := range lines {
		out.Lines[i] = messageLine{
			ProductID:      line.Product.ID,
			Name:           line.Product.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: line.Product.PriceCents,
			SubtotalCents:  int64(line.Quantity) * line.Product.PriceCents,
		}
	}
	return out
}

// formatDollars renders cents as a dollar amount for the email body.
func formatDollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// formatBody renders the plain-text order confirmation.
func formatBody(m message) string {
	var b strings.Builder

	b.WriteString("A new order has been submitted\n")
	b.WriteString("---\nItems:\n")
	for _, line := range m.Lines {
		fmt.Fprintf(&b, "%d x %s (subtotal: %s)\n", line.Quantity, line.Name, formatDollars(line.SubtotalCents))
	}
	fmt.Fprintf(&b, "Total order value: %s\n", formatDollars(m.TotalCents))

	b.WriteString("---\nShip to:\n")
	b.WriteString(m.ShipTo.Name + "\n")
	b.WriteString(m.ShipTo.Line1 + "\n")
	if m.ShipTo.Line2 != "" {
		b.WriteString(m.ShipTo.Line2 + "\n")
	}
	if m.ShipTo.Line3 != "" {
		b.WriteString(m.ShipTo.Line3 + "\n")
	}
	b.WriteString(m.ShipTo.City + "\n")
	b.WriteString(m.ShipTo.State + "\n")
	if m.ShipTo.Zip != "" {
		b.WriteString(m.ShipTo.Zip + "\n")
	}
	b.WriteString(m.ShipTo.Country + "\n")

	b.WriteString("---\n")
	if m.GiftWrap {
		b.WriteString("Gift wrap: Yes\n")
	} else {
		b.WriteString("Gift wrap: No\n")
	}

	return b.String()
}
