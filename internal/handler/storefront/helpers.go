package storefront

import "github.com/okrause/sportshop/internal/domain"

// cartLineView is one cart line with its extended price.
type cartLineView struct {
	ProductID     int64  `json:"productId"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"priceCents"`
	Quantity      int    `json:"quantity"`
	SubtotalCents int64  `json:"subtotalCents"`
}

// cartView is the serialized cart summary shared by the cart and
// checkout pages.
type cartView struct {
	Lines      []cartLineView `json:"lines"`
	TotalCents int64          `json:"totalCents"`
	ReturnURL  string         `json:"returnUrl,omitempty"`
}

func newCartView(cart *domain.Cart, returnURL string) cartView {
	lines := cart.Lines()
	view := cartView{
		Lines:      make([]cartLineView, 0, len(lines)),
		TotalCents: cart.ComputeTotalValue(),
		ReturnURL:  returnURL,
	}
	for _, line := range lines {
		view.Lines = append(view.Lines, cartLineView{
			ProductID:     line.Product.ID,
			Name:          line.Product.Name,
			PriceCents:    line.Product.PriceCents,
			Quantity:      line.Quantity,
			SubtotalCents: line.Product.PriceCents * int64(line.Quantity),
		})
	}
	return view
}
