package routes

import (
	"net/http"

	"github.com/okrause/sportshop/internal/router"
)

// RegisterStorefrontRoutes registers all customer-facing routes.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Home redirects to the catalog
	r.Get("/{$}", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/products", http.StatusMovedPermanently)
	})

	// Product browsing
	r.Get("/products", deps.ProductHandler.List)
	r.Get("/products/{id}/image", deps.ProductHandler.Image)

	// Shopping cart
	r.Get("/cart", deps.CartHandler.View)
	r.Post("/cart/add", deps.CartHandler.Add)
	r.Post("/cart/remove", deps.CartHandler.Remove)

	// Checkout flow
	r.Get("/checkout", deps.CheckoutHandler.Show)
	r.Post("/checkout", deps.CheckoutHandler.Submit)
	r.Get("/checkout/completed", deps.CheckoutHandler.Completed)
}
