package routes

import (
	"github.com/okrause/sportshop/internal/handler/admin"
	"github.com/okrause/sportshop/internal/handler/storefront"
)

// StorefrontDeps contains dependencies for storefront routes
type StorefrontDeps struct {
	// Product catalog
	ProductHandler *storefront.ProductHandler

	// Cart
	CartHandler *storefront.CartHandler

	// Checkout
	CheckoutHandler *storefront.CheckoutHandler
}

// AdminDeps contains dependencies for admin routes
type AdminDeps struct {
	// Product management
	ProductHandler *admin.ProductHandler
}
