package routes

import (
	"github.com/okrause/sportshop/internal/router"
)

// RegisterAdminRoutes registers all admin catalog management routes.
// These routes are served at /admin/* and share the same domain/port as
// the storefront. Authentication sits in front of them at the deployment
// edge; the application itself does not gate them.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	// Product management
	r.Get("/admin/products", deps.ProductHandler.List)
	r.Get("/admin/products/{id}", deps.ProductHandler.Edit)
	r.Post("/admin/products", deps.ProductHandler.Save)
	r.Post("/admin/products/{id}/delete", deps.ProductHandler.Delete)
}
