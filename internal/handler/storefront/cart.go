package storefront

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/okrause/sportshop/internal/cookie"
	"github.com/okrause/sportshop/internal/domain"
	"github.com/okrause/sportshop/internal/handler"
	"github.com/okrause/sportshop/internal/service"
	"github.com/okrause/sportshop/internal/session"
)

// CartHandler handles all cart-related storefront routes
type CartHandler struct {
	catalog    *service.CatalogService
	sessions   *session.Store
	cookies    *cookie.Config
	cookieName string
}

// NewCartHandler creates a new cart handler
func NewCartHandler(catalog *service.CatalogService, sessions *session.Store, cookies *cookie.Config, cookieName string) *CartHandler {
	return &CartHandler{
		catalog:    catalog,
		sessions:   sessions,
		cookies:    cookies,
		cookieName: cookieName,
	}
}

// View handles GET /cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	returnURL := sanitizeReturnURL(r.URL.Query().Get("returnUrl"))

	sessionID := GetSessionIDFromCookie(r, h.cookieName)

	var view cartView
	newSessionID, err := h.sessions.With(sessionID, func(cart *domain.Cart) error {
		view = newCartView(cart, returnURL)
		return nil
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if newSessionID != sessionID {
		SetSessionCookie(w, h.cookies, h.cookieName, newSessionID)
	}

	handler.RespondJSON(w, http.StatusOK, view)
}

// Add handles POST /cart/add
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("cart.add", "invalid form data"))
		return
	}

	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("cart.add", "invalid product id"))
		return
	}

	quantity := 1
	if qs := r.FormValue("quantity"); qs != "" {
		quantity, err = strconv.Atoi(qs)
		if err != nil || quantity < 1 {
			handler.ErrorResponse(w, r, domain.Invalid("cart.add", "invalid quantity"))
			return
		}
	}

	returnURL := sanitizeReturnURL(r.FormValue("return_url"))

	sessionID := GetSessionIDFromCookie(r, h.cookieName)
	newSessionID, err := h.sessions.With(sessionID, func(cart *domain.Cart) error {
		_, addErr := h.catalog.AddToCart(ctx, cart, productID, quantity)
		return addErr
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if newSessionID != sessionID {
		SetSessionCookie(w, h.cookies, h.cookieName, newSessionID)
	}

	http.Redirect(w, r, cartURL(returnURL), http.StatusSeeOther)
}

// Remove handles POST /cart/remove
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("cart.remove", "invalid form data"))
		return
	}

	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("cart.remove", "invalid product id"))
		return
	}

	returnURL := sanitizeReturnURL(r.FormValue("return_url"))

	sessionID := GetSessionIDFromCookie(r, h.cookieName)
	newSessionID, err := h.sessions.With(sessionID, func(cart *domain.Cart) error {
		return h.catalog.RemoveFromCart(ctx, cart, productID)
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if newSessionID != sessionID {
		SetSessionCookie(w, h.cookies, h.cookieName, newSessionID)
	}

	http.Redirect(w, r, cartURL(returnURL), http.StatusSeeOther)
}

// cartURL builds the cart page URL carrying the page to return to.
func cartURL(returnURL string) string {
	return "/cart?returnUrl=" + url.QueryEscape(returnURL)
}

// sanitizeReturnURL restricts the return target to a local path, so the
// redirect cannot be pointed at another site. Empty or off-site values
// fall back to the catalog. "//host" and "/\host" are both rejected;
// browsers treat either as protocol-relative.
func sanitizeReturnURL(raw string) string {
	if raw == "" || raw[0] != '/' {
		return "/products"
	}
	if len(raw) > 1 && (raw[1] == '/' || raw[1] == '\\') {
		return "/products"
	}
	return raw
}
