package storefront

import (
	"net/http"

	"github.com/okrause/sportshop/internal/cookie"
	"github.com/okrause/sportshop/internal/domain"
	"github.com/okrause/sportshop/internal/handler"
	"github.com/okrause/sportshop/internal/service"
	"github.com/okrause/sportshop/internal/session"
)

// CheckoutHandler handles the checkout flow
type CheckoutHandler struct {
	checkout   *service.CheckoutService
	sessions   *session.Store
	cookies    *cookie.Config
	cookieName string
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout *service.CheckoutService, sessions *session.Store, cookies *cookie.Config, cookieName string) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:   checkout,
		sessions:   sessions,
		cookies:    cookies,
		cookieName: cookieName,
	}
}

// Show handles GET /checkout, returning the cart to be checked out.
func (h *CheckoutHandler) Show(w http.ResponseWriter, r *http.Request) {
	sessionID := GetSessionIDFromCookie(r, h.cookieName)

	var view cartView
	newSessionID, err := h.sessions.With(sessionID, func(cart *domain.Cart) error {
		view = newCartView(cart, "")
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

// Submit handles POST /checkout. The shipping details come from the form;
// validation failures and an empty cart both return 400 without touching
// the order processor.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("checkout.submit", "invalid form data"))
		return
	}

	details := &domain.ShippingDetails{
		Name:     r.FormValue("name"),
		Line1:    r.FormValue("line1"),
		Line2:    r.FormValue("line2"),
		Line3:    r.FormValue("line3"),
		City:     r.FormValue("city"),
		State:    r.FormValue("state"),
		Zip:      r.FormValue("zip"),
		Country:  r.FormValue("country"),
		GiftWrap: parseCheckbox(r.FormValue("gift_wrap")),
	}

	sessionID := GetSessionIDFromCookie(r, h.cookieName)
	newSessionID, err := h.sessions.With(sessionID, func(cart *domain.Cart) error {
		return h.checkout.Checkout(ctx, cart, details)
	})

	if newSessionID != sessionID {
		SetSessionCookie(w, h.cookies, h.cookieName, newSessionID)
	}

	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	http.Redirect(w, r, "/checkout/completed", http.StatusSeeOther)
}

// Completed handles GET /checkout/completed
func (h *CheckoutHandler) Completed(w http.ResponseWriter, r *http.Request) {
	handler.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Thanks! We'll ship your goods as soon as possible.",
	})
}

// parseCheckbox interprets the value of an HTML checkbox.
func parseCheckbox(value string) bool {
	switch value {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
