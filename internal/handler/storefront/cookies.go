package storefront

import (
	"net/http"

	"github.com/okrause/sportshop/internal/cookie"
)

// sessionCookieMaxAge keeps the cart cookie alive as long as the
// server-side session TTL.
const sessionCookieMaxAge = 30 * 24 * 60 * 60

// GetSessionIDFromCookie retrieves the cart session ID from the request.
// Returns empty string if the cookie is not present.
func GetSessionIDFromCookie(r *http.Request, name string) string {
	return cookie.Get(r, name)
}

// SetSessionCookie sets the cart session cookie with the shared security
// settings.
func SetSessionCookie(w http.ResponseWriter, cookieConfig *cookie.Config, name, sessionID string) {
	cookieConfig.SetSession(w, name, sessionID, sessionCookieMaxAge)
}
