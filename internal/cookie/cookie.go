// Package cookie provides the session cookie helpers used by the
// storefront handlers.
package cookie

import "net/http"

// Config holds cookie security settings shared by all handlers.
type Config struct {
	// Secure requires HTTPS for the cookie. True in production.
	Secure bool
}

// NewConfig creates a new cookie configuration.
func NewConfig(secure bool) *Config {
	return &Config{Secure: secure}
}

// Get returns the named cookie's value, or "" when it is absent.
func Get(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetSession sets a session cookie scoped to the whole site.
func (c *Config) SetSession(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
