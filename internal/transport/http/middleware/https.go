package middleware

import (
	"net/http"
	"strings"
)

// RequireHTTPS redirects plain-HTTP requests to the https scheme. Requests
// arriving through a TLS-terminating proxy are recognised via
// X-Forwarded-Proto. Disabled (pass-through) in development.
func RequireHTTPS(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS == nil && !strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
				target := "https://" + r.Host + r.URL.RequestURI()
				http.Redirect(w, r, target, http.StatusPermanentRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
