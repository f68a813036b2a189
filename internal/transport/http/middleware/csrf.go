package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"

	"github.com/employee-api/internal/domain"
)

// Double-submit anti-forgery: the token travels to the client in a readable
// cookie and must be echoed back in a header on mutating requests.
const (
	CSRFCookieName = "XSRF-TOKEN"
	CSRFHeaderName = "X-XSRF-TOKEN"
)

// CSRFIssue attaches the anti-forgery cookie to every response. An existing
// token is re-issued unchanged; a fresh one is minted otherwise. The cookie is
// deliberately not HttpOnly so browser clients can read it into the header.
// This stage never rejects.
func CSRFIssue(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie(CSRFCookieName); err == nil && c.Value != "" {
			token = c.Value
		} else {
			token = newCSRFToken()
		}
		http.SetCookie(w, &http.Cookie{
			Name:     CSRFCookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: false,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
		next.ServeHTTP(w, r)
	})
}

// CSRFValidate rejects mutating requests whose header token does not match
// the cookie token. Comparison is constant-time.
func CSRFValidate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(CSRFHeaderName)
		cookie, err := r.Cookie(CSRFCookieName)
		if header == "" || err != nil || cookie.Value == "" ||
			subtle.ConstantTimeCompare([]byte(header), []byte(cookie.Value)) != 1 {
			writeEnvelope(w, http.StatusForbidden, domain.Failure(domain.MsgInvalidCSRF))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newCSRFToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("csrf token generation: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
