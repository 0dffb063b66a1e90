package gate

import (
	"net/http"

	domainauth "github.com/framevault/studio-gate/internal/domain/auth"
)

// Default session cookie names. The tokens themselves are opaque to this
// service; only the identity provider interprets them.
const (
	AccessCookieName  = "st_access_token"
	RefreshCookieName = "st_refresh_token"
)

// CookieCodec reads session credentials from request cookies and writes
// refreshed credentials back. It mirrors the same attributes (Path, Domain,
// Secure, SameSite) on set and clear so browsers reliably replace cookies.
type CookieCodec struct {
	Domain string
	Secure bool
}

// Read extracts the session from the request's cookie jar.
// Missing cookies yield an absent session, not an error.
func (c CookieCodec) Read(r *http.Request) domainauth.Session {
	var sess domainauth.Session
	if ck, err := r.Cookie(AccessCookieName); err == nil {
		sess.AccessToken = ck.Value
	}
	if ck, err := r.Cookie(RefreshCookieName); err == nil {
		sess.RefreshToken = ck.Value
	}
	return sess
}

// Write applies a refreshed session to the outgoing response as a pair of
// cookie mutations. Callers apply these exactly once per terminal state.
func (c CookieCodec) Write(w http.ResponseWriter, sess domainauth.Session) {
	http.SetCookie(w, c.cookie(AccessCookieName, sess.AccessToken))
	http.SetCookie(w, c.cookie(RefreshCookieName, sess.RefreshToken))
}

func (c CookieCodec) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
