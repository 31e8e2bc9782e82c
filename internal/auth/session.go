package auth

import (
	"net/http"
	"strings"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "casa-quetzal-token"

// SessionCookie binds session tokens to the HTTP cookie.
type SessionCookie struct {
	Secure bool // set only in production
}

// Attach writes token as the session cookie.
func (s SessionCookie) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.cookie(token, int(SessionTTL.Seconds())))
}

// Extract returns the session token, if the request carries one.
func (s SessionCookie) Extract(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(c.Value)
	return token, token != ""
}

// Clear expires the session cookie on the client.
func (s SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1))
}

func (s SessionCookie) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
