package ui

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"net/http"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"quetzal-gate/internal/middleware"
)

// Forms carry a copy of the casa-quetzal-csrf cookie, either as the
// csrf_token field or the X-CSRF-Token header. The cookie lives for the
// browser session and is replaced whenever the signed-in account changes.
const (
	csrfCookieName = "casa-quetzal-csrf"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
)

type csrfContextKey struct{}

// EnsureCSRFToken issues the cookie when the browser has none and exposes
// the current token to the page renderers.
func (h *Handler) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := readCSRFCookie(r)
		if token == "" {
			token = h.issueCSRFToken(w)
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), csrfContextKey{}, token)))
	})
}

// RequireCSRF rejects state-changing requests whose submitted token does
// not match the cookie.
func (h *Handler) RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		expected := readCSRFCookie(r)
		if expected == "" {
			h.rejectCSRF(w, r, "missing cookie", "Cookie CSRF ausente.")
			return
		}
		if subtle.ConstantTimeCompare([]byte(expected), []byte(submittedCSRFToken(r))) != 1 {
			h.rejectCSRF(w, r, "token mismatch", "Token CSRF inválido ou ausente.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rotateCSRF replaces the browser's token. Sign-in and sign-out call it so
// a token obtained under one session is useless under the next.
func (h *Handler) rotateCSRF(w http.ResponseWriter) {
	h.issueCSRFToken(w)
}

func (h *Handler) issueCSRFToken(w http.ResponseWriter) string {
	token := rand.Text()
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Production,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

func (h *Handler) rejectCSRF(w http.ResponseWriter, r *http.Request, reason, message string) {
	h.log().WarnContext(r.Context(), "csrf check failed",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFromContext(r.Context()),
	)
	renderHTML(w, http.StatusForbidden, errorPage("Falha de validação", message))
}

func submittedCSRFToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(csrfHeader)); token != "" {
		return token
	}
	_ = r.ParseForm()
	return strings.TrimSpace(r.Form.Get(csrfFormField))
}

// csrfField renders the hidden input every page form includes.
func csrfField(r *http.Request) gomponents.Node {
	token, _ := r.Context().Value(csrfContextKey{}).(string)
	if token == "" {
		token = readCSRFCookie(r)
	}
	return html.Input(html.Type("hidden"), html.Name(csrfFormField), html.Value(token))
}

func readCSRFCookie(r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}
