package ui

import (
	"errors"
	"net/http"
	"strings"

	"quetzal-gate/internal/domain"
	"quetzal-gate/internal/middleware"
)

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, loginPage(r, strings.TrimSpace(r.URL.Query().Get("error"))))
}

// LoginSubmit verifies the form credentials and starts a session.
func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, middleware.LoginPath, "formulário inválido")
		return
	}

	account, err := h.Accounts.Authenticate(r.Context(), r.Form.Get("email"), r.Form.Get("password"))
	if err != nil {
		var (
			unauth  *domain.UnauthenticatedError
			invalid *domain.ValidationError
		)
		switch {
		case errors.As(err, &unauth):
			redirectWithError(w, r, middleware.LoginPath, "Email ou senha inválidos")
			return
		case errors.As(err, &invalid):
			redirectWithError(w, r, middleware.LoginPath, "Informe email e senha")
			return
		}
		h.fail(w, r, middleware.LoginPath, err)
		return
	}

	id := domain.IdentityFromAccount(account)
	token, err := h.Codec.Issue(id)
	if err != nil {
		h.fail(w, r, middleware.LoginPath, err)
		return
	}
	h.Session.Attach(w, token)
	h.rotateCSRF(w)

	target := middleware.DefaultPath
	if id.IsAdmin() {
		target = middleware.AdminPath
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Session.Clear(w)
	h.rotateCSRF(w)
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}
