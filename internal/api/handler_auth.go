package api

import (
	"net/http"

	"quetzal-gate/internal/domain"
)

// Login checks credentials and sets the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	account, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	id := domain.IdentityFromAccount(account)
	token, err := h.codec.Issue(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.session.Attach(w, token)
	respond(w, http.StatusOK, envelope{"user": summaryFromIdentity(id)})
}

// Logout clears the session cookie. The token itself stays valid until it
// expires.
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.session.Clear(w)
	respond(w, http.StatusOK, envelope{"message": "logged out"})
}

// Session returns the caller's identity.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	id, err := h.guard.RequireAuthenticated(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, envelope{"user": summaryFromIdentity(id)})
}
