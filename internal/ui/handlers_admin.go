package ui

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"quetzal-gate/internal/domain"
	"quetzal-gate/internal/middleware"
)

// AdminPage lists accounts and records with the summary.
func (h *Handler) AdminPage(w http.ResponseWriter, r *http.Request) {
	id, err := h.Guard.RequireAdministrator(r)
	if err != nil {
		h.fail(w, r, middleware.DefaultPath, err)
		return
	}
	ctx := domain.WithIdentity(r.Context(), id)

	accounts, err := h.Accounts.List(ctx)
	if err != nil {
		h.fail(w, r, middleware.AdminPath, err)
		return
	}
	records, err := h.Records.List(ctx)
	if err != nil {
		h.fail(w, r, middleware.AdminPath, err)
		return
	}
	stats, err := h.Records.Stats(ctx)
	if err != nil {
		h.fail(w, r, middleware.AdminPath, err)
		return
	}
	renderHTML(w, http.StatusOK, adminPage(r, id, adminView{
		Accounts: accounts,
		Records:  records,
		Stats:    stats,
		Notice:   strings.TrimSpace(r.URL.Query().Get("error")),
	}))
}

func (h *Handler) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.Guard.RequireAdministrator(r)
	if err != nil {
		h.fail(w, r, middleware.AdminPath, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, middleware.AdminPath, "formulário inválido")
		return
	}
	_, err = h.Accounts.Create(domain.WithIdentity(r.Context(), id), domain.CreateAccountRequest{
		Email:    r.Form.Get("email"),
		Password: r.Form.Get("password"),
		Name:     r.Form.Get("nome"),
		Role:     domain.Role(r.Form.Get("role")),
	})
	if err != nil {
		h.fail(w, r, middleware.AdminPath, err)
		return
	}
	http.Redirect(w, r, middleware.AdminPath, http.StatusSeeOther)
}

func (h *Handler) AdminDeactivateUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.Guard.RequireAdministrator(r)
	if err != nil {
		h.fail(w, r, middleware.AdminPath, err)
		return
	}
	target, err := formID(r)
	if err != nil {
		h.fail(w, r, middleware.AdminPath, err)
		return
	}
	if err := h.Accounts.Deactivate(domain.WithIdentity(r.Context(), id), target); err != nil {
		h.fail(w, r, middleware.AdminPath, err)
		return
	}
	http.Redirect(w, r, middleware.AdminPath, http.StatusSeeOther)
}

func (h *Handler) AdminDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := h.Guard.RequireAdministrator(r)
	if err != nil {
		h.fail(w, r, middleware.AdminPath, err)
		return
	}
	target, err := formID(r)
	if err != nil {
		h.fail(w, r, middleware.AdminPath, err)
		return
	}
	if err := h.Records.Delete(domain.WithIdentity(r.Context(), id), target); err != nil {
		h.fail(w, r, middleware.AdminPath, err)
		return
	}
	http.Redirect(w, r, middleware.AdminPath, http.StatusSeeOther)
}

func formID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation("invalid id %q", raw)
	}
	return id, nil
}
