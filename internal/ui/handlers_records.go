package ui

import (
	"net/http"
	"strings"
	"time"

	"quetzal-gate/internal/domain"
	"quetzal-gate/internal/middleware"
)

// datetimeLocalLayout is the value format of <input type="datetime-local">.
const datetimeLocalLayout = "2006-01-02T15:04"

// Home is the gate desk: the movement form, the summary and recent records.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	id, ok := h.viewer(r)
	if !ok {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}
	ctx := domain.WithIdentity(r.Context(), id)

	records, err := h.Records.List(ctx)
	if err != nil {
		h.fail(w, r, middleware.DefaultPath, err)
		return
	}
	stats, err := h.Records.Stats(ctx)
	if err != nil {
		h.fail(w, r, middleware.DefaultPath, err)
		return
	}
	renderHTML(w, http.StatusOK, homePage(r, id, stats, records, strings.TrimSpace(r.URL.Query().Get("error"))))
}

// CreateRecord handles the movement form.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := h.Guard.RequireAuthenticated(r)
	if err != nil {
		h.fail(w, r, middleware.DefaultPath, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, middleware.DefaultPath, "formulário inválido")
		return
	}

	req := domain.CreateRecordRequest{
		Plate:     r.Form.Get("plate"),
		Direction: domain.Direction(r.Form.Get("direction")),
	}
	if driver := r.Form.Get("driver"); driver != "" {
		req.Driver = &driver
	}
	if raw := strings.TrimSpace(r.Form.Get("timestamp")); raw != "" {
		at, err := time.ParseInLocation(datetimeLocalLayout, raw, time.Local)
		if err != nil {
			redirectWithError(w, r, middleware.DefaultPath, "data e hora inválidas")
			return
		}
		req.EventAt = &at
	}

	if _, err := h.Records.Create(domain.WithIdentity(r.Context(), id), req); err != nil {
		h.fail(w, r, middleware.DefaultPath, err)
		return
	}
	http.Redirect(w, r, middleware.DefaultPath, http.StatusSeeOther)
}
