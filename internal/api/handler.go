// Package api serves the JSON data API mounted under /api.
//
// The page Gate never sees these routes, so every handler that needs a
// caller runs an auth.Guard first and hands the identity to the service
// through the request context.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quetzal-gate/internal/auth"
	"quetzal-gate/internal/domain"
	"quetzal-gate/internal/service"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators of Handler.
type Deps struct {
	Accounts *service.AccountService
	Records  *service.RecordService
	Audit    *service.AuditService
	Codec    *auth.TokenCodec
	Guard    *auth.Guard
	Session  auth.SessionCookie
	Store    Pinger
	Logger   *slog.Logger
}

// Handler implements the /api routes.
type Handler struct {
	accounts *service.AccountService
	records  *service.RecordService
	audit    *service.AuditService
	codec    *auth.TokenCodec
	guard    *auth.Guard
	session  auth.SessionCookie
	store    Pinger
	logger   *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		accounts: d.Accounts,
		records:  d.Records,
		audit:    d.Audit,
		codec:    d.Codec,
		guard:    d.Guard,
		session:  d.Session,
		store:    d.Store,
		logger:   logger.With("component", "api"),
	}
}

// Routes returns the router to mount at /api.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", h.Health)
	r.Get("/openapi.json", h.OpenAPI)

	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/session", h.Session)

	r.Get("/records", h.ListRecords)
	r.Post("/records", h.CreateRecord)
	r.Get("/records/stats", h.RecordStats)
	r.Put("/records/{id}", h.UpdateRecord)
	r.Delete("/records/{id}", h.DeleteRecord)

	r.Get("/users", h.ListUsers)
	r.Post("/users", h.CreateUser)
	r.Put("/users/{id}", h.UpdateUser)
	r.Delete("/users/{id}", h.DeactivateUser)

	r.Get("/audit", h.ListAudit)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, envelope{"success": false, "message": "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{"success": false, "message": "method not allowed"})
	})
	return r
}

// authenticated runs the authenticated guard and returns a context carrying
// the caller, or writes the failure and returns false.
func (h *Handler) authenticated(w http.ResponseWriter, r *http.Request) (context.Context, bool) {
	id, err := h.guard.RequireAuthenticated(r)
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return domain.WithIdentity(r.Context(), id), true
}

// administrator is authenticated plus the administrator role.
func (h *Handler) administrator(w http.ResponseWriter, r *http.Request) (context.Context, bool) {
	id, err := h.guard.RequireAdministrator(r)
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return domain.WithIdentity(r.Context(), id), true
}

// Health pings the store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, envelope{"status": "ok"})
}
