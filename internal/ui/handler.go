// Package ui renders the server-side HTML pages: sign-in, the gate desk
// at "/", the admin area and the invite card.
package ui

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	gomponents "maragu.dev/gomponents"

	"quetzal-gate/internal/auth"
	"quetzal-gate/internal/domain"
	"quetzal-gate/internal/middleware"
	"quetzal-gate/internal/service"
)

// Deps are the collaborators of Handler.
type Deps struct {
	Accounts      *service.AccountService
	Records       *service.RecordService
	Codec         *auth.TokenCodec
	Guard         *auth.Guard
	Session       auth.SessionCookie
	PublicBaseURL string
	Production    bool
	Logger        *slog.Logger
}

type Handler struct {
	Accounts      *service.AccountService
	Records       *service.RecordService
	Codec         *auth.TokenCodec
	Guard         *auth.Guard
	Session       auth.SessionCookie
	PublicBaseURL string
	Production    bool

	logger *slog.Logger
}

func NewHandler(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		Accounts:      d.Accounts,
		Records:       d.Records,
		Codec:         d.Codec,
		Guard:         d.Guard,
		Session:       d.Session,
		PublicBaseURL: d.PublicBaseURL,
		Production:    d.Production,
		logger:        logger.With("component", "ui"),
	}
}

// log returns the handler logger; handlers built without NewHandler
// discard.
func (h *Handler) log() *slog.Logger {
	if h.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return h.logger
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

// viewer returns the identity the Gate forwarded, falling back to reading
// the session when the page is served without the Gate.
func (h *Handler) viewer(r *http.Request) (domain.Identity, bool) {
	if id, ok := domain.IdentityFromContext(r.Context()); ok {
		return id, true
	}
	return h.Guard.Identify(r)
}

// redirectWithError sends the browser back to path with a notice the page
// shows above its content.
func redirectWithError(w http.ResponseWriter, r *http.Request, path, message string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(message), http.StatusSeeOther)
}

// fail turns a service error into a redirect for caller mistakes or an
// error page for everything else.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, back string, err error) {
	var (
		unauth    *domain.UnauthenticatedError
		forbidden *domain.ForbiddenError
		invalid   *domain.ValidationError
		notFound  *domain.NotFoundError
		conflict  *domain.ConflictError
	)
	switch {
	case errors.As(err, &unauth):
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
	case errors.As(err, &forbidden):
		renderHTML(w, http.StatusForbidden, errorPage("Acesso negado", err.Error()))
	case errors.As(err, &invalid), errors.As(err, &notFound), errors.As(err, &conflict):
		redirectWithError(w, r, back, err.Error())
	default:
		h.log().ErrorContext(r.Context(), "page request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
		renderHTML(w, http.StatusInternalServerError, errorPage("Erro", "Algo deu errado. Tente novamente."))
	}
}
