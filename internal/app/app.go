// Package app provides application-level wiring: repositories, services,
// the session codec, and the HTTP router that serves pages and the API.
package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"quetzal-gate/internal/api"
	"quetzal-gate/internal/auth"
	"quetzal-gate/internal/config"
	"quetzal-gate/internal/db"
	"quetzal-gate/internal/db/repository"
	"quetzal-gate/internal/middleware"
	"quetzal-gate/internal/service"
	"quetzal-gate/internal/ui"
)

// Deps holds what the caller must provide: configuration and an open,
// migrated store.
type Deps struct {
	Cfg    *config.Config
	Pools  *db.Pools
	Logger *slog.Logger

	// Now overrides the clock for token issue and record defaults.
	Now func() time.Time
	// Hasher overrides the bcrypt hasher, mostly to lower the cost in tests.
	Hasher *auth.Hasher
}

// Services groups the service pointers the handlers need.
type Services struct {
	Accounts *service.AccountService
	Records  *service.RecordService
	Audit    *service.AuditService
}

// App is the fully wired application.
type App struct {
	Services Services
	Codec    *auth.TokenCodec
	Guard    *auth.Guard

	cfg    *config.Config
	api    *api.Handler
	ui     *ui.Handler
	logger *slog.Logger
}

// New wires repositories, services and handlers from deps.
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg
	if cfg == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	if deps.Pools == nil {
		return nil, fmt.Errorf("app: store is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	hasher := deps.Hasher
	if hasher == nil {
		hasher = auth.NewHasher()
	}

	// === Repositories ===
	accountRepo := repository.NewAccountRepo(deps.Pools)
	recordRepo := repository.NewRecordRepo(deps.Pools)
	auditRepo := repository.NewAuditRepo(deps.Pools)

	// === Services ===
	svcs := Services{
		Accounts: service.NewAccountService(accountRepo, hasher, auditRepo, logger),
		Records:  service.NewRecordService(recordRepo, auditRepo, now, logger),
		Audit:    service.NewAuditService(auditRepo),
	}

	// === Sessions ===
	codec, err := auth.NewTokenCodec([]byte(cfg.JWTSecret), now)
	if err != nil {
		return nil, fmt.Errorf("session codec: %w", err)
	}
	session := auth.SessionCookie{Secure: cfg.IsProduction()}
	guard := auth.NewGuard(codec, session)

	return &App{
		Services: svcs,
		Codec:    codec,
		Guard:    guard,
		cfg:      cfg,
		api: api.NewHandler(api.Deps{
			Accounts: svcs.Accounts,
			Records:  svcs.Records,
			Audit:    svcs.Audit,
			Codec:    codec,
			Guard:    guard,
			Session:  session,
			Store:    deps.Pools,
			Logger:   logger,
		}),
		ui: ui.NewHandler(ui.Deps{
			Accounts:      svcs.Accounts,
			Records:       svcs.Records,
			Codec:         codec,
			Guard:         guard,
			Session:       session,
			PublicBaseURL: cfg.PublicBaseURL,
			Production:    cfg.IsProduction(),
			Logger:        logger,
		}),
		logger: logger,
	}, nil
}

// Router builds the HTTP handler. Every request passes the request id,
// access log, panic recovery and page Gate before routing.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(a.logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewGate(a.Guard, a.logger).Handler)

	var apiHandler http.Handler = a.api.Routes()
	if len(a.cfg.CORSAllowedOrigins) > 0 {
		apiHandler = cors.Handler(cors.Options{
			AllowedOrigins:   a.cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", middleware.RequestIDHeader},
			ExposedHeaders:   []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		})(apiHandler)
	}
	r.Mount("/api", apiHandler)

	ui.MountRoutes(r, a.ui)
	return r
}
