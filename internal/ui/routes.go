package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"quetzal-gate/internal/ui/assets"
)

// MountRoutes registers the pages on r. The caller is expected to run the
// page Gate in front of r.
func MountRoutes(r chi.Router, h *Handler) {
	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(h.EnsureCSRFToken)
		r.Use(h.RequireCSRF)

		r.Get("/login", h.LoginPage)
		r.Post("/login", h.LoginSubmit)
		r.Post("/logout", h.Logout)

		r.Get("/", h.Home)
		r.Post("/records", h.CreateRecord)

		r.Get("/admin", h.AdminPage)
		r.Post("/admin/users", h.AdminCreateUser)
		r.Post("/admin/users/{id}/deactivate", h.AdminDeactivateUser)
		r.Post("/admin/records/{id}/delete", h.AdminDeleteRecord)

		r.Get("/invite", h.InvitePage)
		r.Get("/invite/qr", h.InviteQR)
	})
}
