package middleware

import (
	"log/slog"
	"net/http"
	"path"
	"strings"

	"quetzal-gate/internal/domain"
)

// PathClass is the Gate's coarse classification of a request path.
type PathClass int

const (
	// Excluded paths bypass the Gate: the data API and static files.
	Excluded PathClass = iota
	Public
	Protected
	AdminOnly
)

func (c PathClass) String() string {
	switch c {
	case Excluded:
		return "excluded"
	case Public:
		return "public"
	case Protected:
		return "protected"
	case AdminOnly:
		return "admin_only"
	default:
		return "unknown"
	}
}

// Page paths the Gate redirects between.
const (
	LoginPath   = "/login"
	DefaultPath = "/"
	AdminPath   = "/admin"
)

var staticExtensions = map[string]bool{
	".svg": true, ".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".ico": true,
}

// Classify maps a request path to its PathClass.
func Classify(p string) PathClass {
	switch {
	case p == "/api" || strings.HasPrefix(p, "/api/"):
		return Excluded
	case strings.HasPrefix(p, "/static/"):
		return Excluded
	case staticExtensions[strings.ToLower(path.Ext(p))]:
		return Excluded
	case p == LoginPath:
		return Public
	case p == AdminPath || strings.HasPrefix(p, AdminPath+"/"):
		return AdminOnly
	default:
		return Protected
	}
}

// SessionReader resolves the verified identity behind a request.
type SessionReader interface {
	Identify(r *http.Request) (domain.Identity, bool)
}

// Gate redirects page requests based on the session's role. It is a
// navigation aid only; API handlers run their own guards.
type Gate struct {
	sessions SessionReader
	logger   *slog.Logger
}

// NewGate creates a Gate. A nil logger discards decisions.
func NewGate(sessions SessionReader, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gate{sessions: sessions, logger: logger}
}

// Handler applies the Gate to every request before routing.
func (g *Gate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		class := Classify(r.URL.Path)
		if class == Excluded {
			next.ServeHTTP(w, r)
			return
		}

		id, ok := g.sessions.Identify(r)
		target := decide(class, id, ok)
		if target != "" {
			g.logger.DebugContext(r.Context(), "gate redirect",
				"path", r.URL.Path, "class", class.String(), "authenticated", ok, "to", target)
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		if ok {
			r = r.WithContext(domain.WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// decide returns the redirect target for a request, or "" to forward it.
func decide(class PathClass, id domain.Identity, authenticated bool) string {
	switch class {
	case Public:
		if !authenticated {
			return ""
		}
		if id.IsAdmin() {
			return AdminPath
		}
		return DefaultPath
	case Protected:
		if !authenticated {
			return LoginPath
		}
	case AdminOnly:
		if !authenticated {
			return LoginPath
		}
		if !id.IsAdmin() {
			return DefaultPath
		}
	}
	return ""
}
