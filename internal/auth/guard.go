package auth

import (
	"net/http"

	"quetzal-gate/internal/domain"
)

// Guard is the authoritative per-handler session check.
type Guard struct {
	codec   *TokenCodec
	session SessionCookie
}

// NewGuard creates a Guard reading sessions through session and codec.
func NewGuard(codec *TokenCodec, session SessionCookie) *Guard {
	return &Guard{codec: codec, session: session}
}

// Identify returns the verified identity behind r, if any.
func (g *Guard) Identify(r *http.Request) (domain.Identity, bool) {
	token, ok := g.session.Extract(r)
	if !ok {
		return domain.Identity{}, false
	}
	return g.codec.Verify(token)
}

// RequireAuthenticated fails with UnauthenticatedError unless r carries a
// valid session.
func (g *Guard) RequireAuthenticated(r *http.Request) (domain.Identity, error) {
	id, ok := g.Identify(r)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated("authentication required")
	}
	return id, nil
}

// RequireAdministrator fails with ForbiddenError when the session is valid but
// not an administrator.
func (g *Guard) RequireAdministrator(r *http.Request) (domain.Identity, error) {
	id, err := g.RequireAuthenticated(r)
	if err != nil {
		return domain.Identity{}, err
	}
	if !id.IsAdmin() {
		return domain.Identity{}, domain.ErrForbidden("administrator role required")
	}
	return id, nil
}
