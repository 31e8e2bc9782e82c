package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quetzal-gate/internal/auth"
	"quetzal-gate/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want PathClass
	}{
		{"/login", Public},
		{"/login/extra", Protected},
		{"/", Protected},
		{"/invite", Protected},
		{"/invite/qr", Protected},
		{"/admin", AdminOnly},
		{"/admin/users", AdminOnly},
		{"/administrator", Protected},
		{"/api", Excluded},
		{"/api/records", Excluded},
		{"/apiary", Protected},
		{"/static/app.css", Excluded},
		{"/favicon.ico", Excluded},
		{"/logo.SVG", Excluded},
		{"/images/car.jpeg", Excluded},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Classify(tc.path))
		})
	}
}

type gateFixture struct {
	handler    http.Handler
	adminToken string
	agentToken string
	seen       *domain.Identity
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	codec, err := auth.NewTokenCodec([]byte("gate-secret"), nil)
	require.NoError(t, err)
	guard := auth.NewGuard(codec, auth.SessionCookie{})

	admin, err := codec.Issue(domain.Identity{UserID: 1, Email: "a@site.test", Name: "Admin", Role: domain.RoleAdmin})
	require.NoError(t, err)
	agent, err := codec.Issue(domain.Identity{UserID: 2, Email: "v@site.test", Name: "Vigia", Role: domain.RoleFieldAgent})
	require.NoError(t, err)

	f := &gateFixture{adminToken: admin, agentToken: agent}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := domain.IdentityFromContext(r.Context()); ok {
			f.seen = &id
		}
		w.WriteHeader(http.StatusOK)
	})
	f.handler = NewGate(guard, nil).Handler(next)
	return f
}

func (f *gateFixture) do(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestGate_Transitions(t *testing.T) {
	f := newGateFixture(t)

	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
		wantLoc  string
	}{
		{"login with admin goes to admin area", "/login", f.adminToken, http.StatusSeeOther, AdminPath},
		{"login with agent goes to default area", "/login", f.agentToken, http.StatusSeeOther, DefaultPath},
		{"login anonymous is served", "/login", "", http.StatusOK, ""},
		{"login with invalid token is served", "/login", "garbage", http.StatusOK, ""},
		{"protected anonymous goes to login", "/", "", http.StatusSeeOther, LoginPath},
		{"protected invalid goes to login", "/invite", "garbage", http.StatusSeeOther, LoginPath},
		{"protected agent is served", "/", f.agentToken, http.StatusOK, ""},
		{"protected admin is served", "/invite", f.adminToken, http.StatusOK, ""},
		{"admin anonymous goes to login", "/admin", "", http.StatusSeeOther, LoginPath},
		{"admin with agent goes to default area", "/admin/users", f.agentToken, http.StatusSeeOther, DefaultPath},
		{"admin with admin is served", "/admin", f.adminToken, http.StatusOK, ""},
		{"api is never redirected", "/api/records", "", http.StatusOK, ""},
		{"static is never redirected", "/static/app.css", "", http.StatusOK, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(tc.path, tc.token)
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantLoc, rec.Header().Get("Location"))
		})
	}
}

func TestGate_ForwardsIdentityInContext(t *testing.T) {
	f := newGateFixture(t)

	rec := f.do("/", f.agentToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.seen)
	assert.Equal(t, int64(2), f.seen.UserID)
	assert.Equal(t, domain.RoleFieldAgent, f.seen.Role)
}

func TestGate_DoesNotDecorateExcludedPaths(t *testing.T) {
	f := newGateFixture(t)

	rec := f.do("/api/session", f.adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, f.seen)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pot", nil))

	out := buf.String()
	assert.Contains(t, out, `"path":"/pot"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"bytes":15`)
	assert.Contains(t, out, `"request_id":"`+rec.Header().Get(RequestIDHeader)+`"`)
}
