package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"quetzal-gate/internal/auth"
	"quetzal-gate/internal/config"
	internaldb "quetzal-gate/internal/db"
	"quetzal-gate/internal/middleware"
	"quetzal-gate/internal/testutil"
)

func newTestApp(t *testing.T, cfg *config.Config) (*App, http.Handler) {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{Env: "development", JWTSecret: "test-secret"}
	}
	a, err := New(Deps{
		Cfg:    cfg,
		Pools:  internaldb.OpenTestSQLite(t),
		Hasher: auth.NewHasherWithCost(bcrypt.MinCost),
	})
	require.NoError(t, err)

	_, err = a.Services.Accounts.SeedAdmin(context.Background(), testutil.Admin.Email, testutil.Admin.Name, "secret")
	require.NoError(t, err)
	return a, a.Router()
}

func serve(h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNew_RequiresConfigAndStore(t *testing.T) {
	_, err := New(Deps{})
	require.Error(t, err)
	_, err = New(Deps{Cfg: &config.Config{JWTSecret: "x"}})
	require.Error(t, err)
}

func TestRouter_GateRedirects(t *testing.T) {
	a, h := newTestApp(t, nil)
	admin, err := a.Codec.Issue(testutil.Admin)
	require.NoError(t, err)
	agent, err := a.Codec.Issue(testutil.Agent)
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		token    string
		location string
	}{
		{"anonymous home", "/", "", "/login"},
		{"anonymous admin", "/admin", "", "/login"},
		{"anonymous invite", "/invite", "", "/login"},
		{"agent on admin", "/admin", agent, "/"},
		{"agent on login", "/login", agent, "/"},
		{"admin on login", "/login", admin, "/admin"},
		{"tampered token", "/", admin + "x", "/login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, http.MethodGet, tt.path, tt.token)
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
}

func TestRouter_ServesPagesAfterGate(t *testing.T) {
	a, h := newTestApp(t, nil)
	admin, err := a.Codec.Issue(testutil.Admin)
	require.NoError(t, err)

	rec := serve(h, http.MethodGet, "/login", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, http.MethodGet, "/admin", admin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), testutil.Admin.Email)

	rec = serve(h, http.MethodGet, "/", admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_APIBypassesGate(t *testing.T) {
	_, h := newTestApp(t, nil)

	rec := serve(h, http.MethodGet, "/api/records", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "API answers 401 instead of redirecting")

	rec = serve(h, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = serve(h, http.MethodGet, "/static/app.css", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RequestID(t *testing.T) {
	_, h := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get(middleware.RequestIDHeader))

	rec = serve(h, http.MethodGet, "/api/health", "")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_CORS(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", CORSAllowedOrigins: []string{"https://panel.example.test"}}
	_, h := newTestApp(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/records", nil)
	req.Header.Set("Origin", "https://panel.example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://panel.example.test", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_SecureCookieInProduction(t *testing.T) {
	cfg := &config.Config{Env: "production", JWTSecret: "test-secret"}
	_, h := newTestApp(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"`+testutil.Admin.Email+`","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			found = true
			assert.True(t, c.Secure)
			assert.True(t, c.HttpOnly)
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		}
	}
	assert.True(t, found)
}
