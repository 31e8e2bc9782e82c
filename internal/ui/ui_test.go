package ui

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"quetzal-gate/internal/auth"
	internaldb "quetzal-gate/internal/db"
	"quetzal-gate/internal/db/repository"
	"quetzal-gate/internal/domain"
	"quetzal-gate/internal/service"
	"quetzal-gate/internal/testutil"
)

const testCSRF = "csrf-token-for-tests"

type uiFixture struct {
	router http.Handler
	codec  *auth.TokenCodec
	admin  string
	agent  string
}

func newUIFixture(t *testing.T, publicBaseURL string) *uiFixture {
	t.Helper()
	pools := internaldb.OpenTestSQLite(t)
	auditRepo := repository.NewAuditRepo(pools)
	accountRepo := repository.NewAccountRepo(pools)
	hasher := auth.NewHasherWithCost(bcrypt.MinCost)

	for _, id := range []domain.Identity{testutil.Admin, testutil.Agent} {
		digest, err := hasher.Hash("secret")
		require.NoError(t, err)
		_, err = accountRepo.Create(context.Background(), &domain.Account{
			Email: id.Email, PasswordHash: digest, Name: id.Name, Role: id.Role, Active: true,
		})
		require.NoError(t, err)
	}

	codec, err := auth.NewTokenCodec([]byte("test-secret"), time.Now)
	require.NoError(t, err)
	session := auth.SessionCookie{}

	h := NewHandler(Deps{
		Accounts:      service.NewAccountService(accountRepo, hasher, auditRepo, nil),
		Records:       service.NewRecordService(repository.NewRecordRepo(pools), auditRepo, time.Now, nil),
		Codec:         codec,
		Guard:         auth.NewGuard(codec, session),
		Session:       session,
		PublicBaseURL: publicBaseURL,
	})
	r := chi.NewRouter()
	MountRoutes(r, h)

	admin, err := codec.Issue(testutil.Admin)
	require.NoError(t, err)
	agent, err := codec.Issue(testutil.Agent)
	require.NoError(t, err)
	return &uiFixture{router: r, codec: codec, admin: admin, agent: agent}
}

func (f *uiFixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// post submits a form carrying a valid CSRF pair.
func (f *uiFixture) post(path, token string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", testCSRF)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRF})
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestLoginPage_RendersForm(t *testing.T) {
	f := newUIFixture(t, "")
	rec := f.get("/login?error=bad", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, `name="csrf_token"`)
	assert.Contains(t, body, "bad")
}

func TestLoginSubmit(t *testing.T) {
	f := newUIFixture(t, "")

	tests := []struct {
		name     string
		email    string
		password string
		location string
		session  bool
	}{
		{"admin lands on admin area", testutil.Admin.Email, "secret", "/admin", true},
		{"field agent lands on home", testutil.Agent.Email, "secret", "/", true},
		{"wrong password", testutil.Agent.Email, "nope", "/login?error=", false},
		{"missing password", testutil.Agent.Email, "", "/login?error=", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.post("/login", "", url.Values{"email": {tt.email}, "password": {tt.password}})
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), tt.location), rec.Header().Get("Location"))

			cookie := sessionCookie(rec)
			if !tt.session {
				assert.Nil(t, cookie)
				return
			}
			require.NotNil(t, cookie)
			_, ok := f.codec.Verify(cookie.Value)
			assert.True(t, ok)
		})
	}
}

func TestLoginSubmit_ValidationNoticeInPortuguese(t *testing.T) {
	f := newUIFixture(t, "")
	rec := f.post("/login", "", url.Values{"email": {""}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error="+url.QueryEscape("Informe email e senha"), rec.Header().Get("Location"))
}

func TestSessionChangesRotateCSRFToken(t *testing.T) {
	f := newUIFixture(t, "")

	rec := f.post("/login", "", url.Values{"email": {testutil.Agent.Email}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rotated := csrfCookieFrom(rec)
	require.NotNil(t, rotated, "sign-in replaces the pre-login token")
	assert.NotEqual(t, testCSRF, rotated.Value)

	req := httptest.NewRequest(http.MethodPost, "/records",
		strings.NewReader(url.Values{"plate": {"ABC1D23"}, "direction": {"entry"}, "csrf_token": {testCSRF}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: rotated.Value})
	req.AddCookie(sessionCookie(rec))
	res := httptest.NewRecorder()
	f.router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusForbidden, res.Code, "the pre-login token no longer matches")

	rec = f.post("/logout", f.agent, nil)
	out := csrfCookieFrom(rec)
	require.NotNil(t, out, "sign-out replaces the token")
	assert.NotEqual(t, rotated.Value, out.Value)
}

func TestLoginSubmit_RequiresCSRF(t *testing.T) {
	f := newUIFixture(t, "")
	form := url.Values{"email": {testutil.Admin.Email}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Nil(t, sessionCookie(rec))
}

func TestLogout_ClearsSession(t *testing.T) {
	f := newUIFixture(t, "")
	rec := f.post("/logout", f.agent, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestCreateRecord_ThenHomeListsIt(t *testing.T) {
	f := newUIFixture(t, "")

	rec := f.post("/records", f.agent, url.Values{"plate": {" abc1d23 "}, "direction": {"entry"}, "driver": {"João"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = f.get("/", f.agent)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ABC1D23")
	assert.Contains(t, body, testutil.Agent.Name)
	assert.Contains(t, body, "João")
	assert.NotContains(t, body, `href="/admin"`, "field agents do not see the admin link")
}

func TestCreateRecord_InvalidInputRedirectsWithError(t *testing.T) {
	f := newUIFixture(t, "")

	rec := f.post("/records", f.agent, url.Values{"plate": {"ABC1D23"}, "direction": {"sideways"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/?error="))

	rec = f.post("/records", f.agent, url.Values{"plate": {"ABC1D23"}, "direction": {"exit"}, "timestamp": {"yesterday"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/?error="))
}

func TestCreateRecord_WithoutSessionGoesToLogin(t *testing.T) {
	f := newUIFixture(t, "")
	rec := f.post("/records", "", url.Values{"plate": {"ABC1D23"}, "direction": {"entry"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAdminPage(t *testing.T) {
	f := newUIFixture(t, "")

	rec := f.get("/admin", f.agent)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.get("/admin", f.admin)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, testutil.Agent.Email)
	assert.Contains(t, body, `action="/admin/users"`)
	assert.Contains(t, body, "/admin/users/2/deactivate")
	assert.NotContains(t, body, "/admin/users/1/deactivate", "admins cannot deactivate themselves from the page")
}

func TestAdminForms(t *testing.T) {
	f := newUIFixture(t, "")

	rec := f.post("/admin/users", f.admin, url.Values{
		"email": {"vigia2@site.test"}, "password": {"pw"}, "nome": {"vigia2"}, "role": {"vigia"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	rec = f.post("/admin/users", f.admin, url.Values{
		"email": {"vigia2@site.test"}, "password": {"pw"}, "nome": {"again"}, "role": {"vigia"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/admin?error="), "duplicate email is reported")

	rec = f.post("/admin/users", f.agent, url.Values{
		"email": {"vigia3@site.test"}, "password": {"pw"}, "nome": {"vigia3"}, "role": {"vigia"},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.post("/admin/users/2/deactivate", f.admin, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = f.post("/login", "", url.Values{"email": {testutil.Agent.Email}, "password": {"secret"}})
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/login?error="), "deactivated account cannot sign in")

	rec = f.post("/admin/records/999/delete", f.admin, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/admin?error="))
}

func TestInvite(t *testing.T) {
	f := newUIFixture(t, "https://gate.example.test/")

	rec := f.get("/invite", f.agent)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://gate.example.test")
	assert.Contains(t, rec.Body.String(), `src="/invite/qr"`)

	rec = f.get("/invite/qr", f.agent)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func TestSiteURL_FromRequest(t *testing.T) {
	t.Parallel()
	h := &Handler{}
	r := httptest.NewRequest(http.MethodGet, "/invite", nil)
	r.Host = "portaria.local:8080"
	assert.Equal(t, "http://portaria.local:8080", h.siteURL(r))

	r.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://portaria.local:8080", h.siteURL(r))
}

func TestStatic_ServesStylesheet(t *testing.T) {
	f := newUIFixture(t, "")
	rec := f.get("/static/app.css", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".topbar")
}
