package http_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"

	"github.com/tazhibayda/markpad/internal/domain"
	api "github.com/tazhibayda/markpad/internal/http"
	"github.com/tazhibayda/markpad/internal/profile"
	"github.com/tazhibayda/markpad/internal/repo"
	"github.com/tazhibayda/markpad/internal/security"
	"github.com/tazhibayda/markpad/internal/session"
)

const adminEmail = "root@example.com"

// fakeProvider hands out whatever identity the test registered for a code.
type fakeProvider struct {
	byCode map[string]domain.Identity
}

func (p *fakeProvider) Name() string { return "google" }

func (p *fakeProvider) AuthURL(state string) string {
	return "https://idp.example/auth?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) Exchange(_ context.Context, code string) (*domain.Identity, error) {
	id, ok := p.byCode[code]
	if !ok {
		return nil, errors.New("bad code")
	}
	return &id, nil
}

type testEnv struct {
	T        *testing.T
	Ctx      context.Context
	Redis    *miniredis.Miniredis
	Profiles *profile.Memory
	Sessions *session.Manager
	Provider *fakeProvider
	Handler  *api.Handler
	Router   *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithRepo(t, nil)
}

func newTestEnvWithRepo(t *testing.T, r profile.Repository) *testEnv {
	t.Helper()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	rds := repo.NewRedis(mr.Addr())
	t.Cleanup(func() { _ = rds.Close() })

	mem := profile.NewMemory(nil)
	if r == nil {
		r = mem
	}
	sessions := session.NewManager(session.NewRedisStore(rds.C), "test-secret", time.Hour)
	prov := &fakeProvider{byCode: map[string]domain.Identity{}}

	h := api.NewHandler(api.Options{
		Profiles:        profile.NewService(r, nil),
		Sessions:        sessions,
		Provider:        prov,
		State:           security.NewStateSigner("state-secret"),
		Admins:          security.NewAdminSet([]string{adminEmail}),
		Limiter:         rds,
		RateLimitPerMin: 3,
		Health:          map[string]api.Pinger{"redis": rds},
	})

	gin.SetMode(gin.TestMode)
	return &testEnv{
		T: t, Ctx: ctx, Redis: mr, Profiles: mem, Sessions: sessions,
		Provider: prov, Handler: h, Router: api.NewRouter(h),
	}
}

// signIn opens a session directly and returns its token.
func (e *testEnv) signIn(id domain.Identity) string {
	e.T.Helper()
	tok, _, err := e.Sessions.Create(e.Ctx, id)
	if err != nil {
		e.T.Fatalf("session: %v", err)
	}
	return tok
}

func (e *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	e.Router.ServeHTTP(w, req)
	return w
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
