package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tazhibayda/markpad/internal/domain"
	"github.com/tazhibayda/markpad/internal/oauth"
	"github.com/tazhibayda/markpad/internal/profile"
	"github.com/tazhibayda/markpad/internal/render"
	"github.com/tazhibayda/markpad/internal/security"
	"github.com/tazhibayda/markpad/internal/session"
)

// Limiter is the rate limit backend; *repo.Redis implements it.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Profiles        *profile.Service
	Sessions        *session.Manager
	Provider        oauth.Provider
	State           *security.StateSigner
	Admins          *security.AdminSet
	Renderer        *render.Renderer
	Limiter         Limiter
	RateLimitPerMin int
	Cookie          session.CookieOptions
	Health          map[string]Pinger
	TraceService    string

	// TrustedProxies may set the client IP through X-Forwarded-For.
	// Empty means the socket peer is the client.
	TrustedProxies []string
}

type Handler struct {
	Options
}

func NewHandler(o Options) *Handler {
	if o.Renderer == nil {
		o.Renderer = render.New()
	}
	return &Handler{Options: o}
}

// Healthz godoc
// @Summary Liveness of the service and its backends
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	out := gin.H{"status": "ok"}
	code := http.StatusOK
	for name, p := range h.Health {
		if err := p.Ping(c.Request.Context()); err != nil {
			out["status"] = "degraded"
			out[name] = err.Error()
			code = http.StatusServiceUnavailable
		}
	}
	c.JSON(code, out)
}

type meResp struct {
	domain.Identity
	IsAdmin bool `json:"is_admin"`
}

// Me godoc
// @Summary Current signed-in identity
// @Tags auth
// @Security SessionAuth
// @Produce json
// @Success 200 {object} meResp
// @Failure 401 {object} map[string]string
// @Router /api/me [get]
func (h *Handler) Me(c *gin.Context) {
	id, _ := currentIdentity(c)
	c.JSON(http.StatusOK, meResp{Identity: *id, IsAdmin: h.Admins.IsAdmin(id.Email)})
}
