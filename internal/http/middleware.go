package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tazhibayda/markpad/internal/domain"
	applog "github.com/tazhibayda/markpad/internal/log"
	"github.com/tazhibayda/markpad/internal/session"
)

const (
	requestIDKey    = "X-Request-ID"
	identityKey     = "identity"
	sessionTokenKey = "session_token"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDKey)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDKey, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string { return c.GetString(requestIDKey) }

// AccessLog writes one structured line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		applog.Ctx(c.Request.Context()).Info("http",
			zap.String("request_id", requestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	tok, _ := c.Cookie(session.CookieName)
	return tok
}

// LoadSession resolves the session cookie or bearer token into the current
// identity. It never rejects; RequireAuth does.
func (h *Handler) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := tokenFromRequest(c)
		if tok == "" {
			c.Next()
			return
		}
		s, err := h.Sessions.Resolve(c.Request.Context(), tok)
		switch {
		case err == nil:
			c.Set(identityKey, &s.Identity)
			c.Set(sessionTokenKey, tok)
		case errors.Is(err, session.ErrNoSession):
		default:
			applog.Ctx(c.Request.Context()).Warn("session lookup failed",
				zap.String("request_id", requestID(c)), zap.Error(err))
		}
		c.Next()
	}
}

func currentIdentity(c *gin.Context) (*domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*domain.Identity)
	return id, ok && id != nil
}

func sessionToken(c *gin.Context) string {
	if tok := c.GetString(sessionTokenKey); tok != "" {
		return tok
	}
	return tokenFromRequest(c)
}

func isAPI(c *gin.Context) bool { return strings.HasPrefix(c.Request.URL.Path, "/api/") }

// RequireAuth sends anonymous browsers back to the landing page and
// answers 401 on the JSON API.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentIdentity(c); ok {
			c.Next()
			return
		}
		if isAPI(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}
		c.Redirect(http.StatusFound, "/")
		c.Abort()
	}
}

// RequireAdmin lets through identities whose email is in the admin set.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentIdentity(c)
		if ok && h.Admins.IsAdmin(id.Email) {
			c.Next()
			return
		}
		if isAPI(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.HTML(http.StatusForbidden, "denied.tmpl", gin.H{"Identity": id})
		c.Abort()
	}
}

// RateLimit applies the per-IP fixed window. Backend errors let the request through.
func (h *Handler) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.Limiter == nil || h.RateLimitPerMin <= 0 {
			c.Next()
			return
		}
		ok, err := h.Limiter.Allow(c.Request.Context(), "preview:"+c.ClientIP(), h.RateLimitPerMin, time.Minute)
		if err != nil {
			applog.Ctx(c.Request.Context()).Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
