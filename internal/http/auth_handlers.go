package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	applog "github.com/tazhibayda/markpad/internal/log"
	"github.com/tazhibayda/markpad/internal/security"
	"github.com/tazhibayda/markpad/internal/session"
)

// Login sends the browser to the identity provider.
func (h *Handler) Login(c *gin.Context) {
	nonce, err := security.NewID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "state gen"})
		return
	}
	state := h.State.Sign(nonce)
	session.SetStateCookie(c.Writer, state, h.Cookie)
	c.Redirect(http.StatusFound, h.Provider.AuthURL(state))
}

// Callback finishes sign-in: verify state, exchange the code, record the
// profile, open a session.
func (h *Handler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	l := applog.Ctx(ctx, zap.String("request_id", requestID(c)))

	state := c.Query("state")
	want, _ := c.Cookie(session.StateCookieName)
	session.ClearStateCookie(c.Writer, h.Cookie)
	if state == "" || state != want || !h.State.Verify(state) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state"})
		return
	}
	if e := c.Query("error"); e != "" {
		l.Info("sign-in cancelled at provider", zap.String("error", e))
		c.Redirect(http.StatusFound, "/")
		return
	}

	id, err := h.Provider.Exchange(ctx, c.Query("code"))
	if err != nil {
		l.Warn("code exchange failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign-in failed"})
		return
	}

	// a profile write failure must not block sign-in; the service already logged it
	_ = h.Profiles.Upsert(ctx, *id, requestID(c))

	tok, s, err := h.Sessions.Create(ctx, *id)
	if err != nil {
		l.Error("session create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}
	session.SetCookie(c.Writer, tok, s.ExpiresAt, h.Cookie)
	c.Redirect(http.StatusFound, "/home")
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Success 303
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if tok := sessionToken(c); tok != "" {
		if err := h.Sessions.Destroy(c.Request.Context(), tok); err != nil {
			applog.Ctx(c.Request.Context()).Warn("session destroy failed", zap.Error(err))
		}
	}
	session.ClearCookie(c.Writer, h.Cookie)
	c.Redirect(http.StatusSeeOther, "/")
}
