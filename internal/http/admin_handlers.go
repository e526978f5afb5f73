package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tazhibayda/markpad/internal/domain"
	applog "github.com/tazhibayda/markpad/internal/log"
)

type userRow struct {
	ID        string
	Name      string
	Email     string
	PhotoURL  string
	CreatedAt string
	LastLogin string
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

func toRows(ps []domain.UserProfile) []userRow {
	rows := make([]userRow, 0, len(ps))
	for _, p := range ps {
		name := domain.Deref(p.DisplayName)
		if name == "" {
			name = "No Name"
		}
		rows = append(rows, userRow{
			ID:        p.ID,
			Name:      name,
			Email:     domain.Deref(p.Email),
			PhotoURL:  domain.Deref(p.PhotoURL),
			CreatedAt: fmtTime(p.CreatedAt),
			LastLogin: fmtTime(p.LastLogin),
		})
	}
	return rows
}

// AdminPage lists every user. A store failure shows an empty table.
func (h *Handler) AdminPage(c *gin.Context) {
	id, _ := currentIdentity(c)
	users, err := h.Profiles.GetAll(c.Request.Context())
	if err != nil {
		applog.Ctx(c.Request.Context(), zap.String("request_id", requestID(c))).
			Error("admin list users failed", zap.Error(err))
		users = nil
	}
	c.HTML(http.StatusOK, "admin.tmpl", gin.H{
		"Identity": id,
		"Users":    toRows(users),
	})
}

type usersResp struct {
	Users []domain.UserProfile `json:"users"`
	Count int                  `json:"count"`
}

// ListUsers godoc
// @Summary List users (admin)
// @Tags admin
// @Security SessionAuth
// @Produce json
// @Param email query string false "exact email match"
// @Success 200 {object} usersResp
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	if email, ok := c.GetQuery("email"); ok {
		p, err := h.Profiles.GetByEmail(ctx, email)
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, usersResp{Users: []domain.UserProfile{*p}, Count: 1})
		return
	}

	users, err := h.Profiles.GetAll(ctx)
	if err != nil {
		applog.Ctx(ctx).Error("list users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, usersResp{Users: users, Count: len(users)})
}

// GetUser godoc
// @Summary Get one user (admin)
// @Tags admin
// @Security SessionAuth
// @Produce json
// @Param id path string true "identity id"
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} map[string]string
// @Router /api/admin/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	p, err := h.Profiles.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, p)
}
