package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Landing(c *gin.Context) {
	if _, ok := currentIdentity(c); ok {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	c.HTML(http.StatusOK, "landing.tmpl", gin.H{
		"LoginURL": "/auth/" + h.Provider.Name() + "/login",
	})
}

func (h *Handler) Home(c *gin.Context) {
	id, _ := currentIdentity(c)
	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"Identity": id,
		"IsAdmin":  h.Admins.IsAdmin(id.Email),
	})
}
