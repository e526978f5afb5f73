package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazhibayda/markpad/internal/render"
)

type previewReq struct {
	Markdown  string `json:"markdown"  binding:"max=200000"`
	Animation string `json:"animation" binding:"max=100000"`
	Diagram   string `json:"diagram"   binding:"max=50000"`
}

type previewResp struct {
	HTML      string `json:"html"`
	Animation string `json:"animation"`
	Diagram   string `json:"diagram"`
}

// Preview godoc
// @Summary Render markdown, SVG animation and Mermaid diagram for the preview pane
// @Tags preview
// @Security SessionAuth
// @Accept json
// @Produce json
// @Param payload body previewReq true "editor content"
// @Success 200 {object} previewResp
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /api/preview [post]
func (h *Handler) Preview(c *gin.Context) {
	var in previewReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	var (
		out previewResp
		err error
	)
	if out.HTML, err = h.Renderer.Markdown(in.Markdown); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "markdown: " + err.Error()})
		return
	}
	if out.Animation, err = h.Renderer.Animation(in.Animation); err != nil {
		if errors.Is(err, render.ErrNotSVG) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "animation render failed"})
		return
	}
	if out.Diagram, err = h.Renderer.Diagram(in.Diagram); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "diagram: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// PreviewExamples godoc
// @Summary Example editor content
// @Tags preview
// @Security SessionAuth
// @Produce json
// @Success 200 {object} previewReq
// @Router /api/preview/examples [get]
func (h *Handler) PreviewExamples(c *gin.Context) {
	c.JSON(http.StatusOK, previewReq{
		Markdown:  render.ExampleMarkdown,
		Animation: render.ExampleAnimation,
		Diagram:   render.ExampleDiagram,
	})
}
