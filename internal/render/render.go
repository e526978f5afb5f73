// Package render turns editor input into preview HTML.
package render

import (
	"bytes"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.abhg.dev/goldmark/mermaid"
)

var ErrNotSVG = errors.New("animation must be an <svg> element")

type Renderer struct {
	md  goldmark.Markdown
	svg *bluemonday.Policy
}

func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				// mermaid.js on the page draws the diagrams
				&mermaid.Extender{RenderMode: mermaid.RenderModeClient, NoScript: true},
			),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		svg: svgPolicy(),
	}
}

// Markdown renders GitHub flavoured markdown. Raw HTML in the input is dropped.
func (r *Renderer) Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Diagram wraps Mermaid source into the block the page's mermaid.js picks up.
func (r *Renderer) Diagram(src string) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", nil
	}
	return r.Markdown("```mermaid\n" + src + "\n```\n")
}

// Animation sanitizes user supplied SVG down to shapes, paint and SMIL animation.
func (r *Renderer) Animation(src string) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", nil
	}
	out := strings.TrimSpace(r.svg.Sanitize(src))
	if !strings.HasPrefix(out, "<svg") {
		return "", ErrNotSVG
	}
	return out, nil
}

func svgPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"svg", "g", "defs", "title", "desc",
		"circle", "ellipse", "line", "path", "polygon", "polyline", "rect", "text", "tspan",
		"lineargradient", "radialgradient", "stop",
		"animate", "animatetransform", "animatemotion", "set",
	)
	p.AllowAttrs("xmlns", "width", "height", "viewbox", "preserveaspectratio").OnElements("svg")
	p.AllowAttrs(
		"id", "class", "transform", "opacity",
		"fill", "fill-opacity", "fill-rule", "stroke", "stroke-width", "stroke-opacity",
		"stroke-linecap", "stroke-linejoin", "stroke-dasharray", "stroke-dashoffset",
		"cx", "cy", "r", "rx", "ry", "x", "y", "x1", "y1", "x2", "y2", "dx", "dy",
		"width", "height", "d", "points", "offset", "stop-color", "stop-opacity",
		"font-size", "font-family", "text-anchor",
		"attributename", "attributetype", "values", "from", "to", "by", "dur", "begin", "end",
		"repeatcount", "repeatdur", "keytimes", "keysplines", "calcmode", "type", "additive",
		"accumulate", "path", "rotate",
	).Globally()
	return p
}
