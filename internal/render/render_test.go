package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown_GFM(t *testing.T) {
	r := New()
	out, err := r.Markdown("| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~ and https://example.com\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>1</td>")
	assert.Contains(t, out, "<del>gone</del>")
	assert.Contains(t, out, `<a href="https://example.com">`)
}

func TestMarkdown_DropsRawHTML(t *testing.T) {
	out, err := New().Markdown("hi <script>alert(1)</script>\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestMarkdown_MermaidBlock(t *testing.T) {
	out, err := New().Markdown("```mermaid\ngraph TD\n  A-->B\n```\n")
	require.NoError(t, err)
	assert.Contains(t, out, `class="mermaid"`)
	assert.Contains(t, out, "graph TD")
	assert.NotContains(t, out, "<script")
}

func TestDiagram(t *testing.T) {
	r := New()
	out, err := r.Diagram(ExampleDiagram)
	require.NoError(t, err)
	assert.Contains(t, out, `class="mermaid"`)

	out, err = r.Diagram("   ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAnimation_KeepsSMIL(t *testing.T) {
	out, err := New().Animation(ExampleAnimation)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, "<circle")
	assert.Contains(t, out, "<animate")
	assert.Contains(t, out, `dur="2s"`)
}

func TestAnimation_StripsScripts(t *testing.T) {
	in := `<svg xmlns="http://www.w3.org/2000/svg" onload="alert(1)"><script>alert(2)</script>` +
		`<circle r="5" onclick="alert(3)"/></svg>`
	out, err := New().Animation(in)
	require.NoError(t, err)
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "alert")
	assert.NotContains(t, out, "onload")
	assert.Contains(t, out, "<circle")
}

func TestAnimation_RejectsNonSVG(t *testing.T) {
	_, err := New().Animation("<div>hello</div>")
	assert.True(t, errors.Is(err, ErrNotSVG))

	out, err := New().Animation("")
	assert.NoError(t, err)
	assert.Empty(t, out)
}
