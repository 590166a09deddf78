package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StylePlain = "notty"
)

// Renderer turns assistant markdown into terminal output.
type Renderer struct {
	style string
	width int
}

func NewRenderer(style string, width int) Renderer {
	if width <= 0 {
		width = 80
	}
	if style == "" {
		style = StyleAuto
	}
	return Renderer{style: style, width: width}
}

func (r Renderer) WithWidth(width int) Renderer {
	if width > 0 {
		r.width = width
	}
	return r
}

func (r Renderer) Render(md string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(r.width)}
	if r.style == StyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(r.style))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := tr.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// RenderOrRaw falls back to the source text when rendering fails.
func (r Renderer) RenderOrRaw(md string) string {
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
