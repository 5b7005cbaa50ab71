// Package ansi renders components as terminal text with ANSI escape
// sequences.
package ansi

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/roboco-io/chatcomp/internal/component"
)

// Renderer styles components for one output. The zero value is not
// usable; use New.
type Renderer struct {
	lg         *lipgloss.Renderer
	hyperlinks bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithProfile forces a color profile instead of detecting it from the
// output.
func WithProfile(p termenv.Profile) Option {
	return func(r *Renderer) {
		r.lg.SetColorProfile(p)
	}
}

// WithHyperlinks turns open_url click events into OSC 8 hyperlinks.
func WithHyperlinks(enabled bool) Option {
	return func(r *Renderer) {
		r.hyperlinks = enabled
	}
}

// New creates a Renderer for w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{lg: lipgloss.NewRenderer(w)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Profile returns the color profile in use.
func (r *Renderer) Profile() termenv.Profile {
	return r.lg.ColorProfile()
}

// Render walks each component tree pre-order and styles every node's
// text from its effective style.
func (r *Renderer) Render(components ...*component.Component) string {
	var sb strings.Builder
	component.Walk(components, func(c *component.Component) {
		r.render(&sb, c)
	})
	return sb.String()
}

func (r *Renderer) render(sb *strings.Builder, c *component.Component) {
	if c.Text != "" {
		text := r.style(component.Resolve(c)).Render(c.Text)
		if r.hyperlinks && r.Profile() != termenv.Ascii {
			if click := c.Style.Click; click != nil && click.Action == component.OpenURL {
				text = termenv.Hyperlink(click.Value, text)
			}
		}
		sb.WriteString(text)
	}
}

func (r *Renderer) style(res component.Resolved) lipgloss.Style {
	s := r.lg.NewStyle().
		TabWidth(lipgloss.NoTabConversion).
		Bold(res.Bold).
		Italic(res.Italic).
		Underline(res.Underlined).
		Strikethrough(res.Strikethrough).
		Blink(res.Obfuscated)
	if hex := res.Color.Hex(); hex != "" {
		s = s.Foreground(lipgloss.Color(hex))
	}
	return s
}
