package legacy

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/roboco-io/chatcomp/internal/component"
)

// urlPattern matches a whole whitespace-delimited token.
var urlPattern = regexp.MustCompile(`^(?:(https?)://)?([-\w_\.]{2,}\.[a-z]{2,4})(/\S*)?$`)

// Options controls legacy parsing.
type Options struct {
	// ColorCodes enables interpretation of "§" markers as style toggles.
	// When false, markers are kept as ordinary text and only URLs are
	// recognized.
	ColorCodes bool
}

// DefaultOptions returns the default parse options.
func DefaultOptions() Options {
	return Options{
		ColorCodes: false,
	}
}

// parser holds the state of one left-to-right scan.
type parser struct {
	opts       Options
	components []*component.Component
	template   *component.Component
	buf        strings.Builder
}

// Parse converts a legacy string into sibling components, turning
// URL-shaped tokens into components with an open_url click event. The
// result always holds at least one component.
func Parse(message string, opts Options) []*component.Component {
	p := &parser{
		opts:     opts,
		template: component.NewText(""),
	}

	for i := 0; i < len(message); {
		if opts.ColorCodes {
			if r, size := utf8.DecodeRuneInString(message[i:]); r == ColorChar {
				i += size
				if i < len(message) {
					code, codeSize := utf8.DecodeRuneInString(message[i:])
					i += codeSize
					p.applyCode(lower(code))
				}
				continue
			}
		}

		end := strings.IndexByte(message[i:], ' ')
		if end == -1 {
			end = len(message)
		} else {
			end += i
		}

		if token := message[i:end]; token != "" && urlPattern.MatchString(token) {
			p.link(token)
			i = end
			continue
		}

		r, size := utf8.DecodeRuneInString(message[i:])
		if r == utf8.RuneError && size == 1 {
			p.buf.WriteByte(message[i])
		} else {
			p.buf.WriteRune(r)
		}
		i += size
	}
	p.flush()

	if len(p.components) == 0 {
		p.components = append(p.components, component.NewText(""))
	}
	return p.components
}

// flush emits the buffered text with the current template's style and
// continues with a fresh copy of the template.
func (p *parser) flush() {
	if p.buf.Len() == 0 {
		return
	}
	old := p.template
	p.template = old.Duplicate()
	old.Text = p.buf.String()
	p.buf.Reset()
	p.components = append(p.components, old)
}

func (p *parser) link(token string) {
	p.flush()

	c := p.template.Duplicate()
	c.Text = token
	target := token
	if !strings.HasPrefix(token, "http") {
		target = "http://" + token
	}
	c.Style.Click = component.NewClickEvent(component.OpenURL, target)
	p.components = append(p.components, c)
}

func (p *parser) applyCode(code rune) {
	var (
		color   component.Color
		isColor bool
	)
	switch code {
	case CodeBold, CodeItalic, CodeUnderline, CodeStrikethrough, CodeObfuscated:
	case CodeReset:
		color, isColor = component.ColorWhite, true
	default:
		color, isColor = component.ColorByCode(code)
		if !isColor {
			return
		}
	}

	p.flush()

	switch code {
	case CodeBold:
		p.template.Style.Bold = component.True
	case CodeItalic:
		p.template.Style.Italic = component.True
	case CodeUnderline:
		p.template.Style.Underlined = component.True
	case CodeStrikethrough:
		p.template.Style.Strikethrough = component.True
	case CodeObfuscated:
		p.template.Style.Obfuscated = component.True
	default:
		p.template = component.NewText("")
		p.template.Style.Color = color
	}
}
