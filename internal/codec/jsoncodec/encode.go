// Package jsoncodec converts components to and from the JSON chat wire format.
package jsoncodec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roboco-io/chatcomp/internal/component"
)

// wireComponent is the object form of a component. Flag fields are
// pointers so that unset values are omitted rather than written as false.
type wireComponent struct {
	Text          string     `json:"text"`
	Color         string     `json:"color,omitempty"`
	Bold          *bool      `json:"bold,omitempty"`
	Italic        *bool      `json:"italic,omitempty"`
	Underlined    *bool      `json:"underlined,omitempty"`
	Strikethrough *bool      `json:"strikethrough,omitempty"`
	Obfuscated    *bool      `json:"obfuscated,omitempty"`
	Extra         []any      `json:"extra,omitempty"`
	ClickEvent    *wireClick `json:"clickEvent,omitempty"`
	HoverEvent    *wireHover `json:"hoverEvent,omitempty"`
}

type wireClick struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

type wireHover struct {
	Action string `json:"action"`
	Value  []any  `json:"value"`
}

// encoder tracks the components on the current recursion path. One
// encoder is created per top-level call.
type encoder struct {
	visiting map[*component.Component]struct{}
}

func newEncoder() *encoder {
	return &encoder{visiting: make(map[*component.Component]struct{})}
}

// Encode converts a component into its JSON value: a string for a plain
// text leaf, otherwise an object tree ready for encoding/json.
func Encode(c *component.Component) (any, error) {
	return newEncoder().encode(c)
}

// EncodeMessage converts a message into a single JSON value. Several
// components are wrapped in an empty-text container; the components
// themselves are not re-parented.
func EncodeMessage(components []*component.Component) (any, error) {
	e := newEncoder()
	if len(components) == 1 {
		return e.encode(components[0])
	}

	extra, err := e.encodeList(components)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return "", nil
	}
	return &wireComponent{Extra: extra}, nil
}

// Marshal encodes a single component.
func Marshal(c *component.Component) ([]byte, error) {
	v, err := Encode(c)
	if err != nil {
		return nil, err
	}
	return write(v, "")
}

// MarshalMessage encodes a message; see EncodeMessage.
func MarshalMessage(components []*component.Component) ([]byte, error) {
	v, err := EncodeMessage(components)
	if err != nil {
		return nil, err
	}
	return write(v, "")
}

// MarshalMessageIndent is like MarshalMessage but indents the output.
func MarshalMessageIndent(components []*component.Component, indent string) ([]byte, error) {
	v, err := EncodeMessage(components)
	if err != nil {
		return nil, err
	}
	return write(v, indent)
}

func write(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode component: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (e *encoder) encode(c *component.Component) (any, error) {
	if c == nil {
		return nil, errors.New("nil component")
	}
	if _, ok := e.visiting[c]; ok {
		return nil, fmt.Errorf("component %q: %w", c.Text, component.ErrCycleDetected)
	}
	e.visiting[c] = struct{}{}
	defer delete(e.visiting, c)

	if !c.HasFormatting() && len(c.Extra) == 0 {
		return c.Text, nil
	}

	w := &wireComponent{
		Text:          c.Text,
		Color:         string(c.Style.Color),
		Bold:          flag(c.Style.Bold),
		Italic:        flag(c.Style.Italic),
		Underlined:    flag(c.Style.Underlined),
		Strikethrough: flag(c.Style.Strikethrough),
		Obfuscated:    flag(c.Style.Obfuscated),
	}

	if len(c.Extra) > 0 {
		extra, err := e.encodeList(c.Extra)
		if err != nil {
			return nil, err
		}
		w.Extra = extra
	}

	if click := c.Style.Click; click != nil {
		w.ClickEvent = &wireClick{
			Action: click.Action.String(),
			Value:  click.Value,
		}
	}

	if hover := c.Style.Hover; hover != nil {
		value, err := e.encodeList(hover.Value)
		if err != nil {
			return nil, fmt.Errorf("hoverEvent: %w", err)
		}
		if value == nil {
			value = []any{}
		}
		w.HoverEvent = &wireHover{
			Action: hover.Action.String(),
			Value:  value,
		}
	}

	return w, nil
}

func (e *encoder) encodeList(components []*component.Component) ([]any, error) {
	if len(components) == 0 {
		return nil, nil
	}
	out := make([]any, 0, len(components))
	for _, c := range components {
		v, err := e.encode(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func flag(t component.Tristate) *bool {
	v, ok := t.Bool()
	if !ok {
		return nil
	}
	return &v
}
