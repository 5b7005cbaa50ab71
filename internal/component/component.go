// Package component defines the rich chat message tree: styled text nodes,
// their click/hover events, and inherited style resolution.
package component

import (
	"fmt"
	"strings"
)

// Component is a styled text node. Children listed in Extra inherit this
// node's style unless they override it.
type Component struct {
	Text  string
	Style Style
	Extra []*Component

	// parent is a non-owning back-reference used only for style lookups.
	parent *Component
}

// NewText creates a text component with no formatting.
func NewText(text string) *Component {
	return &Component{Text: text}
}

// NewContainer creates a component with empty text whose only content is
// the given children.
func NewContainer(children ...*Component) *Component {
	c := &Component{}
	c.SetExtra(children)
	return c
}

// Parent returns the component this one was attached to, or nil.
func (c *Component) Parent() *Component {
	return c.parent
}

// AddExtra appends a child component and makes c its parent.
func (c *Component) AddExtra(child *Component) {
	child.parent = c
	c.Extra = append(c.Extra, child)
}

// AddText appends a plain text child.
func (c *Component) AddText(text string) {
	c.AddExtra(NewText(text))
}

// SetExtra replaces the children and makes c the parent of each of them.
func (c *Component) SetExtra(children []*Component) {
	for _, child := range children {
		child.parent = c
	}
	c.Extra = children
}

// Duplicate returns a detached copy of the text and raw style. Children
// are not copied.
func (c *Component) Duplicate() *Component {
	return &Component{
		Text:  c.Text,
		Style: c.Style,
	}
}

// HasFormatting returns true if any style field is set or an event is attached.
func (c *Component) HasFormatting() bool {
	return c.Style.HasFormatting()
}

// IsContainer returns true for the empty-text wrapper of a multi-part message.
func (c *Component) IsContainer() bool {
	return c.Text == "" && len(c.Extra) > 0
}

// Walk visits each tree pre-order. A node that is already on the path
// from its root is skipped with its children, so a cyclic tree ends.
// The same node may still appear under several parents.
func Walk(components []*Component, fn func(c *Component)) {
	onPath := make(map[*Component]struct{})
	var visit func(c *Component)
	visit = func(c *Component) {
		if c == nil {
			return
		}
		if _, ok := onPath[c]; ok {
			return
		}
		onPath[c] = struct{}{}
		defer delete(onPath, c)

		fn(c)
		for _, e := range c.Extra {
			visit(e)
		}
	}
	for _, c := range components {
		visit(c)
	}
}

// PlainText returns the text of the components and all their children
// with no formatting.
func PlainText(components ...*Component) string {
	var sb strings.Builder
	Walk(components, func(c *Component) {
		sb.WriteString(c.Text)
	})
	return sb.String()
}

func (c *Component) String() string {
	r := Resolve(c)
	return fmt.Sprintf("TextComponent{text=%s, color=%s, bold=%t, italic=%t, underlined=%t, strikethrough=%t, obfuscated=%t, clickEvent=%v, hoverEvent=%v, extra=%q}",
		c.Text, r.Color, r.Bold, r.Italic, r.Underlined, r.Strikethrough, r.Obfuscated,
		c.Style.Click, c.Style.Hover, PlainText(c.Extra...))
}
