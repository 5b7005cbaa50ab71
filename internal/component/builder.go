package component

// Builder assembles a message as an ordered list of sibling components.
// Style calls apply to the current part, which is the last one appended
// with NewBuilder or Append.
type Builder struct {
	parts   []*Component
	current *Component
}

// NewBuilder creates a builder whose first part is the given text.
func NewBuilder(text string) *Builder {
	b := &Builder{}
	return b.Append(text)
}

// Append adds a plain text part and makes it current. The new part has
// none of the formatting of the previous part.
func (b *Builder) Append(text string) *Builder {
	c := NewText(text)
	b.parts = append(b.parts, c)
	b.current = c
	return b
}

// AddAll appends pre-built components. The current part does not change.
func (b *Builder) AddAll(components ...*Component) *Builder {
	b.parts = append(b.parts, components...)
	return b
}

// Color sets the color of the current part.
func (b *Builder) Color(color Color) *Builder {
	b.current.Style.Color = color
	return b
}

// Bold sets whether the current part is bold.
func (b *Builder) Bold(bold bool) *Builder {
	b.current.Style.Bold = TristateOf(bold)
	return b
}

// Italic sets whether the current part is italic.
func (b *Builder) Italic(italic bool) *Builder {
	b.current.Style.Italic = TristateOf(italic)
	return b
}

// Underlined sets whether the current part is underlined.
func (b *Builder) Underlined(underlined bool) *Builder {
	b.current.Style.Underlined = TristateOf(underlined)
	return b
}

// Strikethrough sets whether the current part is struck through.
func (b *Builder) Strikethrough(strikethrough bool) *Builder {
	b.current.Style.Strikethrough = TristateOf(strikethrough)
	return b
}

// Obfuscated sets whether the current part is obfuscated.
func (b *Builder) Obfuscated(obfuscated bool) *Builder {
	b.current.Style.Obfuscated = TristateOf(obfuscated)
	return b
}

// Click sets the click event of the current part.
func (b *Builder) Click(event *ClickEvent) *Builder {
	b.current.Style.Click = event
	return b
}

// Hover sets the hover event of the current part.
func (b *Builder) Hover(event *HoverEvent) *Builder {
	b.current.Style.Hover = event
	return b
}

// Current returns the part style calls apply to.
func (b *Builder) Current() *Component {
	return b.current
}

// Build returns the parts in order.
func (b *Builder) Build() []*Component {
	out := make([]*Component, len(b.parts))
	copy(out, b.parts)
	return out
}
