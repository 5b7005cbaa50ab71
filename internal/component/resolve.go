package component

// Field names one of the inheritable flag attributes.
type Field int

const (
	FieldBold Field = iota
	FieldItalic
	FieldUnderlined
	FieldStrikethrough
	FieldObfuscated
)

// Fields lists the flag attributes in legacy marker order.
var Fields = []Field{FieldBold, FieldItalic, FieldUnderlined, FieldStrikethrough, FieldObfuscated}

// String returns the wire name of the field.
func (f Field) String() string {
	switch f {
	case FieldBold:
		return "bold"
	case FieldItalic:
		return "italic"
	case FieldUnderlined:
		return "underlined"
	case FieldStrikethrough:
		return "strikethrough"
	case FieldObfuscated:
		return "obfuscated"
	default:
		return "unknown"
	}
}

// ancestors calls fn for c and then each parent until fn returns true.
// A parent chain that loops back on itself is walked around once.
func ancestors(c *Component, fn func(n *Component) bool) {
	slow := c
	for n, i := c, 0; n != nil; i++ {
		if fn(n) {
			return
		}
		n = n.parent
		if i%2 == 1 {
			slow = slow.parent
		}
		if n != nil && n == slow {
			return
		}
	}
}

// Effective resolves a flag by walking from c up through its parents.
// The first explicitly set value wins; the root default is false.
// Nothing is cached, so the result reflects the tree as it is now.
func Effective(c *Component, f Field) bool {
	var v bool
	ancestors(c, func(n *Component) bool {
		var ok bool
		v, ok = n.Style.Field(f).Bool()
		return ok
	})
	return v
}

// EffectiveColor resolves the color the same way as Effective. The root
// default is the empty Color.
func EffectiveColor(c *Component) Color {
	var color Color
	ancestors(c, func(n *Component) bool {
		color = n.Style.Color
		return color != ""
	})
	return color
}

// IsBold reports the effective bold flag.
func (c *Component) IsBold() bool { return Effective(c, FieldBold) }

// IsItalic reports the effective italic flag.
func (c *Component) IsItalic() bool { return Effective(c, FieldItalic) }

// IsUnderlined reports the effective underlined flag.
func (c *Component) IsUnderlined() bool { return Effective(c, FieldUnderlined) }

// IsStrikethrough reports the effective strikethrough flag.
func (c *Component) IsStrikethrough() bool { return Effective(c, FieldStrikethrough) }

// IsObfuscated reports the effective obfuscated flag.
func (c *Component) IsObfuscated() bool { return Effective(c, FieldObfuscated) }

// EffectiveColor reports the effective color.
func (c *Component) EffectiveColor() Color { return EffectiveColor(c) }

// Resolved is a snapshot of every effective style value of one component.
type Resolved struct {
	Color         Color
	Bold          bool
	Italic        bool
	Underlined    bool
	Strikethrough bool
	Obfuscated    bool
}

// Resolve returns the effective style of c.
func Resolve(c *Component) Resolved {
	return Resolved{
		Color:         EffectiveColor(c),
		Bold:          Effective(c, FieldBold),
		Italic:        Effective(c, FieldItalic),
		Underlined:    Effective(c, FieldUnderlined),
		Strikethrough: Effective(c, FieldStrikethrough),
		Obfuscated:    Effective(c, FieldObfuscated),
	}
}

// Flag returns the resolved value of a flag field.
func (r Resolved) Flag(f Field) bool {
	switch f {
	case FieldBold:
		return r.Bold
	case FieldItalic:
		return r.Italic
	case FieldUnderlined:
		return r.Underlined
	case FieldStrikethrough:
		return r.Strikethrough
	case FieldObfuscated:
		return r.Obfuscated
	default:
		return false
	}
}
