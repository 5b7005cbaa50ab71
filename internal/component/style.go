package component

// Style holds the raw, per-node style of a component. Unset fields are
// resolved against the parent chain; see Effective.
type Style struct {
	Color         Color
	Bold          Tristate
	Italic        Tristate
	Underlined    Tristate
	Strikethrough Tristate
	Obfuscated    Tristate

	Click *ClickEvent
	Hover *HoverEvent
}

// HasFormatting returns true if any style field is set or an event is attached.
func (s Style) HasFormatting() bool {
	return s.Color != "" ||
		s.Bold.IsSet() ||
		s.Italic.IsSet() ||
		s.Underlined.IsSet() ||
		s.Strikethrough.IsSet() ||
		s.Obfuscated.IsSet() ||
		s.Click != nil ||
		s.Hover != nil
}

// Field returns the raw value of a flag field.
func (s Style) Field(f Field) Tristate {
	switch f {
	case FieldBold:
		return s.Bold
	case FieldItalic:
		return s.Italic
	case FieldUnderlined:
		return s.Underlined
	case FieldStrikethrough:
		return s.Strikethrough
	case FieldObfuscated:
		return s.Obfuscated
	default:
		return Unset
	}
}

// SetField sets the raw value of a flag field.
func (s *Style) SetField(f Field, v Tristate) {
	switch f {
	case FieldBold:
		s.Bold = v
	case FieldItalic:
		s.Italic = v
	case FieldUnderlined:
		s.Underlined = v
	case FieldStrikethrough:
		s.Strikethrough = v
	case FieldObfuscated:
		s.Obfuscated = v
	}
}
