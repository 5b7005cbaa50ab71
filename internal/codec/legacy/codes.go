// Package legacy converts components to and from the flat legacy string
// format, where style is carried by in-band "§" + code markers.
package legacy

import (
	"strings"

	"github.com/roboco-io/chatcomp/internal/component"
)

// ColorChar starts every in-band marker.
const ColorChar = '§'

// Format codes.
const (
	CodeObfuscated    = 'k'
	CodeBold          = 'l'
	CodeStrikethrough = 'm'
	CodeUnderline     = 'n'
	CodeItalic        = 'o'
	CodeReset         = 'r'
)

// fieldCodes is in marker order: bold, italic, underline, strikethrough, obfuscated.
var fieldCodes = []struct {
	field component.Field
	code  rune
}{
	{component.FieldBold, CodeBold},
	{component.FieldItalic, CodeItalic},
	{component.FieldUnderlined, CodeUnderline},
	{component.FieldStrikethrough, CodeStrikethrough},
	{component.FieldObfuscated, CodeObfuscated},
}

const validCodes = "0123456789abcdefklmnor"

func isCode(r rune) bool {
	return strings.ContainsRune(validCodes, lower(r))
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}

func marker(code rune) string {
	return string([]rune{ColorChar, code})
}

// TranslateAlternateColorCodes rewrites alt followed by a valid code into
// the "§" marker, so that "&6gold" becomes "§6gold". Other occurrences of
// alt are left untouched.
func TranslateAlternateColorCodes(alt rune, s string) string {
	runes := []rune(s)
	for i := 0; i < len(runes)-1; i++ {
		if runes[i] == alt && isCode(runes[i+1]) {
			runes[i] = ColorChar
			runes[i+1] = lower(runes[i+1])
		}
	}
	return string(runes)
}

// StripCodes removes every "§" + code marker from s.
func StripCodes(s string) string {
	if !strings.ContainsRune(s, ColorChar) {
		return s
	}
	var sb strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == ColorChar && i+1 < len(runes) && isCode(runes[i+1]) {
			i++
			continue
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}
