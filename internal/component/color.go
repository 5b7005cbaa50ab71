package component

import "strings"

// Color is a lower-case chat color name. The empty Color means unset.
type Color string

const (
	ColorBlack       Color = "black"
	ColorDarkBlue    Color = "dark_blue"
	ColorDarkGreen   Color = "dark_green"
	ColorDarkAqua    Color = "dark_aqua"
	ColorDarkRed     Color = "dark_red"
	ColorDarkPurple  Color = "dark_purple"
	ColorGold        Color = "gold"
	ColorGray        Color = "gray"
	ColorDarkGray    Color = "dark_gray"
	ColorBlue        Color = "blue"
	ColorGreen       Color = "green"
	ColorAqua        Color = "aqua"
	ColorRed         Color = "red"
	ColorLightPurple Color = "light_purple"
	ColorYellow      Color = "yellow"
	ColorWhite       Color = "white"
)

type colorInfo struct {
	code rune
	hex  string
}

var colors = map[Color]colorInfo{
	ColorBlack:       {'0', "#000000"},
	ColorDarkBlue:    {'1', "#0000AA"},
	ColorDarkGreen:   {'2', "#00AA00"},
	ColorDarkAqua:    {'3', "#00AAAA"},
	ColorDarkRed:     {'4', "#AA0000"},
	ColorDarkPurple:  {'5', "#AA00AA"},
	ColorGold:        {'6', "#FFAA00"},
	ColorGray:        {'7', "#AAAAAA"},
	ColorDarkGray:    {'8', "#555555"},
	ColorBlue:        {'9', "#5555FF"},
	ColorGreen:       {'a', "#55FF55"},
	ColorAqua:        {'b', "#55FFFF"},
	ColorRed:         {'c', "#FF5555"},
	ColorLightPurple: {'d', "#FF55FF"},
	ColorYellow:      {'e', "#FFFF55"},
	ColorWhite:       {'f', "#FFFFFF"},
}

var colorsByCode = func() map[rune]Color {
	m := make(map[rune]Color, len(colors))
	for c, info := range colors {
		m[info.code] = c
	}
	return m
}()

// ParseColor normalizes a color name. Names outside the sixteen named
// colors are kept as-is; they simply have no legacy code.
func ParseColor(name string) Color {
	return Color(strings.ToLower(strings.TrimSpace(name)))
}

// ColorByCode returns the color for a legacy code character (0-9, a-f).
func ColorByCode(code rune) (Color, bool) {
	if code >= 'A' && code <= 'Z' {
		code += 'a' - 'A'
	}
	c, ok := colorsByCode[code]
	return c, ok
}

// Code returns the legacy code character for the color.
func (c Color) Code() (rune, bool) {
	info, ok := colors[c]
	return info.code, ok
}

// Hex returns the RGB value of a named color, or the name itself if it
// already is a hex literal. Unknown names return "".
func (c Color) Hex() string {
	if info, ok := colors[c]; ok {
		return info.hex
	}
	if strings.HasPrefix(string(c), "#") {
		return string(c)
	}
	return ""
}

// IsNamed returns true for the sixteen legacy colors.
func (c Color) IsNamed() bool {
	_, ok := colors[c]
	return ok
}
