// Package codec selects between the component wire formats.
package codec

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"

	"github.com/roboco-io/chatcomp/internal/codec/ansi"
	"github.com/roboco-io/chatcomp/internal/codec/jsoncodec"
	"github.com/roboco-io/chatcomp/internal/codec/legacy"
	"github.com/roboco-io/chatcomp/internal/component"
)

// Format represents a message format.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatLegacy
	FormatPlain
	FormatANSI // terminal output only
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatLegacy:
		return "legacy"
	case FormatPlain:
		return "plain"
	case FormatANSI:
		return "ansi"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name. "auto" and "" map to FormatUnknown.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto", "unknown":
		return FormatUnknown, nil
	case "json":
		return FormatJSON, nil
	case "legacy":
		return FormatLegacy, nil
	case "plain", "text":
		return FormatPlain, nil
	case "ansi":
		return FormatANSI, nil
	default:
		return FormatUnknown, fmt.Errorf("unknown format: %q", name)
	}
}

// DetectFormat guesses the format of raw message data. Data that looks
// like a JSON value is JSON, everything else is legacy text.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatLegacy
	}
	switch trimmed[0] {
	case '{', '[', '"':
		if gjson.ValidBytes(jsonc.ToJSON(trimmed)) {
			return FormatJSON
		}
	}
	return FormatLegacy
}

// Options contains codec configuration options.
type Options struct {
	ColorCodes   bool // Interpret "§" markers in legacy input
	AltColorChar rune // Stands in for "§" when ColorCodes is set; 0 disables
	Pretty       bool // Indent JSON output
	Hyperlinks   bool // Emit OSC 8 links in ANSI output
}

// DefaultOptions returns default codec options.
func DefaultOptions() Options {
	return Options{
		ColorCodes:   false,
		AltColorChar: 0,
		Pretty:       false,
		Hyperlinks:   true,
	}
}

func (o Options) legacy() legacy.Options {
	return legacy.Options{ColorCodes: o.ColorCodes}
}

// Decode parses data in the given format. FormatUnknown auto-detects.
// JSON input may carry comments and trailing commas. Legacy input is
// translated from AltColorChar only when ColorCodes is set.
func Decode(data []byte, format Format, opts Options) ([]*component.Component, error) {
	if format == FormatUnknown {
		format = DetectFormat(data)
	}

	switch format {
	case FormatJSON:
		return jsoncodec.Unmarshal(jsonc.ToJSON(data))
	case FormatLegacy:
		text := string(data)
		if opts.ColorCodes && opts.AltColorChar != 0 && opts.AltColorChar != legacy.ColorChar {
			text = legacy.TranslateAlternateColorCodes(opts.AltColorChar, text)
		}
		return legacy.Parse(text, opts.legacy()), nil
	case FormatPlain:
		return []*component.Component{component.NewText(string(data))}, nil
	default:
		return nil, fmt.Errorf("cannot decode %s input", format)
	}
}

// Encode renders components in the given format.
func Encode(components []*component.Component, format Format, opts Options) (string, error) {
	switch format {
	case FormatJSON:
		var (
			data []byte
			err  error
		)
		if opts.Pretty {
			data, err = jsoncodec.MarshalMessageIndent(components, "  ")
		} else {
			data, err = jsoncodec.MarshalMessage(components)
		}
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatLegacy:
		return legacy.Marshal(components...), nil
	case FormatPlain:
		return component.PlainText(components...), nil
	case FormatANSI:
		return ansi.New(io.Discard, ansi.WithProfile(termenv.TrueColor), ansi.WithHyperlinks(opts.Hyperlinks)).
			Render(components...), nil
	default:
		return "", fmt.Errorf("cannot encode %s output", format)
	}
}

// Write encodes components to w. ANSI output is styled for w's detected
// color profile.
func Write(w io.Writer, components []*component.Component, format Format, opts Options) error {
	var (
		out string
		err error
	)
	if format == FormatANSI {
		out = ansi.New(w, ansi.WithHyperlinks(opts.Hyperlinks)).Render(components...)
	} else if out, err = Encode(components, format, opts); err != nil {
		return err
	}
	if _, err := io.WriteString(w, out+"\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
