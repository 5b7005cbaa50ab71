// Package config manages application configuration.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roboco-io/chatcomp/internal/codec"
	"github.com/roboco-io/chatcomp/internal/delivery"
)

// Config represents the application configuration.
type Config struct {
	Codec    CodecConfig              `yaml:"codec"`
	Delivery DeliveryConfig           `yaml:"delivery"`
	Log      LogConfig                `yaml:"log"`
	Messages map[string]codec.Message `yaml:"messages,omitempty"`
}

// CodecConfig contains message conversion options.
type CodecConfig struct {
	DefaultFormat string `yaml:"default_format" env:"CHATCOMP_FORMAT"         validate:"oneof=json legacy plain ansi"`
	ColorCodes    bool   `yaml:"color_codes"    env:"CHATCOMP_COLOR_CODES"`
	AltColorChar  string `yaml:"alt_color_char" env:"CHATCOMP_ALT_COLOR_CHAR" validate:"omitempty,len=1"`
	Pretty        bool   `yaml:"pretty"         env:"CHATCOMP_PRETTY"`
	Hyperlinks    bool   `yaml:"hyperlinks"     env:"CHATCOMP_HYPERLINKS"`
}

// DeliveryConfig selects how messages are sent.
type DeliveryConfig struct {
	Providers []string `yaml:"providers" env:"CHATCOMP_PROVIDERS" envSeparator:"," validate:"min=1,dive,provider_name"`
	Position  string   `yaml:"position"  env:"CHATCOMP_POSITION"  validate:"oneof=chat system action_bar"`
}

// LogConfig contains logging options.
type LogConfig struct {
	Level         string `yaml:"level"          env:"CHATCOMP_LOG_LEVEL" validate:"oneof=debug info warn error"`
	HumanReadable bool   `yaml:"human_readable" env:"CHATCOMP_LOG_HUMAN"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	welcome, _ := codec.ParseMessage("&6Welcome! &7Docs: example.com")
	return &Config{
		Codec: CodecConfig{
			DefaultFormat: "json",
			ColorCodes:    false,
			AltColorChar:  "&",
			Pretty:        false,
			Hyperlinks:    true,
		},
		Delivery: DeliveryConfig{
			Providers: []string{delivery.NameConsole, delivery.NameJSON, delivery.NameLegacy},
			Position:  "chat",
		},
		Log: LogConfig{
			Level:         "info",
			HumanReadable: true,
		},
		Messages: map[string]codec.Message{
			"welcome": welcome,
		},
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Message returns a named message.
func (c *Config) Message(name string) (codec.Message, bool) {
	m, ok := c.Messages[name]
	return m, ok
}

// CodecOptions returns the codec options described by the configuration.
func (c *Config) CodecOptions() codec.Options {
	opts := codec.DefaultOptions()
	opts.ColorCodes = c.Codec.ColorCodes
	opts.Pretty = c.Codec.Pretty
	opts.Hyperlinks = c.Codec.Hyperlinks
	for _, r := range c.Codec.AltColorChar {
		opts.AltColorChar = r
		break
	}
	return opts
}

// DefaultFormat returns the configured output format.
func (c *Config) DefaultFormat() codec.Format {
	f, err := codec.ParseFormat(c.Codec.DefaultFormat)
	if err != nil || f == codec.FormatUnknown {
		return codec.FormatJSON
	}
	return f
}

// Position returns the configured display position.
func (c *Config) Position() delivery.Position {
	p, err := delivery.ParsePosition(c.Delivery.Position)
	if err != nil {
		return delivery.PositionChat
	}
	return p
}

// SettableKeys lists the keys accepted by Set, besides "messages.<name>".
var SettableKeys = []string{
	"codec.default_format",
	"codec.color_codes",
	"codec.alt_color_char",
	"codec.pretty",
	"codec.hyperlinks",
	"delivery.providers",
	"delivery.position",
	"log.level",
	"log.human_readable",
}

// Set updates one key from its string form and validates the result. On
// error c is left unchanged.
func (c *Config) Set(key, value string) error {
	next := *c
	next.Delivery.Providers = append([]string(nil), c.Delivery.Providers...)
	next.Messages = make(map[string]codec.Message, len(c.Messages))
	for k, v := range c.Messages {
		next.Messages[k] = v
	}

	var err error
	switch key {
	case "codec.default_format":
		next.Codec.DefaultFormat = strings.ToLower(value)
	case "codec.color_codes":
		next.Codec.ColorCodes, err = strconv.ParseBool(value)
	case "codec.alt_color_char":
		next.Codec.AltColorChar = value
	case "codec.pretty":
		next.Codec.Pretty, err = strconv.ParseBool(value)
	case "codec.hyperlinks":
		next.Codec.Hyperlinks, err = strconv.ParseBool(value)
	case "delivery.providers":
		next.Delivery.Providers = splitList(value)
	case "delivery.position":
		next.Delivery.Position = strings.ToLower(value)
	case "log.level":
		next.Log.Level = strings.ToLower(value)
	case "log.human_readable":
		next.Log.HumanReadable, err = strconv.ParseBool(value)
	default:
		name, ok := strings.CutPrefix(key, "messages.")
		if !ok || name == "" {
			return fmt.Errorf("unknown config key: %s", key)
		}
		next.Messages[name], err = codec.ParseMessage(value)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
