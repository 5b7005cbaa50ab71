package codec

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roboco-io/chatcomp/internal/codec/jsoncodec"
	"github.com/roboco-io/chatcomp/internal/component"
)

// Message is a list of sibling components that implements the yaml and
// json interfaces, so messages can be declared in configuration files.
type Message []*component.Component

var (
	_ yaml.Marshaler   = Message(nil)
	_ yaml.Unmarshaler = (*Message)(nil)

	_ json.Marshaler   = Message(nil)
	_ json.Unmarshaler = (*Message)(nil)
)

// TextOptions are used for messages written as YAML scalars: color codes
// are on and '&' may stand in for '§'.
func TextOptions() Options {
	opts := DefaultOptions()
	opts.ColorCodes = true
	opts.AltColorChar = '&'
	return opts
}

// ParseMessage decodes s as JSON if it looks like JSON and as legacy text
// otherwise, using TextOptions.
func ParseMessage(s string) (Message, error) {
	components, err := Decode([]byte(s), FormatUnknown, TextOptions())
	if err != nil {
		return nil, err
	}
	return Message(components), nil
}

// Components returns the underlying components.
func (m Message) Components() []*component.Component {
	return m
}

// String returns the plain text of the message.
func (m Message) String() string {
	return component.PlainText(m...)
}

// MarshalYAML writes the message as a JSON string.
func (m Message) MarshalYAML() (any, error) {
	data, err := jsoncodec.MarshalMessage(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// UnmarshalYAML accepts a scalar holding JSON or legacy text, or a
// mapping or sequence written in the JSON component shape.
func (m *Message) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		parsed, err := ParseMessage(s)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*m = parsed
		return nil
	}

	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	components, err := jsoncodec.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = components
	return nil
}

// MarshalJSON encodes the message; see jsoncodec.MarshalMessage.
func (m Message) MarshalJSON() ([]byte, error) {
	return jsoncodec.MarshalMessage(m)
}

// UnmarshalJSON decodes a JSON component value.
func (m *Message) UnmarshalJSON(data []byte) error {
	components, err := jsoncodec.Unmarshal(data)
	if err != nil {
		return err
	}
	*m = components
	return nil
}
