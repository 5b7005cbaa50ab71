package jsoncodec

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/roboco-io/chatcomp/internal/component"
)

// Unmarshal decodes JSON into a message. A top-level array yields one
// component per element; any other value yields a single component.
func Unmarshal(data []byte) ([]*component.Component, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", component.ErrMalformedJSON)
	}

	root := gjson.ParseBytes(data)
	if root.IsArray() {
		return decodeList(root)
	}

	c, err := Decode(root)
	if err != nil {
		return nil, err
	}
	return []*component.Component{c}, nil
}

// UnmarshalComponent decodes JSON into exactly one component. A top-level
// array becomes an empty-text container.
func UnmarshalComponent(data []byte) (*component.Component, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", component.ErrMalformedJSON)
	}
	return Decode(gjson.ParseBytes(data))
}

// Decode converts a parsed JSON value into a component. Primitives become
// text components; unknown object keys are ignored.
func Decode(r gjson.Result) (*component.Component, error) {
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return component.NewText(r.String()), nil

	case gjson.JSON:
		if r.IsArray() {
			children, err := decodeList(r)
			if err != nil {
				return nil, err
			}
			return component.NewContainer(children...), nil
		}
		return decodeObject(r)

	default:
		return nil, fmt.Errorf("%w: null component", component.ErrMalformedJSON)
	}
}

func decodeList(r gjson.Result) ([]*component.Component, error) {
	var (
		out []*component.Component
		err error
	)
	i := 0
	r.ForEach(func(_, value gjson.Result) bool {
		var c *component.Component
		c, err = Decode(value)
		if err != nil {
			err = fmt.Errorf("[%d]: %w", i, err)
			return false
		}
		out = append(out, c)
		i++
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeObject(r gjson.Result) (*component.Component, error) {
	c := component.NewText("")

	var err error
	r.ForEach(func(key, value gjson.Result) bool {
		if err = decodeField(c, key.String(), value); err != nil {
			err = fmt.Errorf("%s: %w", key.String(), err)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func decodeField(c *component.Component, key string, value gjson.Result) error {
	switch key {
	case "text":
		if value.IsObject() || value.IsArray() {
			return fmt.Errorf("%w: text must be a string", component.ErrMalformedJSON)
		}
		c.Text = value.String()

	case "color":
		if value.Type != gjson.String {
			return fmt.Errorf("%w: color must be a string", component.ErrMalformedJSON)
		}
		c.Style.Color = component.ParseColor(value.String())

	case "bold":
		return setFlag(&c.Style, component.FieldBold, value)
	case "italic":
		return setFlag(&c.Style, component.FieldItalic, value)
	case "underlined":
		return setFlag(&c.Style, component.FieldUnderlined, value)
	case "strikethrough":
		return setFlag(&c.Style, component.FieldStrikethrough, value)
	case "obfuscated":
		return setFlag(&c.Style, component.FieldObfuscated, value)

	case "extra":
		if !value.IsArray() {
			return fmt.Errorf("%w: extra must be an array", component.ErrMalformedJSON)
		}
		children, err := decodeList(value)
		if err != nil {
			return err
		}
		// A repeated key replaces the earlier children.
		c.SetExtra(children)

	case "clickEvent":
		event, err := DecodeClickEvent(value)
		if err != nil {
			return err
		}
		c.Style.Click = event

	case "hoverEvent":
		event, err := DecodeHoverEvent(value)
		if err != nil {
			return err
		}
		c.Style.Hover = event
	}

	return nil
}

func setFlag(s *component.Style, f component.Field, value gjson.Result) error {
	switch value.Type {
	case gjson.True:
		s.SetField(f, component.True)
	case gjson.False:
		s.SetField(f, component.False)
	default:
		return fmt.Errorf("%w: %s must be a boolean", component.ErrMalformedJSON, f)
	}
	return nil
}

// DecodeClickEvent converts a clickEvent object. Unknown actions fail
// with component.ErrUnknownAction.
func DecodeClickEvent(r gjson.Result) (*component.ClickEvent, error) {
	if !r.IsObject() {
		return nil, fmt.Errorf("%w: event must be an object", component.ErrMalformedJSON)
	}
	action, err := component.ParseClickAction(r.Get("action").String())
	if err != nil {
		return nil, err
	}
	return component.NewClickEvent(action, r.Get("value").String()), nil
}

// DecodeHoverEvent converts a hoverEvent object. The payload may be a
// single component or an array.
func DecodeHoverEvent(r gjson.Result) (*component.HoverEvent, error) {
	if !r.IsObject() {
		return nil, fmt.Errorf("%w: event must be an object", component.ErrMalformedJSON)
	}
	action, err := component.ParseHoverAction(r.Get("action").String())
	if err != nil {
		return nil, err
	}

	payload := r.Get("value")
	if !payload.Exists() {
		payload = r.Get("contents")
	}

	event := component.NewHoverEvent(action)
	switch {
	case !payload.Exists():
	case payload.IsArray():
		value, err := decodeList(payload)
		if err != nil {
			return nil, err
		}
		event.Value = value
	default:
		c, err := Decode(payload)
		if err != nil {
			return nil, err
		}
		event.Value = []*component.Component{c}
	}
	return event, nil
}
