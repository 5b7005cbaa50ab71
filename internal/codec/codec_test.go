package codec

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roboco-io/chatcomp/internal/component"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected Format
	}{
		{name: "object", data: `{"text":"hi"}`, expected: FormatJSON},
		{name: "array", data: `["a","b"]`, expected: FormatJSON},
		{name: "string", data: `"hi"`, expected: FormatJSON},
		{name: "leading whitespace", data: "\n  {\"text\":\"hi\"}", expected: FormatJSON},
		{name: "jsonc comments", data: "{\"text\":\"hi\", // note\n}", expected: FormatJSON},
		{name: "legacy markers", data: "§6gold", expected: FormatLegacy},
		{name: "brace but invalid", data: "{not json", expected: FormatLegacy},
		{name: "bare number is text", data: "42", expected: FormatLegacy},
		{name: "empty", data: "", expected: FormatLegacy},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectFormat([]byte(tc.data)))
		})
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatJSON, "json"},
		{FormatLegacy, "legacy"},
		{FormatPlain, "plain"},
		{FormatANSI, "ansi"},
		{FormatUnknown, "unknown"},
		{Format(999), "unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, tc.format.String(), "Format(%d)", int(tc.format))
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatLegacy, FormatPlain, FormatANSI} {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseFormat(" AUTO ")
	require.NoError(t, err)
	assert.Equal(t, FormatUnknown, got)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	t.Run("auto json with trailing comma", func(t *testing.T) {
		got, err := Decode([]byte(`{"text":"hi","bold":true,}`), FormatUnknown, DefaultOptions())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].IsBold())
	})

	t.Run("auto legacy keeps markers by default", func(t *testing.T) {
		got, err := Decode([]byte("&6gold"), FormatUnknown, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "&6gold", component.PlainText(got...))
	})

	t.Run("alternate color char", func(t *testing.T) {
		opts := DefaultOptions()
		opts.ColorCodes = true
		opts.AltColorChar = '&'
		got, err := Decode([]byte("&6gold"), FormatLegacy, opts)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "gold", got[0].Text)
		assert.Equal(t, component.ColorGold, got[0].Style.Color)
	})

	t.Run("plain", func(t *testing.T) {
		got, err := Decode([]byte("§6 raw"), FormatPlain, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "§6 raw", got[0].Text)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := Decode([]byte(`{"text":1,"bold":"x"}`), FormatJSON, DefaultOptions())
		assert.ErrorIs(t, err, component.ErrMalformedJSON)
	})

	t.Run("ansi cannot be decoded", func(t *testing.T) {
		_, err := Decode([]byte("x"), FormatANSI, DefaultOptions())
		assert.Error(t, err)
	})
}

func TestEncode(t *testing.T) {
	msg := component.NewBuilder("Hi ").Color(component.ColorRed).
		Append("there").Bold(true).Build()

	tests := []struct {
		format   Format
		expected string
	}{
		{FormatJSON, `{"text":"","extra":[{"text":"Hi ","color":"red"},{"text":"there","bold":true}]}`},
		{FormatLegacy, "§cHi §lthere"},
		{FormatPlain, "Hi there"},
	}

	for _, tc := range tests {
		t.Run(tc.format.String(), func(t *testing.T) {
			got, err := Encode(msg, tc.format, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	t.Run("ansi", func(t *testing.T) {
		got, err := Encode(msg, FormatANSI, DefaultOptions())
		require.NoError(t, err)
		assert.Contains(t, got, "\x1b[")
		assert.Contains(t, got, "there")
	})

	t.Run("pretty json", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Pretty = true
		got, err := Encode(msg, FormatJSON, opts)
		require.NoError(t, err)
		assert.Contains(t, got, "\n  ")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Encode(msg, FormatUnknown, DefaultOptions())
		assert.Error(t, err)
	})
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []*component.Component{component.NewText("hi")}, FormatPlain, DefaultOptions()))
	assert.Equal(t, "hi\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, []*component.Component{component.NewText("hi")}, FormatANSI, DefaultOptions()))
	assert.Equal(t, "hi\n", buf.String())
}

func TestMessage_YAML(t *testing.T) {
	input := `
legacy: "&6Welcome! see example.com"
json: '{"text":"hi","italic":true}'
structured:
  text: root
  color: aqua
  extra:
    - child
    - text: bold
      bold: true
`
	var doc map[string]Message
	require.NoError(t, yaml.Unmarshal([]byte(input), &doc))

	welcome := doc["legacy"]
	assert.Equal(t, "Welcome! see example.com", welcome.String())
	assert.Equal(t, component.ColorGold, welcome[0].Style.Color)
	require.NotNil(t, welcome[len(welcome)-1].Style.Click)
	assert.Equal(t, "http://example.com", welcome[len(welcome)-1].Style.Click.Value)

	require.Len(t, doc["json"], 1)
	assert.True(t, doc["json"][0].IsItalic())

	structured := doc["structured"]
	require.Len(t, structured, 1)
	assert.Equal(t, "rootchildbold", structured.String())
	assert.Equal(t, component.ColorAqua, structured[0].Extra[0].EffectiveColor())
	assert.True(t, structured[0].Extra[1].IsBold())

	out, err := yaml.Marshal(map[string]Message{"m": doc["json"]})
	require.NoError(t, err)
	assert.Contains(t, string(out), `{"text":"hi","italic":true}`)
}

func TestMessage_YAMLError(t *testing.T) {
	var m Message
	err := yaml.Unmarshal([]byte(`{text: x, bold: "yes"}`), &m)
	assert.ErrorIs(t, err, component.ErrMalformedJSON)
}

func TestMessage_JSON(t *testing.T) {
	var wrapper struct {
		Msg Message `json:"msg"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"msg":{"text":"a","extra":["b"]}}`), &wrapper))
	assert.Equal(t, "ab", wrapper.Msg.String())

	out, err := json.Marshal(wrapper)
	require.NoError(t, err)
	assert.JSONEq(t, `{"msg":{"text":"a","extra":["b"]}}`, string(out))
}
