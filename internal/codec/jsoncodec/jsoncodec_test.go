package jsoncodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/roboco-io/chatcomp/internal/component"
)

func styled(text string, fn func(s *component.Style)) *component.Component {
	c := component.NewText(text)
	fn(&c.Style)
	return c
}

func TestMarshal(t *testing.T) {
	tests := []struct {
		name string
		c    func() *component.Component
		want string
	}{
		{
			name: "plain text is compact",
			c:    func() *component.Component { return component.NewText("hi") },
			want: `"hi"`,
		},
		{
			name: "only set fields are emitted",
			c: func() *component.Component {
				return styled("hi", func(s *component.Style) {
					s.Color = component.ColorRed
					s.Bold = component.True
				})
			},
			want: `{"text":"hi","color":"red","bold":true}`,
		},
		{
			name: "explicit false is kept",
			c: func() *component.Component {
				return styled("x", func(s *component.Style) { s.Italic = component.False })
			},
			want: `{"text":"x","italic":false}`,
		},
		{
			name: "children force object form",
			c: func() *component.Component {
				c := component.NewText("a")
				c.AddText("b")
				return c
			},
			want: `{"text":"a","extra":["b"]}`,
		},
		{
			name: "click event",
			c: func() *component.Component {
				return styled("x", func(s *component.Style) {
					s.Click = component.NewClickEvent(component.OpenURL, "http://example.com")
				})
			},
			want: `{"text":"x","clickEvent":{"action":"open_url","value":"http://example.com"}}`,
		},
		{
			name: "hover text is a component array",
			c: func() *component.Component {
				return styled("x", func(s *component.Style) { s.Hover = component.NewHoverText("tip") })
			},
			want: `{"text":"x","hoverEvent":{"action":"show_text","value":["tip"]}}`,
		},
		{
			name: "html is not escaped",
			c:    func() *component.Component { return component.NewText("<a&b>") },
			want: `"<a&b>"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Marshal(tc.c())
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestMarshalMessage(t *testing.T) {
	a := component.NewText("a")
	b := styled("b", func(s *component.Style) { s.Underlined = component.True })

	got, err := MarshalMessage([]*component.Component{a, b})
	require.NoError(t, err)
	assert.Equal(t, `{"text":"","extra":["a",{"text":"b","underlined":true}]}`, string(got))
	assert.Nil(t, a.Parent(), "wrapping must not re-parent the caller's components")
	assert.Nil(t, b.Parent())

	single, err := MarshalMessage([]*component.Component{a})
	require.NoError(t, err)
	assert.Equal(t, `"a"`, string(single))

	empty, err := MarshalMessage(nil)
	require.NoError(t, err)
	assert.Equal(t, `""`, string(empty))
}

func TestMarshalMessageIndent(t *testing.T) {
	c := component.NewText("a")
	c.AddText("b")

	got, err := MarshalMessageIndent([]*component.Component{c}, "  ")
	require.NoError(t, err)
	assert.Contains(t, string(got), "\n  \"extra\"")
}

func TestMarshal_CycleDetected(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		a := component.NewText("a")
		a.Extra = append(a.Extra, a)

		_, err := Marshal(a)
		assert.ErrorIs(t, err, component.ErrCycleDetected)
	})

	t.Run("transitive", func(t *testing.T) {
		a := component.NewText("a")
		b := component.NewText("b")
		c := component.NewText("c")
		a.AddExtra(b)
		b.AddExtra(c)
		c.Extra = append(c.Extra, a)

		_, err := Marshal(a)
		assert.ErrorIs(t, err, component.ErrCycleDetected)
	})

	t.Run("through hover", func(t *testing.T) {
		a := component.NewText("a")
		a.Style.Hover = component.NewHoverEvent(component.ShowText, a)

		_, err := Marshal(a)
		assert.ErrorIs(t, err, component.ErrCycleDetected)
	})
}

func TestMarshal_SiblingReuseIsLegal(t *testing.T) {
	shared := styled("s", func(s *component.Style) { s.Bold = component.True })
	root := component.NewText("")
	root.Extra = []*component.Component{shared, shared}

	got, err := Marshal(root)
	require.NoError(t, err)
	assert.Equal(t, `{"text":"","extra":[{"text":"s","bold":true},{"text":"s","bold":true}]}`, string(got))
}

func TestUnmarshal_Primitives(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: `"hello"`, want: "hello"},
		{input: `42`, want: "42"},
		{input: `true`, want: "true"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Unmarshal([]byte(tc.input))
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tc.want, got[0].Text)
			assert.False(t, got[0].HasFormatting())
		})
	}
}

func TestUnmarshal_Malformed(t *testing.T) {
	inputs := []string{
		``,
		`{bad`,
		`null`,
		`{"text":"x","bold":"yes"}`,
		`{"text":"x","color":5}`,
		`{"text":"x","extra":"y"}`,
		`{"text":{"a":1}}`,
		`{"text":["a"]}`,
		`{"text":"x","clickEvent":"open_url"}`,
		`["a",null]`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Unmarshal([]byte(input))
			assert.ErrorIs(t, err, component.ErrMalformedJSON)
		})
	}
}

func TestUnmarshal_Object(t *testing.T) {
	input := `{
		"text": "root",
		"color": "GOLD",
		"bold": true,
		"italic": false,
		"future_key": {"ignored": true},
		"extra": ["one", {"text": "two", "strikethrough": true}],
		"clickEvent": {"action": "RUN_COMMAND", "value": "/spawn"},
		"hoverEvent": {"action": "show_text", "value": "tip"}
	}`

	got, err := Unmarshal([]byte(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	root := got[0]

	assert.Equal(t, "root", root.Text)
	assert.Equal(t, component.ColorGold, root.Style.Color)
	assert.Equal(t, component.True, root.Style.Bold)
	assert.Equal(t, component.False, root.Style.Italic)
	assert.Equal(t, component.Unset, root.Style.Underlined)

	require.Len(t, root.Extra, 2)
	assert.Equal(t, "one", root.Extra[0].Text)
	assert.Equal(t, "two", root.Extra[1].Text)
	assert.Same(t, root, root.Extra[0].Parent())
	assert.Same(t, root, root.Extra[1].Parent())
	assert.True(t, root.Extra[0].IsBold(), "children inherit after decode")
	assert.Equal(t, component.True, root.Extra[1].Style.Strikethrough)

	require.NotNil(t, root.Style.Click)
	assert.Equal(t, component.RunCommand, root.Style.Click.Action)
	assert.Equal(t, "/spawn", root.Style.Click.Value)

	require.NotNil(t, root.Style.Hover)
	assert.Equal(t, component.ShowText, root.Style.Hover.Action)
	require.Len(t, root.Style.Hover.Value, 1)
	assert.Equal(t, "tip", root.Style.Hover.Value[0].Text)
}

func TestUnmarshal_TextPrimitives(t *testing.T) {
	got, err := Unmarshal([]byte(`{"text":12,"extra":[{"text":true},{"text":null}]}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "12", got[0].Text)
	require.Len(t, got[0].Extra, 2)
	assert.Equal(t, "true", got[0].Extra[0].Text)
	assert.Equal(t, "", got[0].Extra[1].Text)
}

func TestUnmarshal_RepeatedExtraKeepsLast(t *testing.T) {
	got, err := Unmarshal([]byte(`{"text":"r","extra":["old"],"extra":["new"]}`))
	require.NoError(t, err)
	require.Len(t, got, 1)

	root := got[0]
	require.Len(t, root.Extra, 1)
	assert.Equal(t, "new", root.Extra[0].Text)
	assert.Same(t, root, root.Extra[0].Parent())
}

func TestUnmarshal_TopLevelArray(t *testing.T) {
	got, err := Unmarshal([]byte(`["a", {"text":"b"}, ["c", "d"]]`))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "b", got[1].Text)
	assert.True(t, got[2].IsContainer())
	assert.Equal(t, "cd", component.PlainText(got[2]))
}

func TestUnmarshalComponent(t *testing.T) {
	c, err := UnmarshalComponent([]byte(`["a","b"]`))
	require.NoError(t, err)
	assert.True(t, c.IsContainer())

	_, err = UnmarshalComponent([]byte(`[`))
	assert.ErrorIs(t, err, component.ErrMalformedJSON)
}

func TestDecodeClickEvent_UnknownAction(t *testing.T) {
	_, err := DecodeClickEvent(gjson.Parse(`{"action":"not_a_real_action","value":"x"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, component.ErrUnknownAction)

	_, err = Unmarshal([]byte(`{"text":"x","clickEvent":{"action":"not_a_real_action","value":"x"}}`))
	assert.ErrorIs(t, err, component.ErrUnknownAction)
}

func TestDecodeHoverEvent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		action   component.HoverAction
		wantText string
		wantLen  int
	}{
		{name: "single value", input: `{"action":"show_text","value":{"text":"tip","bold":true}}`, action: component.ShowText, wantText: "tip", wantLen: 1},
		{name: "array value", input: `{"action":"SHOW_TEXT","value":["a","b"]}`, action: component.ShowText, wantText: "ab", wantLen: 2},
		{name: "contents key", input: `{"action":"show_item","contents":"{id:stone}"}`, action: component.ShowItem, wantText: "{id:stone}", wantLen: 1},
		{name: "no payload", input: `{"action":"show_entity"}`, action: component.ShowEntity, wantText: "", wantLen: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			event, err := DecodeHoverEvent(gjson.Parse(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.action, event.Action)
			assert.Len(t, event.Value, tc.wantLen)
			assert.Equal(t, tc.wantText, component.PlainText(event.Value...))
		})
	}

	_, err := DecodeHoverEvent(gjson.Parse(`{"action":"show_achievement","value":"x"}`))
	assert.ErrorIs(t, err, component.ErrUnknownAction)
}

// assertSameEffective compares text, child ordering and effective style.
func assertSameEffective(t *testing.T, want, got *component.Component) {
	t.Helper()
	assert.Equal(t, want.Text, got.Text)
	assert.Equal(t, component.Resolve(want), component.Resolve(got), "effective style of %q", want.Text)
	require.Len(t, got.Extra, len(want.Extra))
	for i := range want.Extra {
		assertSameEffective(t, want.Extra[i], got.Extra[i])
	}
}

func TestRoundTrip(t *testing.T) {
	root := component.NewText("Hello ")
	root.Style.Color = component.ColorGreen
	root.Style.Bold = component.True

	world := component.NewText("World")
	world.Style.Bold = component.False
	world.Style.Click = component.NewClickEvent(component.SuggestCommand, "/msg ")
	root.AddExtra(world)

	bang := component.NewText("!")
	bang.Style.Obfuscated = component.True
	bang.Style.Hover = component.NewHoverText("surprise")
	world.AddExtra(bang)
	root.AddText(" tail")

	data, err := Marshal(root)
	require.NoError(t, err)

	got, err := UnmarshalComponent(data)
	require.NoError(t, err)

	assertSameEffective(t, root, got)
	assert.Equal(t, component.PlainText(root), component.PlainText(got))
	require.NotNil(t, got.Extra[0].Style.Click)
	assert.Equal(t, *world.Style.Click, *got.Extra[0].Style.Click)
	require.NotNil(t, got.Extra[0].Extra[0].Style.Hover)
	assert.Equal(t, "surprise", component.PlainText(got.Extra[0].Extra[0].Style.Hover.Value...))

	again, err := Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}
