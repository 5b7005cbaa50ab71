package legacy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboco-io/chatcomp/internal/component"
)

func TestMarshal(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		assert.Equal(t, "hello", Marshal(component.NewText("hello")))
	})

	t.Run("color then flags in order", func(t *testing.T) {
		c := component.NewText("x")
		c.Style.Obfuscated = component.True
		c.Style.Bold = component.True
		c.Style.Underlined = component.True
		c.Style.Italic = component.True
		c.Style.Strikethrough = component.True
		c.Style.Color = component.ColorRed
		assert.Equal(t, "§c§l§o§n§m§kx", Marshal(c))
	})

	t.Run("children inherit", func(t *testing.T) {
		root := component.NewText("Hi ")
		root.Style.Color = component.ColorRed
		root.Style.Bold = component.True
		root.AddText("there")
		assert.Equal(t, "§c§lHi §c§lthere", Marshal(root))
	})

	t.Run("explicit false overrides", func(t *testing.T) {
		root := component.NewText("a")
		root.Style.Italic = component.True
		child := component.NewText("b")
		child.Style.Italic = component.False
		root.AddExtra(child)
		assert.Equal(t, "§oab", Marshal(root))
	})

	t.Run("unknown color has no marker", func(t *testing.T) {
		c := component.NewText("a")
		c.Style.Color = component.Color("#123456")
		assert.Equal(t, "a", Marshal(c))
	})

	t.Run("top-level nodes are concatenated", func(t *testing.T) {
		a := component.NewText("a")
		b := component.NewText("b")
		b.Style.Color = component.ColorGold
		assert.Equal(t, "a§6b", Marshal(a, b))
		assert.Equal(t, "", Marshal())
	})
}

func TestMarshal_DependsOnlyOnEffectiveStyle(t *testing.T) {
	inherited := component.NewText("a")
	inherited.Style.Bold = component.True
	inherited.Style.Color = component.ColorBlue
	inherited.AddText("b")

	explicit := component.NewText("a")
	explicit.Style.Bold = component.True
	explicit.Style.Color = component.ColorBlue
	child := component.NewText("b")
	child.Style.Bold = component.True
	child.Style.Color = component.ColorBlue
	explicit.AddExtra(child)

	flat := component.NewBuilder("a").Color(component.ColorBlue).Bold(true).
		Append("b").Color(component.ColorBlue).Bold(true).Build()

	want := "§9§la§9§lb"
	assert.Equal(t, want, Marshal(inherited))
	assert.Equal(t, want, Marshal(explicit))
	assert.Equal(t, want, Marshal(flat...))
}

func texts(cs []*component.Component) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Text
	}
	return out
}

func TestParse_URLAutolink(t *testing.T) {
	got := Parse("see http://example.com/page for info", DefaultOptions())

	require.Equal(t, []string{"see ", "http://example.com/page", " for info"}, texts(got))
	assert.Nil(t, got[0].Style.Click)
	require.NotNil(t, got[1].Style.Click)
	assert.Equal(t, component.OpenURL, got[1].Style.Click.Action)
	assert.Equal(t, "http://example.com/page", got[1].Style.Click.Value)
	assert.Nil(t, got[2].Style.Click)
}

func TestParse_SchemeAdded(t *testing.T) {
	got := Parse("visit example.com now", DefaultOptions())

	require.Equal(t, []string{"visit ", "example.com", " now"}, texts(got))
	require.NotNil(t, got[1].Style.Click)
	assert.Equal(t, "http://example.com", got[1].Style.Click.Value)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
		links []string
	}{
		{name: "plain", input: "hello world", want: []string{"hello world"}},
		{name: "url only", input: "https://go.dev", want: []string{"https://go.dev"}, links: []string{"https://go.dev"}},
		{name: "url at end", input: "go to www.example.org", want: []string{"go to ", "www.example.org"}, links: []string{"http://www.example.org"}},
		{name: "two urls", input: "ab.com cd.net", want: []string{"ab.com", " ", "cd.net"}, links: []string{"http://ab.com", "http://cd.net"}},
		{name: "single letter domain", input: "a.com", want: []string{"a.com"}},
		{name: "tld too long", input: "hello.world", want: []string{"hello.world"}},
		{name: "multibyte preserved", input: "héllo ünïcode", want: []string{"héllo ünïcode"}},
		{name: "markers are text by default", input: "§6gold", want: []string{"§6gold"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.input, DefaultOptions())
			assert.Equal(t, tc.want, texts(got))

			var links []string
			for _, c := range got {
				if c.Style.Click != nil {
					links = append(links, c.Style.Click.Value)
				}
			}
			assert.Equal(t, tc.links, links)
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	got := Parse("", DefaultOptions())

	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Text)
	assert.False(t, got[0].HasFormatting())
}

func TestParse_URLDoesNotLeakIntoFollowingText(t *testing.T) {
	got := Parse("§lbold example.com after", Options{ColorCodes: true})

	require.Equal(t, []string{"bold ", "example.com", " after"}, texts(got))
	for _, c := range got {
		assert.Equal(t, component.True, c.Style.Bold, c.Text)
	}
	assert.NotNil(t, got[1].Style.Click)
	assert.Nil(t, got[2].Style.Click)
}

func TestParse_ColorCodes(t *testing.T) {
	opts := Options{ColorCodes: true}

	t.Run("color then format", func(t *testing.T) {
		got := Parse("§6Gold §Lbold", opts)
		require.Equal(t, []string{"Gold ", "bold"}, texts(got))
		assert.Equal(t, component.ColorGold, got[0].Style.Color)
		assert.Equal(t, component.Unset, got[0].Style.Bold)
		assert.Equal(t, component.ColorGold, got[1].Style.Color)
		assert.Equal(t, component.True, got[1].Style.Bold)
	})

	t.Run("color resets formats", func(t *testing.T) {
		got := Parse("§oa§cb", opts)
		require.Equal(t, []string{"a", "b"}, texts(got))
		assert.Equal(t, component.True, got[0].Style.Italic)
		assert.Equal(t, component.Unset, got[1].Style.Italic)
		assert.Equal(t, component.ColorRed, got[1].Style.Color)
	})

	t.Run("reset is white", func(t *testing.T) {
		got := Parse("§la§rb", opts)
		require.Len(t, got, 2)
		assert.Equal(t, component.ColorWhite, got[1].Style.Color)
		assert.Equal(t, component.Unset, got[1].Style.Bold)
	})

	t.Run("unknown code dropped", func(t *testing.T) {
		got := Parse("§zfoo", opts)
		assert.Equal(t, []string{"foo"}, texts(got))
	})

	t.Run("trailing marker dropped", func(t *testing.T) {
		got := Parse("abc§", opts)
		assert.Equal(t, []string{"abc"}, texts(got))
	})

	t.Run("only markers", func(t *testing.T) {
		got := Parse("§c§l", opts)
		require.Len(t, got, 1)
		assert.Equal(t, "", got[0].Text)
	})
}

func TestParse_MarshalRoundTrip(t *testing.T) {
	msg := component.NewBuilder("Hello ").Color(component.ColorGreen).
		Append("World").Color(component.ColorRed).Bold(true).Build()

	legacyText := Marshal(msg...)
	assert.Equal(t, "§aHello §c§lWorld", legacyText)

	got := Parse(legacyText, Options{ColorCodes: true})
	assert.Equal(t, legacyText, Marshal(got...))
}

func TestTranslateAlternateColorCodes(t *testing.T) {
	assert.Equal(t, "§6gold §lbold", TranslateAlternateColorCodes('&', "&6gold &Lbold"))
	assert.Equal(t, "fish & chips &z", TranslateAlternateColorCodes('&', "fish & chips &z"))
	assert.Equal(t, "trailing &", TranslateAlternateColorCodes('&', "trailing &"))
}

func TestStripCodes(t *testing.T) {
	assert.Equal(t, "gold bold", StripCodes("§6gold §lbold"))
	assert.Equal(t, "§zkeep", StripCodes("§zkeep"))
	assert.Equal(t, "plain", StripCodes("plain"))
}

func TestMarshal_CyclicTreeTerminates(t *testing.T) {
	a := component.NewText("a")
	a.Style.Bold = component.True
	b := component.NewText("b")
	a.AddExtra(b)
	b.AddExtra(a)

	done := make(chan string, 1)
	go func() { done <- Marshal(a) }()

	select {
	case got := <-done:
		assert.Equal(t, "§la§lb", got)
	case <-time.After(2 * time.Second):
		t.Fatal("Marshal did not return for a cyclic tree")
	}
}
