package legacy

import (
	"strings"

	"github.com/roboco-io/chatcomp/internal/component"
)

// Marshal renders components into a legacy string. Each node emits a
// marker for its effective color, markers for every effective flag, then
// its text, then its children in order. Output depends only on the
// resolved style, not on where a value was set. A node that contains
// itself is written once.
func Marshal(components ...*component.Component) string {
	var sb strings.Builder
	component.Walk(components, func(c *component.Component) {
		writeComponent(&sb, c)
	})
	return sb.String()
}

func writeComponent(sb *strings.Builder, c *component.Component) {
	r := component.Resolve(c)
	if code, ok := r.Color.Code(); ok {
		sb.WriteString(marker(code))
	}
	for _, fc := range fieldCodes {
		if r.Flag(fc.field) {
			sb.WriteString(marker(fc.code))
		}
	}
	sb.WriteString(c.Text)
}
