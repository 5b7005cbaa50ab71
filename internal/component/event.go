package component

import (
	"fmt"
	"strings"
)

// ClickAction is the behavior triggered when a component is clicked.
type ClickAction int

const (
	OpenURL ClickAction = iota
	OpenFile
	RunCommand
	SuggestCommand
)

var clickActionNames = map[ClickAction]string{
	OpenURL:        "open_url",
	OpenFile:       "open_file",
	RunCommand:     "run_command",
	SuggestCommand: "suggest_command",
}

// String returns the wire name of the action.
func (a ClickAction) String() string {
	if name, ok := clickActionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("click_action(%d)", int(a))
}

// ParseClickAction matches a wire name case-insensitively.
func ParseClickAction(name string) (ClickAction, error) {
	for action, n := range clickActionNames {
		if strings.EqualFold(n, name) {
			return action, nil
		}
	}
	return 0, fmt.Errorf("click action %q: %w", name, ErrUnknownAction)
}

// HoverAction is the tooltip shown when a component is hovered.
type HoverAction int

const (
	ShowText HoverAction = iota
	ShowItem
	ShowEntity
)

var hoverActionNames = map[HoverAction]string{
	ShowText:   "show_text",
	ShowItem:   "show_item",
	ShowEntity: "show_entity",
}

// String returns the wire name of the action.
func (a HoverAction) String() string {
	if name, ok := hoverActionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("hover_action(%d)", int(a))
}

// ParseHoverAction matches a wire name case-insensitively.
func ParseHoverAction(name string) (HoverAction, error) {
	for action, n := range hoverActionNames {
		if strings.EqualFold(n, name) {
			return action, nil
		}
	}
	return 0, fmt.Errorf("hover action %q: %w", name, ErrUnknownAction)
}

// ClickEvent is attached to a component and its children unless overridden.
type ClickEvent struct {
	Action ClickAction
	Value  string
}

// NewClickEvent creates a click event.
func NewClickEvent(action ClickAction, value string) *ClickEvent {
	return &ClickEvent{Action: action, Value: value}
}

func (e *ClickEvent) String() string {
	return fmt.Sprintf("ClickEvent{action=%s, value=%s}", e.Action, e.Value)
}

// HoverEvent carries a component list as its payload. Item and entity
// payloads travel as text components, the same as on the wire.
type HoverEvent struct {
	Action HoverAction
	Value  []*Component
}

// NewHoverEvent creates a hover event.
func NewHoverEvent(action HoverAction, value ...*Component) *HoverEvent {
	return &HoverEvent{Action: action, Value: value}
}

// NewHoverText creates a show_text hover event from plain text.
func NewHoverText(text string) *HoverEvent {
	return NewHoverEvent(ShowText, NewText(text))
}

func (e *HoverEvent) String() string {
	return fmt.Sprintf("HoverEvent{action=%s, value=%q}", e.Action, PlainText(e.Value...))
}
