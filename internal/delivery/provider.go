// Package delivery sends messages to recipients through a ranked list of
// providers, falling back to legacy text when structured delivery fails.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/roboco-io/chatcomp/internal/component"
)

var (
	// ErrUnavailable is returned by Validate when a provider cannot run in
	// the current environment.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrNoProvider is returned by Select when no candidate validates.
	ErrNoProvider = errors.New("no usable provider")
)

// Provider is the interface that all delivery providers must implement.
type Provider interface {
	// Name returns the provider identifier (e.g., "json", "console").
	Name() string

	// Send delivers one envelope.
	Send(ctx context.Context, env Envelope) error

	// Validate checks if the provider can be used.
	Validate() error
}

// Position is where a message is displayed on the client.
type Position byte

const (
	PositionChat      Position = 0
	PositionSystem    Position = 1
	PositionActionBar Position = 2
)

// String returns the string representation of the position.
func (p Position) String() string {
	switch p {
	case PositionChat:
		return "chat"
	case PositionSystem:
		return "system"
	case PositionActionBar:
		return "action_bar"
	default:
		return "unknown"
	}
}

// ParsePosition accepts a position name or its numeric wire value.
func ParsePosition(name string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "chat":
		return PositionChat, nil
	case "system":
		return PositionSystem, nil
	case "action_bar", "actionbar":
		return PositionActionBar, nil
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n <= int(PositionActionBar) {
		return Position(n), nil
	}
	return PositionChat, fmt.Errorf("unknown position: %q", name)
}

// Envelope is one message addressed to one recipient.
type Envelope struct {
	ID        uuid.UUID
	Recipient string
	Position  Position
	Message   []*component.Component
}

// NewEnvelope creates an envelope with a fresh ID.
func NewEnvelope(recipient string, position Position, message ...*component.Component) Envelope {
	return Envelope{
		ID:        uuid.New(),
		Recipient: recipient,
		Position:  position,
		Message:   message,
	}
}
