package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/roboco-io/chatcomp/internal/codec/ansi"
	"github.com/roboco-io/chatcomp/internal/codec/jsoncodec"
	"github.com/roboco-io/chatcomp/internal/codec/legacy"
)

// Provider names.
const (
	NameJSON    = "json"
	NameConsole = "console"
	NameLegacy  = "legacy"
)

// lineWriter serializes whole-line writes to a shared writer.
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lineWriter) writeLine(s string) error {
	if lw.w == nil {
		return ErrUnavailable
	}
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if _, err := io.WriteString(lw.w, s+"\n"); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// jsonEnvelope is the line format written by JSONProvider.
type jsonEnvelope struct {
	ID        string          `json:"id"`
	Recipient string          `json:"recipient,omitempty"`
	Position  Position        `json:"position"`
	Message   json.RawMessage `json:"message"`
}

// JSONProvider writes one JSON object per envelope, one per line.
type JSONProvider struct {
	out lineWriter
}

// NewJSONProvider creates a JSON provider writing to w.
func NewJSONProvider(w io.Writer) *JSONProvider {
	return &JSONProvider{out: lineWriter{w: w}}
}

// Name returns "json".
func (p *JSONProvider) Name() string { return NameJSON }

// Validate requires an output.
func (p *JSONProvider) Validate() error {
	if p.out.w == nil {
		return fmt.Errorf("no output configured: %w", ErrUnavailable)
	}
	return nil
}

// Send encodes the envelope and writes it as one line.
func (p *JSONProvider) Send(ctx context.Context, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := jsoncodec.MarshalMessage(env.Message)
	if err != nil {
		return err
	}
	line, err := json.Marshal(jsonEnvelope{
		ID:        env.ID.String(),
		Recipient: env.Recipient,
		Position:  env.Position,
		Message:   msg,
	})
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	return p.out.writeLine(string(line))
}

// fdWriter is an output backed by a file descriptor, such as *os.File.
type fdWriter interface {
	io.Writer
	Fd() uintptr
}

// ConsoleProvider renders messages with ANSI styling. It is only usable
// when its output is a terminal.
type ConsoleProvider struct {
	out        lineWriter
	renderer   *ansi.Renderer
	isTerminal func() bool
}

// NewConsoleProvider creates a console provider writing to w.
func NewConsoleProvider(w io.Writer, opts ...ansi.Option) *ConsoleProvider {
	p := &ConsoleProvider{
		out:        lineWriter{w: w},
		renderer:   ansi.New(w, opts...),
		isTerminal: func() bool { return false },
	}
	if f, ok := w.(fdWriter); ok {
		p.isTerminal = func() bool { return term.IsTerminal(int(f.Fd())) }
	}
	return p
}

// Name returns "console".
func (p *ConsoleProvider) Name() string { return NameConsole }

// Validate fails unless the output is a terminal.
func (p *ConsoleProvider) Validate() error {
	if !p.isTerminal() {
		return fmt.Errorf("output is not a terminal: %w", ErrUnavailable)
	}
	return nil
}

// Send renders the message for the terminal. Action bar messages are
// prefixed so they stand apart from chat.
func (p *ConsoleProvider) Send(ctx context.Context, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var sb strings.Builder
	if env.Recipient != "" {
		fmt.Fprintf(&sb, "[%s] ", env.Recipient)
	}
	if env.Position == PositionActionBar {
		sb.WriteString("» ")
	}
	sb.WriteString(p.renderer.Render(env.Message...))
	return p.out.writeLine(sb.String())
}

// LegacyProvider writes the legacy "§" rendering. It is always usable and
// serves as the fallback for every other provider.
type LegacyProvider struct {
	out lineWriter
}

// NewLegacyProvider creates a legacy provider writing to w.
func NewLegacyProvider(w io.Writer) *LegacyProvider {
	return &LegacyProvider{out: lineWriter{w: w}}
}

// Name returns "legacy".
func (p *LegacyProvider) Name() string { return NameLegacy }

// Validate requires an output.
func (p *LegacyProvider) Validate() error {
	if p.out.w == nil {
		return fmt.Errorf("no output configured: %w", ErrUnavailable)
	}
	return nil
}

// Send writes the legacy text of the message.
func (p *LegacyProvider) Send(ctx context.Context, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.out.writeLine(legacy.Marshal(env.Message...))
}

// NewDefaultRegistry registers the built-in providers, all writing to w.
func NewDefaultRegistry(w io.Writer, opts ...ansi.Option) *Registry {
	r := NewRegistry()
	r.MustRegister(
		NewConsoleProvider(w, opts...),
		NewJSONProvider(w),
		NewLegacyProvider(w),
	)
	return r
}
