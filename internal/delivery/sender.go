package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/roboco-io/chatcomp/internal/component"
	"github.com/roboco-io/chatcomp/internal/logging"
)

// Sender delivers through a primary provider and falls back to a legacy
// provider when the primary fails.
type Sender struct {
	primary  Provider
	fallback Provider
	log      *logging.Logger
	metrics  *Metrics
}

// NewSender creates a Sender. fallback may be nil, in which case Send
// behaves like SendRaw.
func NewSender(primary, fallback Provider, log *logging.Logger) *Sender {
	return &Sender{primary: primary, fallback: fallback, log: log}
}

// NewSenderFromRegistry selects the primary from r in priority order and
// uses the registered legacy provider as fallback.
func NewSenderFromRegistry(r *Registry, priority []string, log *logging.Logger) (*Sender, error) {
	primary, err := r.Select(priority)
	if err != nil {
		return nil, err
	}
	var fallback Provider
	if p, err := r.Get(NameLegacy); err == nil && p != primary {
		fallback = p
	}
	log.Debug(fmt.Sprintf("selected delivery provider %q", primary.Name()))
	return NewSender(primary, fallback, log), nil
}

// WithMetrics makes the sender record outcomes in m.
func (s *Sender) WithMetrics(m *Metrics) *Sender {
	s.metrics = m
	return s
}

// Primary returns the selected provider.
func (s *Sender) Primary() Provider {
	return s.primary
}

// Send delivers env through the primary provider. On failure the error is
// logged and the message is delivered as legacy text instead. A cyclic
// message is never retried.
func (s *Sender) Send(ctx context.Context, env Envelope) error {
	err := s.SendRaw(ctx, env)
	if err == nil || s.fallback == nil || ctx.Err() != nil {
		return err
	}
	if errors.Is(err, component.ErrCycleDetected) {
		return err
	}

	s.log.WithFields(map[string]any{
		"provider":  s.primary.Name(),
		"envelope":  env.ID.String(),
		"recipient": env.Recipient,
	}).Warn(err, "structured delivery failed, sending legacy text")
	s.metrics.fallback()

	err = s.fallback.Send(ctx, env)
	s.metrics.observe(s.fallback.Name(), err)
	if err != nil {
		return fmt.Errorf("fallback %s: %w", s.fallback.Name(), err)
	}
	return nil
}

// SendRaw delivers env through the primary provider only.
func (s *Sender) SendRaw(ctx context.Context, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.primary == nil {
		return ErrNoProvider
	}
	err := s.primary.Send(ctx, env)
	s.metrics.observe(s.primary.Name(), err)
	if err != nil {
		return fmt.Errorf("%s: %w", s.primary.Name(), err)
	}
	return nil
}
