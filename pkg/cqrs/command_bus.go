package cqrs

import (
	"context"
)

// DefaultCommandBus is a simple implementation of the CommandBus interface.
type DefaultCommandBus struct {
	*Bus
}

// NewCommandBus creates a new DefaultCommandBus. The bus shuts itself down
// when ctx is cancelled.
func NewCommandBus(ctx context.Context) *DefaultCommandBus {
	b := &DefaultCommandBus{Bus: NewBus("command", 1)}
	b.watch(ctx)
	return b
}

// Dispatch sends a command to its appropriate handler.
func (b *DefaultCommandBus) Dispatch(ctx context.Context, cmd Command) error {
	_, err := b.call(ctx, cmd)
	return err
}
