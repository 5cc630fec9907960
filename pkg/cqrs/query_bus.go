package cqrs

import (
	"context"
	"fmt"
)

// DefaultQueryBus is a simple implementation of the QueryBus interface.
type DefaultQueryBus struct {
	*Bus
}

// NewQueryBus creates a new DefaultQueryBus. The bus shuts itself down when
// ctx is cancelled.
func NewQueryBus(ctx context.Context) *DefaultQueryBus {
	b := &DefaultQueryBus{Bus: NewBus("query", 2)}
	b.watch(ctx)
	return b
}

// Dispatch sends a query to its appropriate handler and returns the result.
func (b *DefaultQueryBus) Dispatch(ctx context.Context, query Query) (interface{}, error) {
	results, err := b.call(ctx, query)
	if err != nil {
		return nil, err
	}
	return results[0].Interface(), nil
}

// DispatchAs dispatches query on b and asserts the result to R.
func DispatchAs[R any](ctx context.Context, b QueryBus, query Query) (R, error) {
	var zero R
	result, err := b.Dispatch(ctx, query)
	if err != nil {
		return zero, err
	}
	typed, ok := result.(R)
	if !ok {
		return zero, fmt.Errorf("query %s returned %T, want %T", query.Name(), result, zero)
	}
	return typed, nil
}
