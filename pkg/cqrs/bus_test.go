package cqrs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type pingCommand struct{}

func (pingCommand) Name() string { return "Ping" }

type pingHandler struct {
	started chan struct{}
	release chan struct{}
	err     error
}

func (h *pingHandler) Handle(ctx context.Context, cmd pingCommand) error {
	if h.started != nil {
		close(h.started)
		<-h.release
	}
	return h.err
}

type countQuery struct{ N int }

func (countQuery) Name() string { return "Count" }

type countHandler struct{}

func (h *countHandler) Handle(ctx context.Context, q countQuery) (int, error) {
	return q.N * 2, nil
}

type noContextHandler struct{}

func (h *noContextHandler) Handle(cmd pingCommand) error { return nil }

func TestRegisterValidatesHandler(t *testing.T) {
	bus := NewCommandBus(context.Background())

	tests := []struct {
		name    string
		handler interface{}
	}{
		{"nil handler", nil},
		{"non-pointer handler", pingHandler{}},
		{"missing context", &noContextHandler{}},
		{"query handler on command bus", &countHandler{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := bus.Register(tt.handler); err == nil {
				t.Errorf("Register(%T) succeeded, want error", tt.handler)
			}
		})
	}

	if err := bus.Register(&pingHandler{}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := bus.Register(&pingHandler{}); err == nil {
		t.Error("second Register() for the same command succeeded, want error")
	}
}

func TestDispatchReturnsHandlerError(t *testing.T) {
	want := errors.New("upload failed")
	bus := NewCommandBus(context.Background())
	if err := bus.Register(&pingHandler{err: want}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := bus.Dispatch(context.Background(), pingCommand{}); !errors.Is(err, want) {
		t.Errorf("Dispatch() error = %v, want %v", err, want)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	bus := NewCommandBus(context.Background())
	if err := bus.Dispatch(context.Background(), pingCommand{}); err == nil {
		t.Error("Dispatch() without handler succeeded, want error")
	}
}

func TestQueryDispatch(t *testing.T) {
	bus := NewQueryBus(context.Background())
	if err := bus.Register(&countHandler{}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	got, err := DispatchAs[int](context.Background(), bus, countQuery{N: 21})
	if err != nil {
		t.Fatalf("DispatchAs() error = %v", err)
	}
	if got != 42 {
		t.Errorf("DispatchAs() = %d, want 42", got)
	}
	if _, err := DispatchAs[string](context.Background(), bus, countQuery{N: 1}); err == nil {
		t.Error("DispatchAs[string]() succeeded on an int result, want error")
	}
}

func TestShutdownDrainsActiveCommands(t *testing.T) {
	h := &pingHandler{started: make(chan struct{}), release: make(chan struct{})}
	bus := NewCommandBus(context.Background())
	if err := bus.Register(h); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := bus.Dispatch(context.Background(), pingCommand{}); err != nil {
			t.Errorf("in-flight Dispatch() error = %v", err)
		}
	}()
	<-h.started

	bus.Shutdown()
	if err := bus.Dispatch(context.Background(), pingCommand{}); !errors.Is(err, ErrBusShuttingDown) {
		t.Errorf("Dispatch() after Shutdown error = %v, want %v", err, ErrBusShuttingDown)
	}

	drained := make(chan struct{})
	go func() {
		bus.WaitForCompletion()
		close(drained)
	}()

	select {
	case <-drained:
		t.Fatal("WaitForCompletion() returned while a command was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(h.release)
	select {
	case <-drained:
	case <-time.After(time.Second):
		t.Fatal("WaitForCompletion() did not return after the command finished")
	}
	wg.Wait()
}

func TestContextCancellationShutsBusDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	bus := NewQueryBus(ctx)
	cancel()

	deadline := time.Now().Add(time.Second)
	for !bus.IsShuttingDown() {
		if time.Now().After(deadline) {
			t.Fatal("bus did not shut down after context cancellation")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
