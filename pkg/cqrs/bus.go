// Package cqrs implements the Command Query Responsibility Segregation pattern.
package cqrs

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrBusShuttingDown is returned when a message is dispatched to a bus that is shutting down.
var ErrBusShuttingDown = errors.New("bus is shutting down")

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()

// NameProvider is implemented by both Command and Query types.
type NameProvider interface {
	// Name returns the name of the message (command or query).
	Name() string
}

// ActionProvider defines the lifecycle shared by command and query buses.
type ActionProvider interface {
	// Register registers a handler for the message type accepted by its Handle method.
	Register(handler interface{}) error

	// Shutdown initiates a graceful shutdown of the bus.
	// New messages will be rejected, but existing messages will be allowed to complete.
	Shutdown()

	// WaitForCompletion waits for all active messages to complete.
	// This should be called after Shutdown to ensure all messages have finished processing.
	WaitForCompletion()
}

// Bus is a generic implementation that can be used by both command and query buses.
type Bus struct {
	handlers       map[string]reflect.Value
	mutex          sync.RWMutex
	isShuttingDown bool
	activeMessages sync.WaitGroup
	busType        string // "command" or "query"
	numOut         int
}

// NewBus creates a new Bus with the specified type. numOut is the number of
// values a Handle method must return.
func NewBus(busType string, numOut int) *Bus {
	return &Bus{
		handlers: make(map[string]reflect.Value),
		busType:  busType,
		numOut:   numOut,
	}
}

// watch shuts the bus down once ctx is cancelled.
func (b *Bus) watch(ctx context.Context) {
	if ctx == nil || ctx.Done() == nil {
		return
	}
	go func() {
		<-ctx.Done()
		b.Shutdown()
	}()
}

// Register registers a handler whose Handle method has the signature
// Handle(context.Context, M) followed by numOut results, the last being error.
func (b *Bus) Register(handler interface{}) error {
	handlerType := reflect.TypeOf(handler)
	if handlerType == nil || handlerType.Kind() != reflect.Ptr {
		return fmt.Errorf("handler must be a pointer to a struct, got %T", handler)
	}

	handleMethod, exists := handlerType.MethodByName("Handle")
	if !exists {
		return fmt.Errorf("handler %T does not implement Handle method", handler)
	}

	methodType := handleMethod.Type
	if methodType.NumIn() != 3 { // receiver + ctx + message
		return fmt.Errorf("Handle method of %T must accept (context.Context, %s)", handler, b.busType)
	}
	if methodType.In(1) != contextType {
		return fmt.Errorf("Handle method of %T must take context.Context as first parameter", handler)
	}
	if methodType.NumOut() != b.numOut {
		return fmt.Errorf("Handle method of %T must return %d values", handler, b.numOut)
	}
	if !methodType.Out(b.numOut - 1).Implements(reflect.TypeOf((*error)(nil)).Elem()) {
		return fmt.Errorf("Handle method of %T must return error as last value", handler)
	}

	msgType := methodType.In(2)
	msg, ok := reflect.Zero(msgType).Interface().(NameProvider)
	if !ok {
		return fmt.Errorf("parameter type %s does not implement the %s interface", msgType, b.busType)
	}
	name := msg.Name()

	b.mutex.Lock()
	defer b.mutex.Unlock()

	if _, exists := b.handlers[name]; exists {
		return fmt.Errorf("handler for %s %s already registered", b.busType, name)
	}
	b.handlers[name] = reflect.ValueOf(handler).MethodByName("Handle")
	return nil
}

// Shutdown initiates a graceful shutdown of the bus.
// New messages will be rejected, but existing messages will be allowed to complete.
func (b *Bus) Shutdown() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.isShuttingDown = true
}

// WaitForCompletion waits for all active messages to complete.
func (b *Bus) WaitForCompletion() {
	b.activeMessages.Wait()
}

// IsShuttingDown returns true if the bus is shutting down.
func (b *Bus) IsShuttingDown() bool {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return b.isShuttingDown
}

// call looks up the handler for msg and invokes it. The active counter is
// incremented under the read lock so that a concurrent Shutdown followed by
// WaitForCompletion always observes it.
func (b *Bus) call(ctx context.Context, msg NameProvider) ([]reflect.Value, error) {
	b.mutex.RLock()
	if b.isShuttingDown {
		b.mutex.RUnlock()
		return nil, ErrBusShuttingDown
	}
	handle, exists := b.handlers[msg.Name()]
	if !exists {
		b.mutex.RUnlock()
		return nil, fmt.Errorf("no handler registered for %s %s", b.busType, msg.Name())
	}
	b.activeMessages.Add(1)
	b.mutex.RUnlock()
	defer b.activeMessages.Done()

	if ctx == nil {
		ctx = context.Background()
	}
	results := handle.Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(msg)})

	if errVal := results[len(results)-1]; !errVal.IsNil() {
		return results, errVal.Interface().(error)
	}
	return results, nil
}
