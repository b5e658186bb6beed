package event

import (
	"errors"
	"fmt"
)

// Errors returned by the bus.
var (
	ErrInvalidTopic         = errors.New("invalid topic")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrHandlerPanic         = errors.New("subscriber panicked")
	ErrNilHandler           = errors.New("nil subscriber")
)

// HandlerError is a subscriber's returned error tagged with where it
// was delivered.
type HandlerError struct {
	SubscriptionID string
	Topic          string
	Err            error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s (subscription %s): %v", e.Topic, e.SubscriptionID, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// PanicError records a recovered subscriber panic. It matches
// ErrHandlerPanic under errors.Is.
type PanicError struct {
	SubscriptionID string
	Topic          string
	Value          any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s (subscription %s): panic: %v", e.Topic, e.SubscriptionID, e.Value)
}

func (e *PanicError) Is(target error) bool { return target == ErrHandlerPanic }
