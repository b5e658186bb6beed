package event

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription is a handle to a registered handler.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the subscribed topic pattern.
	Topic() Topic
}

type subscription struct {
	id       string
	pattern  Topic
	handler  Handler
	priority Priority
	seq      uint64
}

func (s *subscription) ID() string   { return s.id }
func (s *subscription) Topic() Topic { return s.pattern }

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*subscription)

// WithPriority sets the handler priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *subscription) {
		s.priority = p
	}
}

// Stats holds bus counters.
type Stats struct {
	EventsPublished  uint64
	HandlersExecuted uint64
	HandlerErrors    uint64
	HandlerPanics    uint64
}

// Bus delivers events synchronously to subscribers.
type Bus struct {
	mu   sync.RWMutex
	subs []*subscription
	seq  uint64

	eventsPublished  atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
	handlerPanics    atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers handler for topics matching pattern.
func (b *Bus) Subscribe(pattern Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	s := &subscription{
		id:       uuid.NewString(),
		pattern:  pattern,
		handler:  handler,
		priority: PriorityNormal,
		seq:      b.seq,
	}
	for _, opt := range opts {
		opt(s)
	}

	b.subs = append(b.subs, s)
	sort.SliceStable(b.subs, func(i, j int) bool {
		if b.subs[i].priority != b.subs[j].priority {
			return b.subs[i].priority < b.subs[j].priority
		}
		return b.subs[i].seq < b.subs[j].seq
	})
	return s, nil
}

// SubscribeFunc registers a function handler.
func (b *Bus) SubscribeFunc(pattern Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == sub.ID() {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers ev to every matching subscriber in priority order. The
// event must implement Topical. All handler errors are joined and returned;
// a failing handler does not stop delivery to the rest.
func (b *Bus) Publish(ctx context.Context, ev any) error {
	t, ok := ev.(Topical)
	if !ok || !t.EventTopic().IsValid() {
		return ErrInvalidTopic
	}
	topic := t.EventTopic()
	b.eventsPublished.Add(1)

	b.mu.RLock()
	targets := make([]*subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if topic.Matches(s.pattern) {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	var errs []error
	for _, s := range targets {
		if err := b.deliver(ctx, s, topic, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) deliver(ctx context.Context, s *subscription, topic Topic, ev any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			err = &PanicError{SubscriptionID: s.id, Topic: topic.String(), Value: r}
		}
	}()

	b.handlersExecuted.Add(1)
	if herr := s.handler.Handle(ctx, ev); herr != nil {
		b.handlerErrors.Add(1)
		return &HandlerError{SubscriptionID: s.id, Topic: topic.String(), Err: herr}
	}
	return nil
}

// SubscriberCount returns the number of subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsPublished:  b.eventsPublished.Load(),
		HandlersExecuted: b.handlersExecuted.Load(),
		HandlerErrors:    b.handlerErrors.Load(),
		HandlerPanics:    b.handlerPanics.Load(),
	}
}
