package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is how long a path must stay quiet before its
// coalesced event is delivered.
const DefaultDebounceDelay = 100 * time.Millisecond

// Debouncer coalesces bursts of events per path from an underlying
// Watcher. Editors commonly emit several writes for one save.
type Debouncer struct {
	mu sync.Mutex

	inner   Watcher
	delay   time.Duration
	pending map[string]*pendingEvent

	events  chan Event
	closeCh chan struct{}
	wg      sync.WaitGroup
	closed  bool
}

type pendingEvent struct {
	event Event
	timer *time.Timer
}

// NewDebouncer wraps inner. A non-positive delay uses DefaultDebounceDelay.
func NewDebouncer(inner Watcher, delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	d := &Debouncer{
		inner:   inner,
		delay:   delay,
		pending: make(map[string]*pendingEvent),
		events:  make(chan Event, 100),
		closeCh: make(chan struct{}),
	}
	d.wg.Add(1)
	go d.loop()
	return d
}

// Watch starts watching path.
func (d *Debouncer) Watch(path string) error { return d.inner.Watch(path) }

// Unwatch stops watching path.
func (d *Debouncer) Unwatch(path string) error { return d.inner.Unwatch(path) }

// Events returns the coalesced events.
func (d *Debouncer) Events() <-chan Event { return d.events }

// Errors returns the underlying watcher's errors.
func (d *Debouncer) Errors() <-chan error { return d.inner.Errors() }

// Close stops pending timers and closes the underlying watcher.
func (d *Debouncer) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	for path, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, path)
	}
	close(d.closeCh)
	d.mu.Unlock()

	err := d.inner.Close()
	d.wg.Wait()
	close(d.events)
	return err
}

func (d *Debouncer) loop() {
	defer d.wg.Done()
	for {
		select {
		case <-d.closeCh:
			return
		case ev, ok := <-d.inner.Events():
			if !ok {
				return
			}
			d.add(ev)
		}
	}
}

func (d *Debouncer) add(ev Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	if p, ok := d.pending[ev.Path]; ok {
		p.event.Op |= ev.Op
		p.event.Time = ev.Time
		p.timer.Reset(d.delay)
		return
	}
	p := &pendingEvent{event: ev}
	p.timer = time.AfterFunc(d.delay, func() { d.fire(ev.Path) })
	d.pending[ev.Path] = p
}

func (d *Debouncer) fire(path string) {
	d.mu.Lock()
	p, ok := d.pending[path]
	if !ok || d.closed {
		d.mu.Unlock()
		return
	}
	delete(d.pending, path)
	// Holding the lock while sending keeps Close from closing the channel
	// underneath us.
	select {
	case d.events <- p.event:
	default:
	}
	d.mu.Unlock()
}

var _ Watcher = (*Debouncer)(nil)
