package eventbus

import (
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"glasslabel-go/core/event"
)

// subscription represents a single event subscription.
type subscription struct {
	id      string
	handler EventHandler
	names   map[string]struct{} // nil means all events
}

func (s *subscription) accepts(e event.Event) bool {
	if s.names == nil {
		return true
	}
	_, ok := s.names[e.EventName()]
	return ok
}

// channelEventBus is a channel-based implementation of EventBus.
type channelEventBus struct {
	eventChan     chan event.Event
	subscriptions map[string]*subscription
	order         []string
	mu            sync.RWMutex
	wg            sync.WaitGroup
	nextID        atomic.Uint64
	logger        *slog.Logger

	// closeMu orders sends on eventChan before its close.
	closeMu sync.RWMutex
	closed  bool
}

// New creates a new EventBus with the specified buffer size.
func New(bufferSize int) EventBus {
	return NewWithLogger(bufferSize, nil)
}

// NewWithLogger creates a new EventBus that reports dropped events and handler panics to logger.
func NewWithLogger(bufferSize int, logger *slog.Logger) EventBus {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	if logger == nil {
		logger = slog.Default()
	}

	bus := &channelEventBus{
		eventChan:     make(chan event.Event, bufferSize),
		subscriptions: make(map[string]*subscription),
		logger:        logger,
	}

	bus.wg.Add(1)
	go bus.dispatch()

	return bus
}

// Publish publishes an event to all subscribers.
func (b *channelEventBus) Publish(e event.Event) {
	if e == nil {
		return
	}

	b.closeMu.RLock()
	defer b.closeMu.RUnlock()
	if b.closed {
		return
	}

	select {
	case b.eventChan <- e:
	default:
		b.logger.Warn("Event dropped, bus buffer full", "event", e.EventName())
	}
}

// Subscribe subscribes to all events.
func (b *channelEventBus) Subscribe(handler EventHandler) string {
	return b.subscribe(handler, nil)
}

// SubscribeNames subscribes to the named events only.
func (b *channelEventBus) SubscribeNames(handler EventHandler, names ...string) string {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return b.subscribe(handler, set)
}

func (b *channelEventBus) subscribe(handler EventHandler, names map[string]struct{}) string {
	id := "sub-" + strconv.FormatUint(b.nextID.Add(1), 10)

	b.mu.Lock()
	b.subscriptions[id] = &subscription{
		id:      id,
		handler: handler,
		names:   names,
	}
	b.order = append(b.order, id)
	b.mu.Unlock()

	return id
}

// Unsubscribe removes a subscription by its ID.
func (b *channelEventBus) Unsubscribe(subscriptionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscriptions[subscriptionID]; !ok {
		return
	}
	delete(b.subscriptions, subscriptionID)
	for i, id := range b.order {
		if id == subscriptionID {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Close shuts down the event bus.
func (b *channelEventBus) Close() {
	b.closeMu.Lock()
	if b.closed {
		b.closeMu.Unlock()
		return
	}
	b.closed = true
	close(b.eventChan)
	b.closeMu.Unlock()

	b.wg.Wait()
}

func (b *channelEventBus) dispatch() {
	defer b.wg.Done()

	for e := range b.eventChan {
		b.deliverEvent(e)
	}
}

// deliverEvent delivers an event to matching subscribers in subscription order.
func (b *channelEventBus) deliverEvent(e event.Event) {
	b.mu.RLock()
	subs := make([]*subscription, 0, len(b.order))
	for _, id := range b.order {
		if sub, ok := b.subscriptions[id]; ok && sub.accepts(e) {
			subs = append(subs, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("Event handler panicked", "event", e.EventName(), "subscription", sub.id, "panic", r)
				}
			}()
			sub.handler(e)
		}()
	}
}
