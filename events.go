package sceneshift

import (
	"sync"

	"github.com/google/uuid"
)

// Event names broadcast by the Director as a transition progresses. Each fires exactly once per
// transition, after the corresponding hook (when present) has completed.
const (
	EventTeardownDone = "teardown-done" // The outgoing scene's Teardown hook has completed.
	EventSetupDone    = "setup-done"    // The incoming scene's Setup hook has completed.
	EventStartDone    = "start-done"    // The incoming scene's Start hook has completed.
)

// Event is the notification delivered to EventBus subscribers. TransitionID identifies which
// transition fired it, matching the ID the Director logs.
type Event struct {
	Name         string
	TransitionID string
}

// Subscription identifies a registered EventBus handler, for use with EventBus.Off.
type Subscription string

type subscriber struct {
	id Subscription
	fn func(Event)
}

// EventBus broadcasts transition progress events to zero or more subscribers. Delivery is
// synchronous and unbuffered: Emit calls each handler in registration order on the emitting
// goroutine (the transition pipeline's, for the Director's own events) and returns when the
// last one does. Handlers should be quick, or they'll stall the transition.
type EventBus struct {
	mu          sync.Mutex
	subscribers map[string][]subscriber
}

// NewEventBus creates a new, empty EventBus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: map[string][]subscriber{}}
}

// On registers fn to be called whenever an event with the given name is emitted, and returns a
// Subscription that can be passed to Off to unregister it.
func (bus *EventBus) On(name string, fn func(Event)) Subscription {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	id := Subscription(uuid.NewString())
	bus.subscribers[name] = append(bus.subscribers[name], subscriber{id: id, fn: fn})
	return id
}

// Off removes a previously registered handler. Unknown Subscriptions are ignored.
func (bus *EventBus) Off(sub Subscription) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for name, subs := range bus.subscribers {
		for i, s := range subs {
			if s.id == sub {
				bus.subscribers[name] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Emit broadcasts the event to all handlers registered for its name, in registration order.
func (bus *EventBus) Emit(event Event) {
	bus.mu.Lock()
	subs := append([]subscriber{}, bus.subscribers[event.Name]...)
	bus.mu.Unlock()
	for _, s := range subs {
		s.fn(event)
	}
}
