package sceneshift

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBusDeliversInRegistrationOrder(t *testing.T) {
	bus := NewEventBus()
	var order []string

	bus.On(EventSetupDone, func(Event) { order = append(order, "first") })
	bus.On(EventSetupDone, func(Event) { order = append(order, "second") })
	bus.On(EventStartDone, func(Event) { order = append(order, "other event") })

	bus.Emit(Event{Name: EventSetupDone, TransitionID: "t1"})

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEventBusPassesEventThrough(t *testing.T) {
	bus := NewEventBus()
	var received Event

	bus.On(EventTeardownDone, func(event Event) { received = event })
	bus.Emit(Event{Name: EventTeardownDone, TransitionID: "t42"})

	assert.Equal(t, EventTeardownDone, received.Name)
	assert.Equal(t, "t42", received.TransitionID)
}

func TestEventBusOff(t *testing.T) {
	bus := NewEventBus()
	calls := 0

	sub := bus.On(EventStartDone, func(Event) { calls++ })
	keep := 0
	bus.On(EventStartDone, func(Event) { keep++ })

	bus.Emit(Event{Name: EventStartDone})
	bus.Off(sub)
	bus.Emit(Event{Name: EventStartDone})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, keep)

	// Unknown subscriptions are ignored.
	bus.Off(Subscription("nope"))
}

func TestEventBusEmitWithNoSubscribers(t *testing.T) {
	bus := NewEventBus()
	bus.Emit(Event{Name: EventSetupDone}) // must not panic
}
