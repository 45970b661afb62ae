package events

import (
	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers
// Usage: bus.Publish(DeviceProbedEvent{...})
func (b *Bus) Publish(ev Event) {
	// kelindar/event is generic over the concrete type, so dispatch on it here
	switch e := ev.(type) {
	case ProbeStartedEvent:
		event.Publish(b.dispatcher, e)
	case DeviceProbedEvent:
		event.Publish(b.dispatcher, e)
	case ProbeFailedEvent:
		event.Publish(b.dispatcher, e)
	case SelectionCompletedEvent:
		event.Publish(b.dispatcher, e)
	case DeviceChangedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function
// The handler type determines which events it receives
// Returns an unsubscribe function
// Usage: unsub := bus.Subscribe(func(e SelectionCompletedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(ProbeStartedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DeviceProbedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ProbeFailedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(SelectionCompletedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(DeviceChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		// Return a no-op function if handler type is not recognized
		return func() {}
	}
}

// SubscribeToChannel forwards events of type T into ch. Events are dropped
// when ch is full so a slow reader never blocks publishers.
func SubscribeToChannel[T Event](b *Bus, ch chan<- any) func() {
	return event.Subscribe(b.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
		}
	})
}
