package objctest

import "github.com/wippyai/cocoa-bridge/objc"

// EventType identifies an object lifecycle event.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventDeallocated
	EventAutoreleased
	EventPoolDrained
)

func (t EventType) String() string {
	switch t {
	case EventAllocated:
		return "allocated"
	case EventDeallocated:
		return "deallocated"
	case EventAutoreleased:
		return "autoreleased"
	case EventPoolDrained:
		return "pool-drained"
	}
	return "unknown"
}

// Event is one object lifecycle notification.
type Event struct {
	Class  string
	Handle objc.Handle
	Type   EventType
}

// Observer receives object lifecycle events.
type Observer interface {
	OnObjectEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnObjectEvent(e Event) { f(e) }

// Subscribe adds an observer for lifecycle events.
func (rt *Runtime) Subscribe(o Observer) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.observers = append(rt.observers, o)
}

func (rt *Runtime) notify(e Event) {
	rt.mu.Lock()
	observers := append([]Observer(nil), rt.observers...)
	rt.mu.Unlock()
	for _, o := range observers {
		o.OnObjectEvent(e)
	}
}
