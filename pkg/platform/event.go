package platform

import (
	"fmt"
	"sync"
)

// EventKind is the closed set of events a host can report.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventExitRequested
	EventResize
	EventKey
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventExitRequested:
		return "exit-requested"
	case EventResize:
		return "resize"
	case EventKey:
		return "key"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is a host notification. Width and Height are set for EventResize
// (in framebuffer pixels) and Key for EventKey.
type Event struct {
	Kind   EventKind
	Width  int
	Height int
	Key    string
}

// Handler reacts to one event.
type Handler func(Event)

// Dispatcher maps event kinds to handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[EventKind][]Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventKind][]Handler)}
}

// Bind adds h for kind. Handlers run in the order they were bound.
func (d *Dispatcher) Bind(kind EventKind, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = append(d.handlers[kind], h)
}

// Unbind removes every handler for kind.
func (d *Dispatcher) Unbind(kind EventKind) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.handlers, kind)
}

// Dispatch calls the handlers bound to ev.Kind and reports whether there
// were any. EventNone is never delivered.
func (d *Dispatcher) Dispatch(ev Event) bool {
	if ev.Kind == EventNone {
		return false
	}
	d.mu.RLock()
	hs := d.handlers[ev.Kind]
	d.mu.RUnlock()

	for _, h := range hs {
		h(ev)
	}
	return len(hs) > 0
}
