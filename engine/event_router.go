package engine

import "github.com/lixenwraith/ikrig/event"

// EventHandler processes specific event types
// Systems implement this interface to receive routed events; observers (audio, CLI) do too
type EventHandler interface {
	// HandleEvent processes a single event
	// Called synchronously during dispatch, before and after the system pass
	HandleEvent(ev event.Event)

	// EventTypes returns the event types this handler processes
	EventTypes() []event.EventType
}

// EventRouter dispatches queued events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch on the rig update thread
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
type EventRouter struct {
	handlers map[event.EventType][]EventHandler
	queue    *event.EventQueue
}

// NewEventRouter creates a router attached to the given queue
func NewEventRouter(queue *event.EventQueue) *EventRouter {
	return &EventRouter{
		handlers: make(map[event.EventType][]EventHandler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *EventRouter) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes pending events in FIFO order
// Events raised by handlers during dispatch are delivered in the same call
func (r *EventRouter) DispatchAll() {
	var batch []event.Event
	for {
		batch = r.queue.Drain(batch[:0])
		if len(batch) == 0 {
			return
		}
		for _, ev := range batch {
			for _, h := range r.handlers[ev.Type] {
				h.HandleEvent(ev)
			}
		}
	}
}

// HandlerCount returns the number of handlers registered for the given type
func (r *EventRouter) HandlerCount(t event.EventType) int {
	return len(r.handlers[t])
}
