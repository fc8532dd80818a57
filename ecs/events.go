package ecs

// EventType names a gameplay edge pushed by systems.
type EventType string

const (
	// EventJumped fires on the tick a jump is accepted.
	EventJumped EventType = "jumped"
	// EventLanded fires when the jump latch returns to Grounded.
	EventLanded EventType = "landed"
	// EventStopped fires once per transition into stillness.
	EventStopped EventType = "stopped"
	// EventJumpCanceled fires when a pending jump wait is abandoned.
	EventJumpCanceled EventType = "jump_canceled"
)

// Event is a generic ECS event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Pending returns a copy of the queued events without draining them.
func (q *EventQueue) Pending() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := make([]Event, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
