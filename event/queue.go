package event

import (
	"sync/atomic"

	"github.com/lixenwraith/ikrig/parameter"
)

type slot struct {
	ev    Event
	ready atomic.Bool // set after ev is written, cleared after it is drained
}

// EventQueue is a fixed ring of rig events
// Any goroutine may Push; only the rig update drains
// When writers lap the reader the oldest unread events are overwritten and counted
type EventQueue struct {
	slots       [parameter.EventQueueSize]slot
	head        atomic.Uint64 // next position to drain
	tail        atomic.Uint64 // next position to claim
	overwritten atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push claims the next position and publishes ev into it
func (q *EventQueue) Push(ev Event) {
	pos := q.tail.Add(1) - 1
	s := &q.slots[pos&parameter.EventBufferMask]
	s.ev = ev
	s.ready.Store(true)

	// Oldest position still inside the ring after this write
	floor := pos + 1 - min(pos+1, parameter.EventQueueSize)
	for {
		head := q.head.Load()
		if head >= floor {
			return
		}
		if q.head.CompareAndSwap(head, floor) {
			q.overwritten.Add(floor - head)
			return
		}
	}
}

// Drain appends pending events to dst in FIFO order and returns it
// Stops early at a slot whose writer has not finished; the rest is picked up by the next Drain
func (q *EventQueue) Drain(dst []Event) []Event {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail-head > parameter.EventQueueSize {
		head = tail - parameter.EventQueueSize
	}

	for ; head < tail; head++ {
		s := &q.slots[head&parameter.EventBufferMask]
		if !s.ready.Load() {
			break
		}
		dst = append(dst, s.ev)
		s.ev = Event{}
		s.ready.Store(false)
	}

	// A lapping writer may have moved head further already
	for {
		cur := q.head.Load()
		if cur >= head || q.head.CompareAndSwap(cur, head) {
			return dst
		}
	}
}

// Len returns the approximate pending event count
func (q *EventQueue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, parameter.EventQueueSize))
}

// Overwritten returns how many events were lost to overflow since creation
func (q *EventQueue) Overwritten() uint64 {
	return q.overwritten.Load()
}
