package event

// EventQueue is a FIFO buffer of simulation events
// Single-threaded: producers and the consumer run inside the tick
//
// Two lanes share one sequence so Consume restores push order:
//   - lifecycle events grow without bound and are never dropped
//   - advisory events live in a fixed ring; the oldest is overwritten when full
type EventQueue struct {
	seq uint64

	lifecycle []queued

	ring  []queued
	head  int
	count int

	dropped uint64
}

type queued struct {
	seq uint64
	ev  GameEvent
}

// DefaultCapacity bounds the pending advisory events between two dispatches
const DefaultCapacity = 1024

// NewEventQueue creates a queue holding at most capacity pending advisory events
func NewEventQueue(capacity int) *EventQueue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &EventQueue{
		lifecycle: make([]queued, 0, 64),
		ring:      make([]queued, capacity),
	}
}

// Push appends an event; a full advisory ring drops its oldest entry
func (q *EventQueue) Push(ev GameEvent) {
	item := queued{seq: q.seq, ev: ev}
	q.seq++

	if ev.Type.Lifecycle() {
		q.lifecycle = append(q.lifecycle, item)
		return
	}

	if q.count == len(q.ring) {
		q.ring[q.head] = item
		q.head = (q.head + 1) % len(q.ring)
		q.dropped++
		return
	}
	q.ring[(q.head+q.count)%len(q.ring)] = item
	q.count++
}

// Consume returns all pending events in push order and empties the queue
// The returned slice is owned by the caller
func (q *EventQueue) Consume() []GameEvent {
	n := q.Len()
	if n == 0 {
		return nil
	}
	out := make([]GameEvent, 0, n)

	li, ri := 0, 0
	for li < len(q.lifecycle) || ri < q.count {
		if ri == q.count || (li < len(q.lifecycle) && q.lifecycle[li].seq < q.ring[(q.head+ri)%len(q.ring)].seq) {
			out = append(out, q.lifecycle[li].ev)
			li++
			continue
		}
		slot := (q.head + ri) % len(q.ring)
		out = append(out, q.ring[slot].ev)
		q.ring[slot] = queued{}
		ri++
	}

	clear(q.lifecycle)
	q.lifecycle = q.lifecycle[:0]
	q.head, q.count = 0, 0
	return out
}

// Len returns the pending event count
func (q *EventQueue) Len() int {
	return len(q.lifecycle) + q.count
}

// Dropped returns the number of advisory events lost to overflow
func (q *EventQueue) Dropped() uint64 {
	return q.dropped
}
