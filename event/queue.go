package event

import (
	"sync/atomic"
)

const (
	QueueSize = 256
	queueMask = QueueSize - 1
)

// Queue is a lock-free MPSC ring buffer handing events from reader
// goroutines to the event loop
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Drain: Single consumer (event loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest events overwritten when full
type Queue struct {
	events    [QueueSize]Event
	published [QueueSize]atomic.Bool
	head      atomic.Uint64
	tail      atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push adds an event; safe for concurrent producers
func (q *Queue) Push(ev Event) {
	for {
		tail := q.tail.Load()
		next := tail + 1
		if q.tail.CompareAndSwap(tail, next) {
			idx := tail & queueMask
			q.events[idx] = ev
			q.published[idx].Store(true) // after write

			head := q.head.Load()
			if next-head > QueueSize {
				q.head.CompareAndSwap(head, next-QueueSize)
			}
			return
		}
	}
}

// Drain returns pending events in FIFO order. Single consumer.
func (q *Queue) Drain() []Event {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if tail == head {
			return nil
		}

		avail := tail - head
		if avail > QueueSize {
			avail = QueueSize
			head = tail - QueueSize
		}

		out := make([]Event, 0, avail)
		for i := uint64(0); i < avail; i++ {
			idx := (head + i) & queueMask
			if !q.published[idx].Load() {
				break // writer incomplete
			}
			out = append(out, q.events[idx])
			q.published[idx].Store(false)
		}

		if q.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns the approximate pending count
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	if d := int(tail - head); d < QueueSize {
		return d
	}
	return QueueSize
}

// DrainTo fires every pending event into h and returns how many ran
func (q *Queue) DrainTo(h *Hooks) int {
	evs := q.Drain()
	for _, ev := range evs {
		h.Fire(ev)
	}
	return len(evs)
}
