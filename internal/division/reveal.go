package division

import "time"

// Reveal hands out a fixed sequence of steps one at a time so a renderer can
// show them on a timer. It is finite and can be restarted with Reset.
// A Reveal is not safe for concurrent use.
type Reveal[T any] struct {
	items    []T
	next     int
	interval time.Duration
}

// NewReveal returns a Reveal over items that schedules item i at i × interval.
func NewReveal[T any](items []T, interval time.Duration) *Reveal[T] {
	return &Reveal[T]{items: items, interval: interval}
}

// Next returns the next item and the delay, measured from the start of the
// reveal, at which it should appear. ok is false once every item was handed out.
func (r *Reveal[T]) Next() (item T, at time.Duration, ok bool) {
	if r.next >= len(r.items) {
		return item, 0, false
	}
	i := r.next
	r.next++
	return r.items[i], time.Duration(i) * r.interval, true
}

// Len is the total number of items.
func (r *Reveal[T]) Len() int { return len(r.items) }

// Reset rewinds to the first item.
func (r *Reveal[T]) Reset() { r.next = 0 }
