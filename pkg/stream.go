package minipl

import "errors"

// errClosed signals that the consumer dropped the sink. Producers treat it
// as a request to stop, not as a failure.
var errClosed = errors.New("output stream closed")

// A Source yields values of type T one at a time. The second return is
// false once the source has permanently run out of values.
type Source[T any] interface {
	Take() (T, bool)
}

// A Sink accepts values of type T one at a time. Put returns false once
// the consumer has dropped the sink; a producer that observes false
// should stop producing.
type Sink[T any] interface {
	Put(v T) bool
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc[T any] func(v T) bool

func (f SinkFunc[T]) Put(v T) bool {
	return f(v)
}

// Buffer is an in-memory FIFO that is both a Source and a Sink. It is
// not safe for concurrent use; it exists for sequential staging, where
// one stage runs to completion before the next begins.
type Buffer[T any] struct {
	items []T
}

func NewBuffer[T any](items ...T) *Buffer[T] {
	return &Buffer[T]{items: items}
}

func (b *Buffer[T]) Put(v T) bool {
	b.items = append(b.items, v)
	return true
}

func (b *Buffer[T]) Take() (T, bool) {
	if len(b.items) == 0 {
		var zero T
		return zero, false
	}

	v := b.items[0]
	b.items = b.items[1:]

	return v, true
}

// Items returns the values currently held by the buffer, in order.
func (b *Buffer[T]) Items() []T {
	return b.items
}

// Queue is a bounded single-producer single-consumer queue backed by a
// channel. The producer blocks when the queue is full and calls Close
// when it has no more values; the consumer blocks when the queue is
// empty and may call Drop to cancel the producer early.
type Queue[T any] struct {
	ch   chan T
	done chan struct{}
}

func NewQueue[T any](size int) *Queue[T] {
	return &Queue[T]{
		ch:   make(chan T, size),
		done: make(chan struct{}),
	}
}

func (q *Queue[T]) Put(v T) bool {
	select {
	case q.ch <- v:
		return true
	case <-q.done:
		return false
	}
}

func (q *Queue[T]) Take() (T, bool) {
	select {
	case v, ok := <-q.ch:
		return v, ok
	case <-q.done:
		var zero T
		return zero, false
	}
}

// Close marks the end of the stream. Only the producer may call it, and
// only once.
func (q *Queue[T]) Close() {
	close(q.ch)
}

// Drop cancels the queue from the consumer side: pending and future Puts
// return false. Safe to call after the producer has closed the queue.
func (q *Queue[T]) Drop() {
	select {
	case <-q.done:
	default:
		close(q.done)
	}
}
