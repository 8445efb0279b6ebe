package concurrent

import "sync/atomic"

// RingBuffer is a bounded lock-free single-producer single-consumer queue.
//
// Features and Guarantees:
//
//   - Lock-Free: head and tail are independent atomic counters, the producer
//     only writes head and the consumer only writes tail
//   - Bounded: Push never blocks, it fails when the buffer is full; Pop fails
//     when the buffer is empty
//   - SPSC only: exactly one goroutine may push and exactly one goroutine may
//     pop. Using more than one producer or more than one consumer
//     concurrently is a contract violation with undefined outcome - this
//     structure is not a general MPMC queue.
//
// The backing array holds capacity+1 slots so that a full buffer and an
// empty buffer are distinguishable without a separate counter: the buffer is
// empty when head == tail and full when advancing head would land on tail.
type RingBuffer[T any] struct {
	slots []T
	head  atomic.Uint64 // next slot the producer writes
	tail  atomic.Uint64 // next slot the consumer reads
}

// NewRingBuffer creates a ring buffer that holds up to capacity items.
// A capacity < 1 is raised to 1.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer[T]{
		slots: make([]T, capacity+1),
	}
}

// Capacity returns the maximum number of items the buffer can hold.
func (b *RingBuffer[T]) Capacity() int {
	return len(b.slots) - 1
}

// Push appends an item to the buffer. It returns false without blocking if
// the buffer is full.
//
// Thread-safety: may be called by the single producer goroutine only.
func (b *RingBuffer[T]) Push(item T) bool {
	n := uint64(len(b.slots))

	head := b.head.Load()
	nextHead := (head + 1) % n
	if nextHead == b.tail.Load() {
		return false // buffer is full
	}

	b.slots[head] = item

	// publish the slot: the store of head is the release point the consumer
	// synchronizes with
	b.head.Store(nextHead)
	return true
}

// Pop removes and returns the oldest item. The boolean return value is false
// if the buffer is empty.
//
// Thread-safety: may be called by the single consumer goroutine only.
func (b *RingBuffer[T]) Pop() (T, bool) {
	n := uint64(len(b.slots))

	tail := b.tail.Load()
	if tail == b.head.Load() {
		var zero T
		return zero, false // buffer is empty
	}

	item := b.slots[tail]

	// clear the slot so the buffer does not pin the item for the gc
	var zero T
	b.slots[tail] = zero

	b.tail.Store((tail + 1) % n)
	return item, true
}

// Len returns the current occupancy. Under concurrent use the result is a
// best-effort snapshot and may be stale by the time it is observed.
func (b *RingBuffer[T]) Len() int {
	n := uint64(len(b.slots))
	head := b.head.Load()
	tail := b.tail.Load()
	if head >= tail {
		return int(head - tail)
	}
	return int(n - (tail - head))
}
