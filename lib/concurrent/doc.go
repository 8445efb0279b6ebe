// Package concurrent provides the two concurrency primitives underpinning
// the engine: a bounded lock-free single-producer/single-consumer queue and a
// fixed-size worker pool with deferred results.
//
// The two structures serve different concurrency shapes on purpose. The
// RingBuffer is lock-free but only correct for exactly one producer and one
// consumer; the WorkerPool is lock-based and serves any number of
// submitters. Neither should be bent into the other's shape: code that needs
// a multi-producer queue uses the pool's locked queue, not a widened ring
// buffer.
package concurrent
