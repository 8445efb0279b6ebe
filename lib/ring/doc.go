// Package ring implements a consistent-hashing ring that maps keys to the
// names of the nodes owning them.
//
// Each physical node is represented by a configurable number of virtual
// replica points on the ring. This bounds the fraction of the keyspace that
// moves when a node is added or removed: only the keys owned by that node's
// own points change hands, never the whole keyspace.
//
// The ring is a pure value: lookups depend only on the current ring contents.
// Every participating process must receive its ring view from a single
// coordinator rather than building an independent copy, otherwise views can
// diverge silently.
package ring
