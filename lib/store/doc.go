// Package store provides the in-memory key-value store owned by a node.
//
// All operations on a store are linearizable at whole-map granularity: one
// exclusive section covers a single Put, Get or Remove, so a concurrent read
// can never observe a value that was not actually stored for that key, nor a
// partially written one.
//
// Entries are plain string pairs. There is no versioning, no timestamp and no
// TTL; the last write for a key wins.
package store
