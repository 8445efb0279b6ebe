// Package wal implements the write-ahead log that gives a node its
// crash-recovery durability.
//
// The log is a plain append-only text file with one record per line, either
// "PUT <key> <value>" or "REMOVE <key>". Every append is synchronously
// flushed to stable storage before the call returns; that flush is the
// durability boundary, a record only counts as durable once the append has
// returned.
//
// Replay reads the file from the start and applies the records to a store in
// file order, so the last write for a key wins. A truncated trailing record
// (fewer tokens than its operation requires, typically from a crash mid
// write) stops replay at that point instead of failing.
//
// There is no compaction and no record checksumming: the log grows without
// bound and replay cost is proportional to the total number of operations
// ever logged. This is an accepted scope limitation of the engine.
package wal
