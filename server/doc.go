// Package server implements the node: one key-value store, one write-ahead
// log, a TCP listener speaking the line command protocol, and a best-effort
// replication path to an optional peer.
//
// A node owns its store and its WAL exclusively for its entire lifetime;
// nothing is shared across nodes except the content of a replication message
// travelling over the network. At construction the WAL is replayed into a
// fresh store before the listener starts, so the server never serves a
// request against state older than its own crash history.
//
// Each node runs exactly one listener goroutine, and every inbound
// connection is handled synchronously on that goroutine. Concurrent clients
// of one node are therefore served strictly sequentially; a slow client
// stalls all others on that node.
package server
