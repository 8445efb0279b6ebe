// Package client implements the line-protocol client and the ring-routing
// coordinator that sits in front of a cluster of nodes.
//
// A Client speaks to exactly one node, one command per connection. The
// Coordinator owns a consistent-hashing ring over the configured member
// names and routes each key to the client of the owning node. Every process
// must be configured with the identical member list: the ring is a pure
// value derived from it, and divergent views route keys to different owners.
//
// Writes carry no acknowledgement on the wire, so a returned nil error for
// Put or Remove means the command was sent, not that it was applied.
package client
