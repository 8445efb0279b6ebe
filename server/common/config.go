package common

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for one node. The identity
// fields (name, WAL path, endpoint) are immutable after construction.
type ServerConfig struct {
	// Node identity
	Name     string // human-readable node name, also its ring member name
	WALPath  string // path of the write-ahead log file
	Endpoint string // listen address in host:port form

	// Replication
	PeerEndpoint  string // optional peer in host:port form, empty = no replication
	ReplQueueSize int    // capacity of the replication queue (0 = default)

	// Logging configuration
	LogLevel string
}

// HasPeer reports whether a replication peer is configured.
func (c *ServerConfig) HasPeer() bool {
	return c.PeerEndpoint != ""
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Node Identity")
	addField("Name", c.Name)
	addField("Endpoint", c.Endpoint)
	addField("WAL Path", c.WALPath)

	addSection("Replication")
	if c.HasPeer() {
		addField("Peer", c.PeerEndpoint)
		addField("Queue Size", fmt.Sprintf("%d", c.ReplQueueSize))
	} else {
		addField("Peer", "(none)")
	}

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds the configuration of the line-protocol client and the
// ring-routing coordinator built on top of it.
type ClientConfig struct {
	// Members maps node names to host:port endpoints. The coordinator
	// builds its hash ring from the names, so every client must receive
	// the identical member list to agree on key ownership.
	Members map[string]string

	// NumReplicas is the virtual replica point count for the ring
	// (0 = ring default).
	NumReplicas int

	// TimeoutSecond bounds dial and read operations.
	TimeoutSecond int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Ring Replicas", fmt.Sprintf("%d", c.NumReplicas))

	addSection("Cluster Members")
	for name, endpoint := range c.Members {
		addField(name, endpoint)
	}

	return sb.String()
}
