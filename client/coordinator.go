package client

import (
	"fmt"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/meshkv/meshkv/lib/ring"
	"github.com/meshkv/meshkv/server/common"
)

// Coordinator routes keys to the nodes owning them. It holds the ring built
// from the configured member names and a lazily populated cache of
// per-node clients.
type Coordinator struct {
	config  common.ClientConfig
	ring    *ring.Ring
	clients *xsync.MapOf[string, *Client]
}

// NewCoordinator builds a coordinator from the member list in config.
func NewCoordinator(config common.ClientConfig) (*Coordinator, error) {
	if len(config.Members) == 0 {
		return nil, fmt.Errorf("no cluster members configured")
	}

	r := ring.New(config.NumReplicas)
	for name := range config.Members {
		r.AddNode(name)
	}

	return &Coordinator{
		config:  config,
		ring:    r,
		clients: xsync.NewMapOf[string, *Client](),
	}, nil
}

// Owner returns the name and endpoint of the node owning the key.
func (c *Coordinator) Owner(key string) (name, endpoint string, err error) {
	name, ok := c.ring.GetNode(key)
	if !ok {
		return "", "", fmt.Errorf("hash ring is empty")
	}
	endpoint, ok = c.config.Members[name]
	if !ok {
		// the ring only ever contains configured members
		return "", "", fmt.Errorf("no endpoint for ring member %s", name)
	}
	return name, endpoint, nil
}

// clientFor returns the cached client for a node, creating it on first use.
func (c *Coordinator) clientFor(name, endpoint string) *Client {
	client, _ := c.clients.LoadOrCompute(name, func() *Client {
		return New(endpoint, time.Duration(c.config.TimeoutSecond)*time.Second)
	})
	return client
}

// --------------------------------------------------------------------------
// Routed Operations
// --------------------------------------------------------------------------

// Put routes the write to the owning node.
func (c *Coordinator) Put(key, value string) error {
	name, endpoint, err := c.Owner(key)
	if err != nil {
		return err
	}
	return c.clientFor(name, endpoint).Put(key, value)
}

// Get routes the lookup to the owning node.
func (c *Coordinator) Get(key string) (string, bool, error) {
	name, endpoint, err := c.Owner(key)
	if err != nil {
		return "", false, err
	}
	return c.clientFor(name, endpoint).Get(key)
}

// Remove routes the removal to the owning node.
func (c *Coordinator) Remove(key string) error {
	name, endpoint, err := c.Owner(key)
	if err != nil {
		return err
	}
	return c.clientFor(name, endpoint).Remove(key)
}
