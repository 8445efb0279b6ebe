package client

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/lni/dragonboat/v4/logger"

	"github.com/meshkv/meshkv/server/common"
)

var Logger = logger.GetLogger("client")

const defaultTimeout = 10 * time.Second

// Client talks the line protocol to a single node. Each command opens a
// fresh connection, sends one line and closes; the protocol has no
// pipelining and no persistent connections.
type Client struct {
	endpoint string
	timeout  time.Duration
}

// New creates a client for the node at endpoint (host:port).
// A timeout <= 0 selects the default of 10 seconds.
func New(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{endpoint: endpoint, timeout: timeout}
}

// Endpoint returns the node address this client talks to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// --------------------------------------------------------------------------
// Commands
// --------------------------------------------------------------------------

// Put sends a PUT. The protocol sends no response for writes, so a nil
// error only confirms the command left this process.
func (c *Client) Put(key, value string) error {
	return c.send(common.FormatPut(key, value))
}

// Remove sends a REMOVE. Like Put it is unacknowledged on the wire.
func (c *Client) Remove(key string) error {
	return c.send(common.FormatRemove(key))
}

// Get sends a GET and parses the response line. The boolean return value is
// false when the node answered NOT_FOUND.
func (c *Client) Get(key string) (string, bool, error) {
	conn, err := c.dial()
	if err != nil {
		return "", false, err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(common.FormatGet(key))); err != nil {
		return "", false, fmt.Errorf("failed to send GET to %s: %w", c.endpoint, err)
	}

	resp, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return "", false, fmt.Errorf("failed to read GET response from %s: %w", c.endpoint, err)
	}
	resp = strings.TrimSuffix(resp, "\n")

	switch {
	case resp == common.RespNotFound:
		return "", false, nil
	case strings.HasPrefix(resp, common.RespValue+" "):
		return strings.TrimPrefix(resp, common.RespValue+" "), true, nil
	default:
		return "", false, fmt.Errorf("unexpected response from %s: %q", c.endpoint, resp)
	}
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func (c *Client) dial() (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", c.endpoint, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", c.endpoint, err)
	}
	_ = conn.SetDeadline(time.Now().Add(c.timeout))
	return conn, nil
}

// send writes one command line and drains the connection until the node
// closes it, so the write is actually flushed out before we return.
func (c *Client) send(line string) error {
	conn, err := c.dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(line)); err != nil {
		return fmt.Errorf("failed to send command to %s: %w", c.endpoint, err)
	}

	// the node closes after one command; observing EOF confirms it read us
	_, err = io.Copy(io.Discard, conn)
	if err != nil {
		Logger.Debugf("drain after write to %s: %v", c.endpoint, err)
	}
	return nil
}
