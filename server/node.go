package server

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"

	"github.com/meshkv/meshkv/lib/store"
	"github.com/meshkv/meshkv/lib/wal"
	"github.com/meshkv/meshkv/server/common"
)

var Logger = logger.GetLogger("server")

// --------------------------------------------------------------------------
// Node State
// --------------------------------------------------------------------------

// State captures the node lifecycle:
// Stopped -> Starting (bind+listen) -> Running (accept loop) ->
// Stopping (signal+unblock) -> Stopped.
type State int32

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Node
// --------------------------------------------------------------------------

// Node is one storage engine instance: store, WAL, listener and replicator.
type Node struct {
	config common.ServerConfig

	dataStore store.IStore
	log       *wal.WAL

	listener net.Listener
	state    atomic.Int32
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	repl *replicator

	// metrics
	cmdPut     *metrics.Counter
	cmdRemove  *metrics.Counter
	cmdGet     *metrics.Counter
	cmdDropped *metrics.Counter
}

// NewNode creates a node and brings it to the running state: it opens the
// WAL, replays it into a fresh store, binds the listener and starts the
// accept loop. A WAL open failure or a bind/listen failure is fatal, a node
// cannot meaningfully exist without either, so the error is returned and
// nothing is left running.
//
// The factory selects the store engine; a nil factory selects the map store.
func NewNode(config common.ServerConfig, factory store.Factory) (*Node, error) {
	if factory == nil {
		factory = store.NewMapStore
	}

	n := &Node{
		config:     config,
		dataStore:  factory(),
		cmdPut:     metrics.GetOrCreateCounter(fmt.Sprintf(`meshkv_commands_total{node=%q,cmd="put"}`, config.Name)),
		cmdRemove:  metrics.GetOrCreateCounter(fmt.Sprintf(`meshkv_commands_total{node=%q,cmd="remove"}`, config.Name)),
		cmdGet:     metrics.GetOrCreateCounter(fmt.Sprintf(`meshkv_commands_total{node=%q,cmd="get"}`, config.Name)),
		cmdDropped: metrics.GetOrCreateCounter(fmt.Sprintf(`meshkv_commands_total{node=%q,cmd="dropped"}`, config.Name)),
	}
	n.state.Store(int32(StateStarting))

	// recover before anything is served
	if err := wal.Replay(config.WALPath, n.dataStore); err != nil {
		return nil, fmt.Errorf("node %s: %w", config.Name, err)
	}

	w, err := wal.Open(config.WALPath)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", config.Name, err)
	}
	n.log = w

	listener, err := net.Listen("tcp", config.Endpoint)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("node %s: failed to listen on %s: %w", config.Name, config.Endpoint, err)
	}
	n.listener = listener

	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel

	if config.HasPeer() {
		n.repl = newReplicator(config.Name, config.PeerEndpoint, config.ReplQueueSize)
		n.wg.Add(1)
		go func() {
			defer n.wg.Done()
			n.repl.run(ctx)
		}()
	}

	n.state.Store(int32(StateRunning))
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.acceptLoop(ctx)
	}()

	Logger.Infof("node %s listening on %s (recovered %d entries)",
		config.Name, listener.Addr(), n.dataStore.Len())

	return n, nil
}

// Name returns the node's human-readable name.
func (n *Node) Name() string {
	return n.config.Name
}

// Addr returns the actual listen address, useful when the configured
// endpoint used port 0.
func (n *Node) Addr() string {
	return n.listener.Addr().String()
}

// State returns the current lifecycle state.
func (n *Node) State() State {
	return State(n.state.Load())
}

// Stop cancels the listener and releases all resources. Closing the listener
// unblocks the accept call, the loop observes the cancelled context and
// exits; a request already being handled finishes first, it is never aborted
// mid-flight. Stop returns only once no further connections will be accepted
// and the replicator has drained.
func (n *Node) Stop() {
	if !n.state.CompareAndSwap(int32(StateRunning), int32(StateStopping)) {
		return
	}

	n.cancel()
	_ = n.listener.Close()
	if n.repl != nil {
		n.repl.wake()
	}
	n.wg.Wait()

	if err := n.log.Close(); err != nil {
		Logger.Errorf("node %s: failed to close WAL: %v", n.config.Name, err)
	}

	n.state.Store(int32(StateStopped))
	Logger.Infof("node %s stopped", n.config.Name)
}

// --------------------------------------------------------------------------
// Listener
// --------------------------------------------------------------------------

// acceptLoop blocks on accept and handles every connection synchronously on
// this goroutine. There is no per-connection goroutine and no pool offload.
func (n *Node) acceptLoop(ctx context.Context) {
	for {
		conn, err := n.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			// accept failure not caused by shutdown is non-fatal
			Logger.Errorf("node %s: accept error: %v", n.config.Name, err)
			continue
		}
		n.handleConn(conn)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// handleConn reads exactly one command line, executes it and closes the
// connection. Only GET produces a response.
func (n *Node) handleConn(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		return
	}

	cmd, ok := common.ParseCommand(scanner.Text())
	if !ok {
		// unknown or malformed command: no response, connection closed
		n.cmdDropped.Inc()
		Logger.Debugf("node %s: dropped malformed request", n.config.Name)
		return
	}

	switch cmd.Op {
	case common.OpPut:
		n.cmdPut.Inc()
		if err := n.Put(cmd.Key, cmd.Value); err != nil {
			Logger.Errorf("node %s: put failed: %v", n.config.Name, err)
		}
	case common.OpRemove:
		n.cmdRemove.Inc()
		if err := n.Remove(cmd.Key); err != nil {
			Logger.Errorf("node %s: remove failed: %v", n.config.Name, err)
		}
	case common.OpGet:
		n.cmdGet.Inc()
		if value, ok := n.Get(cmd.Key); ok {
			_, _ = fmt.Fprintf(conn, "%s %s\n", common.RespValue, value)
		} else {
			_, _ = fmt.Fprintf(conn, "%s\n", common.RespNotFound)
		}
	}
}

// --------------------------------------------------------------------------
// Local Operations
// --------------------------------------------------------------------------

// Put upserts the pair locally and appends it to the WAL, then hands the
// write to the replication queue.
//
// The store is mutated before the WAL append: a mutation observable to
// subsequent same-process reads can be lost if the process crashes before
// the append completes. This ordering is part of the engine's contract; the
// recovery tests pin it down.
func (n *Node) Put(key, value string) error {
	n.dataStore.Put(key, value)
	if err := n.log.LogPut(key, value); err != nil {
		return err
	}

	if n.repl != nil {
		n.repl.enqueue(key, value)
	}
	return nil
}

// Get looks the key up in the local store.
func (n *Node) Get(key string) (string, bool) {
	return n.dataStore.Get(key)
}

// Remove deletes the key locally and appends the removal to the WAL.
// Removals are not replicated.
func (n *Node) Remove(key string) error {
	n.dataStore.Remove(key)
	return n.log.LogRemove(key)
}
