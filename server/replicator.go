package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/meshkv/meshkv/lib/concurrent"
	"github.com/meshkv/meshkv/server/common"
)

const (
	defaultReplQueueSize = 1024
	replDialTimeout      = 2 * time.Second
)

// replJob is one pending replication message.
type replJob struct {
	key   string
	value string
}

// replicator ships PUTs to the configured peer, fire-and-forget.
//
// The queue between the listener and the replicator is the SPSC ring buffer:
// the listener goroutine is the only producer (connections are handled
// synchronously on it) and the replicator goroutine is the only consumer,
// which is exactly the concurrency shape the buffer demands. A full buffer
// drops the job; replication is best-effort propagation, not a consistency
// mechanism.
type replicator struct {
	node string
	peer string

	queue *concurrent.RingBuffer[replJob]
	kick  chan struct{}

	sent    *metrics.Counter
	dropped *metrics.Counter
	failed  *metrics.Counter
}

func newReplicator(node, peer string, queueSize int) *replicator {
	if queueSize <= 0 {
		queueSize = defaultReplQueueSize
	}
	return &replicator{
		node:    node,
		peer:    peer,
		queue:   concurrent.NewRingBuffer[replJob](queueSize),
		kick:    make(chan struct{}, 1),
		sent:    metrics.GetOrCreateCounter(fmt.Sprintf(`meshkv_replication_total{node=%q,outcome="sent"}`, node)),
		dropped: metrics.GetOrCreateCounter(fmt.Sprintf(`meshkv_replication_total{node=%q,outcome="dropped"}`, node)),
		failed:  metrics.GetOrCreateCounter(fmt.Sprintf(`meshkv_replication_total{node=%q,outcome="failed"}`, node)),
	}
}

// enqueue hands a write to the replicator without blocking the listener.
//
// Thread-safety: must only be called from the listener goroutine (single
// producer contract of the queue).
func (r *replicator) enqueue(key, value string) {
	if !r.queue.Push(replJob{key: key, value: value}) {
		r.dropped.Inc()
		Logger.Debugf("node %s: replication queue full, dropped %s", r.node, key)
		return
	}
	r.wake()
}

// wake nudges the consumer. The channel has capacity one; a pending nudge
// already covers any number of queued jobs.
func (r *replicator) wake() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// run is the consumer loop. On shutdown it drains the jobs still queued
// before returning, matching the node's finish-what-was-accepted stop
// semantics.
func (r *replicator) run(ctx context.Context) {
	for {
		for {
			job, ok := r.queue.Pop()
			if !ok {
				break
			}
			r.send(job)
		}

		select {
		case <-ctx.Done():
			// final drain: everything enqueued before Stop still goes out
			for {
				job, ok := r.queue.Pop()
				if !ok {
					return
				}
				r.send(job)
			}
		case <-r.kick:
		}
	}
}

// send ships one job to the peer.
func (r *replicator) send(job replJob) {
	if err := replicateTo(r.peer, job.key, job.value); err != nil {
		// a failed connection attempt is swallowed, no retry
		r.failed.Inc()
		Logger.Debugf("node %s: replication to %s failed: %v", r.node, r.peer, err)
		return
	}
	r.sent.Inc()
}

// --------------------------------------------------------------------------
// Outbound Replication
// --------------------------------------------------------------------------

// ReplicateTo opens an outbound connection to a peer, sends a single PUT
// message and closes. There is no acknowledgement and no retry.
func (n *Node) ReplicateTo(host string, port int, key, value string) error {
	return replicateTo(net.JoinHostPort(host, fmt.Sprintf("%d", port)), key, value)
}

func replicateTo(endpoint, key, value string) error {
	conn, err := net.DialTimeout("tcp", endpoint, replDialTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Write([]byte(common.FormatPut(key, value)))
	return err
}
