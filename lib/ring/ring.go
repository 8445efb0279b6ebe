package ring

import (
	"sort"
	"strconv"
	"sync"
)

// DefaultReplicas is the number of virtual points created per node when no
// explicit count is given.
const DefaultReplicas = 100

// --------------------------------------------------------------------------
// Hash Function
// --------------------------------------------------------------------------

// hashString generates a hash value for a string.
// This function uses the FNV-1a hash algorithm, which is fast and has good
// distribution. No seed is applied: the ring must be a pure function of its
// contents so that independently constructed rings with the same members
// agree on ownership.
func hashString(s string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)

	hash := uint64(offset64)
	for i := 0; i < len(s); i++ {
		hash ^= uint64(s[i])
		hash *= prime64
	}
	return hash
}

// --------------------------------------------------------------------------
// Ring Type
// --------------------------------------------------------------------------

// point is one virtual replica position on the ring.
type point struct {
	hash uint64
	node string
}

// Ring maps keys to owning node names via virtual replica points.
type Ring struct {
	mu          sync.RWMutex
	numReplicas int
	points      []point // sorted by hash, ascending
}

// New creates an empty ring. A numReplicas value <= 0 selects
// DefaultReplicas.
//
// Correctness contract: RemoveNode only removes the points AddNode created if
// both run with the same numReplicas, so the replica count is fixed per ring
// rather than passed per call.
func New(numReplicas int) *Ring {
	if numReplicas <= 0 {
		numReplicas = DefaultReplicas
	}
	return &Ring{
		numReplicas: numReplicas,
		points:      make([]point, 0),
	}
}

// --------------------------------------------------------------------------
// Ring Mutation
// --------------------------------------------------------------------------

// replicaHash computes the position of the i-th virtual point for a node.
func (r *Ring) replicaHash(node string, i int) uint64 {
	return hashString(node + "#" + strconv.Itoa(i))
}

// AddNode inserts the node's virtual points into the ring.
// Adding the same node twice is harmless: the points land on the positions
// they already occupy.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (r *Ring) AddNode(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < r.numReplicas; i++ {
		h := r.replicaHash(name, i)
		idx := sort.Search(len(r.points), func(j int) bool {
			return r.points[j].hash >= h
		})

		// overwrite on hash collision, keeping the slice sorted and duplicate-free
		if idx < len(r.points) && r.points[idx].hash == h {
			r.points[idx].node = name
			continue
		}

		r.points = append(r.points, point{})
		copy(r.points[idx+1:], r.points[idx:])
		r.points[idx] = point{hash: h, node: name}
	}
}

// RemoveNode removes the node's virtual points from the ring.
// After this call GetNode can never again return the removed node.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (r *Ring) RemoveNode(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < r.numReplicas; i++ {
		h := r.replicaHash(name, i)
		idx := sort.Search(len(r.points), func(j int) bool {
			return r.points[j].hash >= h
		})
		if idx < len(r.points) && r.points[idx].hash == h && r.points[idx].node == name {
			r.points = append(r.points[:idx], r.points[idx+1:]...)
		}
	}
}

// --------------------------------------------------------------------------
// Ring Lookup
// --------------------------------------------------------------------------

// GetNode returns the name of the node owning the given key.
// Ownership is clockwise: the first point with a hash value >= the key's hash
// owns the key, wrapping to the smallest point past the top of the ring.
// The boolean return value is false iff the ring has no points.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (r *Ring) GetNode(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.points) == 0 {
		return "", false
	}

	h := hashString(key)
	idx := sort.Search(len(r.points), func(j int) bool {
		return r.points[j].hash >= h
	})
	if idx == len(r.points) {
		idx = 0
	}
	return r.points[idx].node, true
}

// Size returns the number of virtual points currently on the ring.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (r *Ring) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.points)
}
