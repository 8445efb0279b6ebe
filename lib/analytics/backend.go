package analytics

import (
	"github.com/meshkv/meshkv/lib/concurrent"
)

// FilterBackend counts values below a threshold in one column. The table
// neither depends on nor is aware of how a backend computes its count.
type FilterBackend interface {
	CountLessThan(column []int, threshold int) int
}

// --------------------------------------------------------------------------
// Scalar Backend
// --------------------------------------------------------------------------

// ScalarBackend scans the column on the calling goroutine.
type ScalarBackend struct{}

func (ScalarBackend) CountLessThan(column []int, threshold int) int {
	count := 0
	for _, v := range column {
		if v < threshold {
			count++
		}
	}
	return count
}

// --------------------------------------------------------------------------
// Parallel Backend
// --------------------------------------------------------------------------

// minChunkSize keeps tiny columns on a single task, where fan-out overhead
// would dominate the scan itself.
const minChunkSize = 4096

// ParallelBackend shards the column into chunks and scans them on a worker
// pool. Counts are identical to the scalar scan for any input.
type ParallelBackend struct {
	pool      *concurrent.WorkerPool
	numChunks int
}

// NewParallelBackend creates a backend that splits work into numChunks tasks
// on the given pool. A numChunks value < 1 is raised to 1.
func NewParallelBackend(pool *concurrent.WorkerPool, numChunks int) *ParallelBackend {
	if numChunks < 1 {
		numChunks = 1
	}
	return &ParallelBackend{pool: pool, numChunks: numChunks}
}

func (b *ParallelBackend) CountLessThan(column []int, threshold int) int {
	if len(column) <= minChunkSize || b.numChunks == 1 {
		return ScalarBackend{}.CountLessThan(column, threshold)
	}

	chunkSize := (len(column) + b.numChunks - 1) / b.numChunks
	handles := make([]*concurrent.TaskHandle, 0, b.numChunks)

	for start := 0; start < len(column); start += chunkSize {
		end := start + chunkSize
		if end > len(column) {
			end = len(column)
		}
		chunk := column[start:end]

		handle, err := b.pool.Submit(func() (interface{}, error) {
			return ScalarBackend{}.CountLessThan(chunk, threshold), nil
		})
		if err != nil {
			// pool closed under us: finish the remainder inline
			return b.collect(handles) + ScalarBackend{}.CountLessThan(column[start:], threshold)
		}
		handles = append(handles, handle)
	}

	return b.collect(handles)
}

// collect sums the partial counts of the submitted chunks.
func (b *ParallelBackend) collect(handles []*concurrent.TaskHandle) int {
	total := 0
	for _, h := range handles {
		v, err := h.Wait()
		if err != nil {
			continue
		}
		total += v.(int)
	}
	return total
}
