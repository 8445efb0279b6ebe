// Package analytics provides a small columnar table for fixed-width integer
// tuples and pluggable filter backends over it.
//
// The storage engine does not depend on this package; the table is an
// external collaborator used by tooling. Filtering is a plain linear scan,
// either on the calling goroutine (ScalarBackend) or sharded across a worker
// pool (ParallelBackend). Both backends return identical counts.
package analytics
