package wal

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/meshkv/meshkv/lib/store"
)

// Record operation tokens as they appear on the wire and on disk.
const (
	opPut    = "PUT"
	opRemove = "REMOVE"
)

// WAL is a durable append-only operation log. The file handle lives exactly
// as long as the owning node; the WAL is never shared across nodes.
type WAL struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// Open opens (or creates) the log file at path in append mode.
// A node cannot meaningfully exist without its log, so callers treat an open
// failure as fatal.
func Open(path string) (*WAL, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAL file %s: %w", path, err)
	}
	return &WAL{file: f, path: path}, nil
}

// Close releases the underlying file handle.
func (w *WAL) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// Path returns the log file path.
func (w *WAL) Path() string {
	return w.path
}

// --------------------------------------------------------------------------
// Append Operations
// --------------------------------------------------------------------------

// LogPut appends a PUT record and flushes it to stable storage.
//
// Thread-safety: This method is thread-safe; appends are totally ordered by
// the log's exclusive section.
func (w *WAL) LogPut(key, value string) error {
	return w.append(opPut + " " + key + " " + value + "\n")
}

// LogRemove appends a REMOVE record and flushes it to stable storage.
//
// Thread-safety: This method is thread-safe; appends are totally ordered by
// the log's exclusive section.
func (w *WAL) LogRemove(key string) error {
	return w.append(opRemove + " " + key + "\n")
}

// append serializes the write and forces it to disk before returning.
func (w *WAL) append(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.file.WriteString(line); err != nil {
		return fmt.Errorf("failed to append to WAL %s: %w", w.path, err)
	}

	// durability boundary: the record counts as durable only after Sync
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync WAL %s: %w", w.path, err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Replay
// --------------------------------------------------------------------------

// Replay reads the log at path from the start and applies every record to
// the given store in file order. A record with fewer tokens than its
// operation requires stops replay at that point; a missing log file is
// treated as an empty history.
//
// Replay is a free function on the path rather than a method on an open WAL
// so that recovery runs before the append handle is ever written to.
func Replay(path string, s store.IStore) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open WAL file %s for replay: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case opPut:
			if len(fields) < 3 {
				return nil // truncated trailing record, stop here
			}
			s.Put(fields[1], fields[2])
		case opRemove:
			if len(fields) < 2 {
				return nil
			}
			s.Remove(fields[1])
		default:
			// unrecognized leading token, treat like a torn record
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read WAL file %s: %w", path, err)
	}
	return nil
}
