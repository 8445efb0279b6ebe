package wal

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/meshkv/meshkv/lib/store"
)

// walPath returns a log path inside a per-test temp dir
func walPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "node.wal")
}

// TestOpenCreatesFile tests that Open creates the log file
func TestOpenCreatesFile(t *testing.T) {
	path := walPath(t)

	w, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer w.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("WAL file was not created: %v", err)
	}
}

// TestRoundTrip tests that logging a sequence of operations and replaying
// them into a fresh store reproduces the directly applied final state
func TestRoundTrip(t *testing.T) {
	path := walPath(t)

	w, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	type op struct {
		put        bool
		key, value string
	}
	ops := []op{
		{true, "IBM", "140.25"},
		{true, "AAPL", "190.10"},
		{false, "IBM", ""},
		{true, "IBM", "141.00"},
		{true, "AAPL", "191.50"},
		{false, "MSFT", ""}, // remove of a never-set key
	}

	direct := store.NewMapStore()
	for _, o := range ops {
		if o.put {
			direct.Put(o.key, o.value)
			if err := w.LogPut(o.key, o.value); err != nil {
				t.Fatalf("LogPut failed: %v", err)
			}
		} else {
			direct.Remove(o.key)
			if err := w.LogRemove(o.key); err != nil {
				t.Fatalf("LogRemove failed: %v", err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	replayed := store.NewMapStore()
	if err := Replay(path, replayed); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	if replayed.Len() != direct.Len() {
		t.Fatalf("Replayed store has %d entries, direct store has %d", replayed.Len(), direct.Len())
	}
	for _, key := range []string{"IBM", "AAPL", "MSFT"} {
		dv, dok := direct.Get(key)
		rv, rok := replayed.Get(key)
		if dok != rok || dv != rv {
			t.Errorf("Key %q: direct (%q, %t), replayed (%q, %t)", key, dv, dok, rv, rok)
		}
	}
}

// TestReplayMissingFile tests that replaying a nonexistent log is a no-op
func TestReplayMissingFile(t *testing.T) {
	s := store.NewMapStore()
	if err := Replay(filepath.Join(t.TempDir(), "does-not-exist.wal"), s); err != nil {
		t.Fatalf("Replay of a missing file should succeed, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Store should stay empty, has %d entries", s.Len())
	}
}

// TestReplayTruncatedTail tests that a torn trailing record stops replay
// without failing and without dropping the records before it
func TestReplayTruncatedTail(t *testing.T) {
	path := walPath(t)

	content := "PUT a 1\nPUT b 2\nPUT c\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	s := store.NewMapStore()
	if err := Replay(path, s); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	if v, ok := s.Get("a"); !ok || v != "1" {
		t.Errorf("Record before the torn tail was lost: (%q, %t)", v, ok)
	}
	if v, ok := s.Get("b"); !ok || v != "2" {
		t.Errorf("Record before the torn tail was lost: (%q, %t)", v, ok)
	}
	if _, ok := s.Get("c"); ok {
		t.Error("Torn record must not be applied")
	}
}

// TestReplayOrdering tests that the last write for a key wins
func TestReplayOrdering(t *testing.T) {
	path := walPath(t)

	w, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	for i := 0; i < 100; i++ {
		if err := w.LogPut("counter", fmt.Sprintf("%d", i)); err != nil {
			t.Fatalf("LogPut failed: %v", err)
		}
	}
	w.Close()

	s := store.NewMapStore()
	if err := Replay(path, s); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if v, _ := s.Get("counter"); v != "99" {
		t.Errorf("Expected last write 99 to win, got %q", v)
	}
}

// TestAppendSurvivesReopen tests that records appended across two WAL
// lifetimes replay as one continuous history
func TestAppendSurvivesReopen(t *testing.T) {
	path := walPath(t)

	w, _ := Open(path)
	w.LogPut("k", "first")
	w.Close()

	w2, err := Open(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	w2.LogPut("k", "second")
	w2.LogRemove("gone")
	w2.Close()

	s := store.NewMapStore()
	if err := Replay(path, s); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if v, _ := s.Get("k"); v != "second" {
		t.Errorf("Expected value from second lifetime, got %q", v)
	}
}
