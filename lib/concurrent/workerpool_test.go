package concurrent

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

// TestSubmitResolvesResults tests that every submitted task's handle
// resolves to the correct computed result
func TestSubmitResolvesResults(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	const numTasks = 100
	handles := make([]*TaskHandle, numTasks)

	for i := 0; i < numTasks; i++ {
		i := i
		h, err := p.Submit(func() (interface{}, error) {
			return i * i, nil
		})
		if err != nil {
			t.Fatalf("Submit %d failed: %v", i, err)
		}
		handles[i] = h
	}

	for i, h := range handles {
		v, err := h.Wait()
		if err != nil {
			t.Fatalf("Task %d failed: %v", i, err)
		}
		if v.(int) != i*i {
			t.Errorf("Task %d: expected %d, got %v", i, i*i, v)
		}
	}
}

// TestTaskErrorSurfaced tests that an error returned by a task reaches only
// the waiter of that task
func TestTaskErrorSurfaced(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Close()

	sentinel := errors.New("task failure")

	bad, _ := p.Submit(func() (interface{}, error) {
		return nil, sentinel
	})
	good, _ := p.Submit(func() (interface{}, error) {
		return "ok", nil
	})

	if _, err := bad.Wait(); !errors.Is(err, sentinel) {
		t.Errorf("Expected sentinel error, got %v", err)
	}
	if v, err := good.Wait(); err != nil || v.(string) != "ok" {
		t.Errorf("Unaffected task should succeed, got (%v, %v)", v, err)
	}
}

// TestTaskPanicCaptured tests that a panic inside a task is re-surfaced to
// the waiter and does not kill the worker
func TestTaskPanicCaptured(t *testing.T) {
	p := NewWorkerPool(1)
	defer p.Close()

	panicky, _ := p.Submit(func() (interface{}, error) {
		panic("boom")
	})
	if _, err := panicky.Wait(); err == nil {
		t.Error("Expected an error from the panicking task")
	}

	// the single worker must survive the panic and run the next task
	after, _ := p.Submit(func() (interface{}, error) {
		return 42, nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		if v, err := after.Wait(); err != nil || v.(int) != 42 {
			t.Errorf("Task after panic got (%v, %v)", v, err)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not survive the panic")
	}
}

// TestCloseDrainsQueue tests that shutdown waits for all already-queued
// tasks to finish before the workers terminate
func TestCloseDrainsQueue(t *testing.T) {
	p := NewWorkerPool(2)

	const numTasks = 50
	var executed atomic.Int64

	handles := make([]*TaskHandle, numTasks)
	for i := 0; i < numTasks; i++ {
		h, err := p.Submit(func() (interface{}, error) {
			time.Sleep(time.Millisecond)
			executed.Add(1)
			return nil, nil
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		handles[i] = h
	}

	p.Close()

	if n := executed.Load(); n != numTasks {
		t.Errorf("Close returned with %d of %d tasks executed", n, numTasks)
	}
	for i, h := range handles {
		select {
		case <-h.done:
		default:
			t.Errorf("Handle %d unresolved after Close", i)
		}
	}
}

// TestSubmitAfterClose tests that submitting to a closed pool is rejected
func TestSubmitAfterClose(t *testing.T) {
	p := NewWorkerPool(1)
	p.Close()

	if _, err := p.Submit(func() (interface{}, error) { return nil, nil }); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Expected ErrPoolClosed, got %v", err)
	}

	// double close must not panic
	p.Close()
}

// TestConcurrentSubmitters tests result delivery with many goroutines
// submitting at once
func TestConcurrentSubmitters(t *testing.T) {
	p := NewWorkerPool(8)
	defer p.Close()

	const numSubmitters = 16
	const tasksPerSubmitter = 200

	errCh := make(chan error, numSubmitters)
	for s := 0; s < numSubmitters; s++ {
		go func(id int) {
			for i := 0; i < tasksPerSubmitter; i++ {
				want := fmt.Sprintf("%d/%d", id, i)
				h, err := p.Submit(func() (interface{}, error) {
					return want, nil
				})
				if err != nil {
					errCh <- err
					return
				}
				v, err := h.Wait()
				if err != nil || v.(string) != want {
					errCh <- fmt.Errorf("submitter %d task %d: got (%v, %v)", id, i, v, err)
					return
				}
			}
			errCh <- nil
		}(s)
	}

	for s := 0; s < numSubmitters; s++ {
		select {
		case err := <-errCh:
			if err != nil {
				t.Fatal(err)
			}
		case <-time.After(10 * time.Second):
			t.Fatal("Timeout waiting for submitters")
		}
	}
}
