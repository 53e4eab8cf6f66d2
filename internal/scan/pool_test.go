package scan

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
}

func TestWorkerPool_CreateZeroWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

func TestWorkerPool_CreateNegativeWorkers(t *testing.T) {
	pool := NewWorkerPool(-5)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

// =============================================================================
// ForEach Tests
// =============================================================================

func TestWorkerPool_ForEach(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// More indices than the queues hold, so submission has to wait on workers.
	const n = 1000
	counts := make([]atomic.Int32, n)

	pool.ForEach(n, func(i int) {
		counts[i].Add(1)
	})

	for i := range counts {
		if c := counts[i].Load(); c != 1 {
			t.Errorf("index %d ran %d times, want 1", i, c)
		}
	}
}

func TestWorkerPool_ForEach_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	called := false
	pool.ForEach(0, func(int) { called = true })
	pool.ForEach(-3, func(int) { called = true })
	if called {
		t.Error("fn called for non-positive n")
	}
}

func TestWorkerPool_ForEach_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var total atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.ForEach(50, func(int) { total.Add(1) })
		}()
	}
	wg.Wait()

	if total.Load() != 400 {
		t.Errorf("total = %d, want 400", total.Load())
	}
}

func TestWorkerPool_ForEach_AfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var seen []int
	pool.ForEach(5, func(i int) {
		seen = append(seen, i)
	})

	// A closed pool runs the calls inline and in order.
	for i, v := range seen {
		if v != i {
			t.Fatalf("seen = %v, want 0..4 in order", seen)
		}
	}
	if len(seen) != 5 {
		t.Errorf("ran %d calls, want 5", len(seen))
	}
}

func TestWorkerPool_CloseTwice(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()
}
