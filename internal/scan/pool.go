package scan

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs independent tasks on a fixed set of goroutines.
//
// Each worker owns a queue and falls back to stealing from the other queues
// when its own is empty, so rows that finish early do not leave a worker
// idle while another still has a backlog.
//
// WorkerPool is safe for concurrent use. Tasks must not call ForEach on the
// pool that runs them.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup

	// submitMu keeps Close from finishing while ForEach is still enqueueing.
	submitMu sync.RWMutex
	closed   atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers. Zero or a
// negative count selects GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int { return p.workers }

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case task := <-own:
			task()
			continue
		default:
		}

		if task := p.steal(id); task != nil {
			task()
			continue
		}

		select {
		case <-p.done:
			drain(own)
			return
		case task := <-own:
			task()
		}
	}
}

func drain(queue chan func()) {
	for {
		select {
		case task := <-queue:
			task()
		default:
			return
		}
	}
}

// steal takes one task from another worker's queue, or returns nil.
func (p *WorkerPool) steal(id int) func() {
	for i := 1; i < p.workers; i++ {
		select {
		case task := <-p.queues[(id+i)%p.workers]:
			return task
		default:
		}
	}
	return nil
}

// ForEach calls fn(i) for every i in [0, n) across the workers and waits
// for all calls to return. Indices are dealt round-robin to the worker
// queues. On a closed pool the calls run on the calling goroutine.
func (p *WorkerPool) ForEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	p.submitMu.RLock()
	if p.closed.Load() {
		p.submitMu.RUnlock()
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var pending sync.WaitGroup
	pending.Add(n)
	for i := 0; i < n; i++ {
		i := i
		p.queues[i%p.workers] <- func() {
			defer pending.Done()
			fn(i)
		}
	}
	p.submitMu.RUnlock()

	pending.Wait()
}

// Close stops the workers after the queued tasks have run. It is safe to
// call more than once.
func (p *WorkerPool) Close() {
	p.submitMu.Lock()
	if !p.closed.CompareAndSwap(false, true) {
		p.submitMu.Unlock()
		return
	}
	close(p.done)
	p.submitMu.Unlock()

	p.wg.Wait()
}
