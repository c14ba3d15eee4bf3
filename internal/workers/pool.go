// Package workers provides a bounded goroutine pool for parallel pair
// evaluation. The scan stays deterministic under parallelism because every
// pair owns its generator; the pool only decides scheduling.
package workers

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Task is a unit of work.
type Task func() error

// Stats is a snapshot of pool counters.
type Stats struct {
	Submitted int64 `json:"submitted"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
	Recovered int64 `json:"recovered"`
}

// Pool runs tasks on a fixed number of worker goroutines.
type Pool struct {
	logger *zap.Logger
	size   int

	tasks  chan Task
	wg     sync.WaitGroup
	cancel context.CancelFunc

	// mu serializes Submit against Stop so a task is never sent on a
	// closed channel.
	mu      sync.Mutex
	running atomic.Bool

	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	recovered atomic.Int64
}

// NewPool creates a pool with size workers and a queue of queueSize tasks.
func NewPool(logger *zap.Logger, size, queueSize int) *Pool {
	if size < 1 {
		size = 1
	}
	if queueSize < size {
		queueSize = size
	}
	return &Pool{
		logger: logger,
		size:   size,
		tasks:  make(chan Task, queueSize),
	}
}

// Start launches the workers. Calling Start on a running pool is a no-op.
func (p *Pool) Start() {
	if p.running.Swap(true) {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	p.logger.Debug("starting worker pool", zap.Int("workers", p.size))
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			p.execute(id, task)
		}
	}
}

func (p *Pool) execute(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.recovered.Add(1)
			p.failed.Add(1)
			p.logger.Error("worker recovered from panic",
				zap.Int("worker", id), zap.Any("panic", r))
		}
	}()
	if err := task(); err != nil {
		p.failed.Add(1)
		p.logger.Debug("task failed", zap.Int("worker", id), zap.Error(err))
		return
	}
	p.completed.Add(1)
}

// Submit enqueues a task, blocking while the queue is full.
// Returns false if the pool is stopped.
func (p *Pool) Submit(task Task) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running.Load() {
		return false
	}
	p.submitted.Add(1)
	p.tasks <- task
	return true
}

// Stop drains the queue and terminates the workers.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.running.Swap(false) {
		p.mu.Unlock()
		return
	}
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.logger.Debug("worker pool stopped", zap.Any("stats", p.Stats()))
}

// Stats returns current counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
		Recovered: p.recovered.Load(),
	}
}
