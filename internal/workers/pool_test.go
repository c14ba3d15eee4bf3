package workers_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/somewisecrack/omnispread/internal/workers"
)

func TestPoolRunsAllTasks(t *testing.T) {
	pool := workers.NewPool(zap.NewNop(), 4, 16)
	pool.Start()

	var ran atomic.Int64
	for i := 0; i < 50; i++ {
		if !pool.Submit(func() error {
			ran.Add(1)
			return nil
		}) {
			t.Fatalf("submit %d rejected", i)
		}
	}
	pool.Stop()

	if got := ran.Load(); got != 50 {
		t.Errorf("ran %d tasks, want 50", got)
	}
	stats := pool.Stats()
	if stats.Submitted != 50 || stats.Completed != 50 {
		t.Errorf("stats = %+v, want 50 submitted and completed", stats)
	}
}

func TestPoolCountsFailures(t *testing.T) {
	pool := workers.NewPool(zap.NewNop(), 2, 8)
	pool.Start()

	for i := 0; i < 10; i++ {
		i := i
		pool.Submit(func() error {
			if i%2 == 0 {
				return errors.New("boom")
			}
			return nil
		})
	}
	pool.Stop()

	stats := pool.Stats()
	if stats.Failed != 5 {
		t.Errorf("failed = %d, want 5", stats.Failed)
	}
	if stats.Completed != 5 {
		t.Errorf("completed = %d, want 5", stats.Completed)
	}
}

func TestPoolRecoversFromPanic(t *testing.T) {
	pool := workers.NewPool(zap.NewNop(), 2, 4)
	pool.Start()

	pool.Submit(func() error { panic("worker panic") })
	var ran atomic.Bool
	pool.Submit(func() error {
		ran.Store(true)
		return nil
	})
	pool.Stop()

	if !ran.Load() {
		t.Error("pool stopped processing after a panic")
	}
	stats := pool.Stats()
	if stats.Recovered != 1 {
		t.Errorf("recovered = %d, want 1", stats.Recovered)
	}
}

func TestPoolRejectsAfterStop(t *testing.T) {
	pool := workers.NewPool(zap.NewNop(), 1, 1)
	pool.Start()
	pool.Stop()

	if pool.Submit(func() error { return nil }) {
		t.Error("stopped pool accepted a task")
	}
}

func TestPoolConcurrentSubmitAndStop(t *testing.T) {
	// Submitters racing Stop must either enqueue their task or get false
	// back; sending on the closed task channel would panic here.
	for round := 0; round < 20; round++ {
		pool := workers.NewPool(zap.NewNop(), 2, 4)
		pool.Start()

		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 25; i++ {
					if !pool.Submit(func() error { return nil }) {
						return
					}
				}
			}()
		}
		pool.Stop()
		wg.Wait()

		stats := pool.Stats()
		if stats.Completed != stats.Submitted {
			t.Fatalf("round %d: %d submitted but %d completed after Stop",
				round, stats.Submitted, stats.Completed)
		}
	}
}

func TestPoolClampsSize(t *testing.T) {
	pool := workers.NewPool(zap.NewNop(), 0, 0)
	pool.Start()
	ok := pool.Submit(func() error { return nil })
	pool.Stop()
	if !ok {
		t.Error("pool with clamped size rejected a task")
	}
}
