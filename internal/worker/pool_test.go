package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type testResult struct {
	value int
	err   error
}

func (r *testResult) GetError() error { return r.err }

type testJob struct {
	value int
	err   error
	delay time.Duration
	run   func()
}

func (j *testJob) Execute(ctx context.Context) Result {
	if j.run != nil {
		j.run()
	}
	if j.delay > 0 {
		select {
		case <-time.After(j.delay):
		case <-ctx.Done():
			return &testResult{err: ctx.Err()}
		}
	}
	return &testResult{value: j.value, err: j.err}
}

func TestPool_Run(t *testing.T) {
	pool := NewPool(2)

	jobs := make([]Job, 5)
	for i := range jobs {
		jobs[i] = &testJob{value: i}
	}

	results := pool.Run(context.Background(), jobs)
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	// Submission order survives concurrent execution.
	for i, raw := range results {
		res, ok := raw.(*testResult)
		if !ok {
			t.Fatalf("result %d has type %T", i, raw)
		}
		if res.value != i {
			t.Errorf("result %d carries value %d", i, res.value)
		}
	}
}

func TestPool_ErrorsStayPerJob(t *testing.T) {
	pool := NewPool(2)
	boom := errors.New("boom")

	results := pool.Run(context.Background(), []Job{
		&testJob{value: 0},
		&testJob{value: 1, err: boom},
		&testJob{value: 2},
	})

	if err := results[1].GetError(); !errors.Is(err, boom) {
		t.Errorf("result 1 error = %v, want boom", err)
	}
	for _, i := range []int{0, 2} {
		if err := results[i].GetError(); err != nil {
			t.Errorf("result %d error = %v, want nil", i, err)
		}
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const workers = 2
	pool := NewPool(workers)

	var active, peak int32
	var mu sync.Mutex
	track := func() {
		current := atomic.AddInt32(&active, 1)
		mu.Lock()
		if current > peak {
			peak = current
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&active, -1)
	}

	jobs := make([]Job, 6)
	for i := range jobs {
		jobs[i] = &testJob{value: i, run: track}
	}
	pool.Run(context.Background(), jobs)

	if peak > workers {
		t.Errorf("peak concurrency %d exceeds %d workers", peak, workers)
	}
}

func TestPool_CancelledContext(t *testing.T) {
	pool := NewPool(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := pool.Run(ctx, []Job{
		&testJob{value: 0, delay: time.Second},
		&testJob{value: 1, delay: time.Second},
	})

	// No job should have produced a successful result.
	for i, raw := range results {
		if raw == nil {
			continue
		}
		if err := raw.GetError(); err == nil {
			t.Errorf("result %d succeeded under a cancelled context", i)
		}
	}
}

func TestNewPool_MinimumOneWorker(t *testing.T) {
	pool := NewPool(0)
	results := pool.Run(context.Background(), []Job{&testJob{value: 7}})
	if len(results) != 1 || results[0].(*testResult).value != 7 {
		t.Errorf("unexpected results: %+v", results)
	}
}
