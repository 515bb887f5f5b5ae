// Package worker provides the small concurrency primitives the matching
// pipeline runs on: a bounded fan-out pool and a per-provider rate
// limiter.
package worker

import (
	"context"
	"sync"
)

// Job represents a unit of work to be executed.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution.
type Result interface {
	GetError() error
}

// Pool executes a batch of jobs with bounded concurrency. It is
// synchronous by design: the matching pipeline dispatches its independent
// search stages in one shot and joins on all of them.
type Pool struct {
	workers int
}

// NewPool creates a pool with the specified number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and returns their results in submission order.
// A cancelled context stops jobs that have not started; running jobs see
// the cancellation through their own context handling.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

dispatch:
	for i, job := range jobs {
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = job.Execute(ctx)
		}(i, job)
	}

	wg.Wait()
	return results
}
