package cleaner

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Job is one source/destination pair in a batch.
type Job struct {
	Source      string
	Destination string
}

// JobResult pairs a job with its outcome. Result is nil when Err is set.
type JobResult struct {
	Job    Job
	Result *Result
	Err    error
}

// CleanAll runs one independent pipeline per job, at most maxConcurrent
// at a time (values below 1 mean 1, which keeps the whole batch strictly
// sequential in job order). Results come back in job order. A failing
// job does not stop the others; only context cancellation cuts the
// batch short.
func (c *Cleaner) CleanAll(ctx context.Context, jobs []Job, maxConcurrent int) []JobResult {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	sem := semaphore.NewWeighted(int64(maxConcurrent))
	results := make([]JobResult, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = JobResult{
				Job: job,
				Err: fmt.Errorf("failed to acquire concurrency slot for %s: %w", job.Source, err),
			}
			continue
		}
		wg.Add(1)
		go func(i int, job Job) {
			defer wg.Done()
			defer sem.Release(1)
			res, err := c.Clean(ctx, job.Source, job.Destination)
			results[i] = JobResult{Job: job, Result: res, Err: err}
		}(i, job)
	}
	wg.Wait()
	return results
}
