package pipeline

import (
	"context"
	"sync"
)

// BatchResult pairs the outcome of one batch request with its error.
type BatchResult struct {
	Result Result
	Err    error
}

// RunBatch runs independent requests on at most the configured number of
// workers. Results are returned in request order. A failing request does
// not stop the others; a cancelled context fails the requests that have
// not started.
func (p *Pipeline) RunBatch(ctx context.Context, reqs []Request) []BatchResult {
	results := make([]BatchResult, len(reqs))
	if len(reqs) == 0 {
		return results
	}

	workers := min(max(p.workers, 1), len(reqs))

	jobs := make(chan int)

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results[i] = BatchResult{Result: Result{State: StateFailed}, Err: err}
					continue
				}

				res, err := p.Run(ctx, reqs[i])
				results[i] = BatchResult{Result: res, Err: err}
			}
		}()
	}

	for i := range reqs {
		jobs <- i
	}

	close(jobs)
	wg.Wait()

	p.logger.WithField("requests", len(reqs)).Debug("batch finished")

	return results
}
