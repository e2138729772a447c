// Package workerpool provides a bounded pool for running a batch of tasks
// concurrently while preserving the order of their results.
package workerpool

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Task is one unit of work.
type Task func(ctx context.Context) (any, error)

// Pool runs batches of tasks with bounded concurrency. Completion order is
// unspecified, but results are returned in submission order. The first
// failure cancels the remaining tasks and fails the whole batch; no partial
// results are handed out.
type Pool struct {
	workers int
	logger  *zap.Logger

	tasksRun    int64
	tasksFailed int64
}

// New creates a pool with the given worker bound.
func New(workers int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{workers: workers, logger: logger}
}

type indexedTask struct {
	index int
	task  Task
}

// Run executes all tasks and returns their results in submission order.
func (p *Pool) Run(ctx context.Context, tasks []Task) ([]any, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := p.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	taskCh := make(chan indexedTask)
	results := make([]any, len(tasks))

	var (
		wg       sync.WaitGroup
		firstErr error
		errOnce  sync.Once
	)

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := range taskCh {
				if ctx.Err() != nil {
					return
				}
				atomic.AddInt64(&p.tasksRun, 1)
				out, err := it.task(ctx)
				if err != nil {
					atomic.AddInt64(&p.tasksFailed, 1)
					p.logger.Error("task failed", zap.Int("index", it.index), zap.Error(err))
					fail(err)
					return
				}
				results[it.index] = out
			}
		}()
	}

feed:
	for i, t := range tasks {
		select {
		case taskCh <- indexedTask{index: i, task: t}:
		case <-ctx.Done():
			break feed
		}
	}
	close(taskCh)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Stats reports cumulative task counts.
type Stats struct {
	TasksRun    int64
	TasksFailed int64
}

// Stats returns cumulative counters for this pool.
func (p *Pool) Stats() Stats {
	return Stats{
		TasksRun:    atomic.LoadInt64(&p.tasksRun),
		TasksFailed: atomic.LoadInt64(&p.tasksFailed),
	}
}
