package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise-ai/pennywise/internal/jobs"
)

// Queue is an in-memory implementation of job publisher and consumer.
// It uses Go channels for job distribution and is safe for concurrent use.
// This implementation is suitable for single-instance deployments and testing.
type Queue struct {
	jobChan   chan *jobs.RefreshInsightsJob
	closeChan chan struct{}
	wg        sync.WaitGroup
	mu        sync.RWMutex
	workers   int
	closed    bool
}

// NewQueue creates a new in-memory job queue.
// bufferSize determines how many jobs can be queued before PublishRefreshInsights blocks.
// workers is the number of concurrent consumers; values below 1 are clamped to 1.
func NewQueue(bufferSize, workers int) *Queue {
	if workers < 1 {
		workers = 1
	}
	return &Queue{
		jobChan:   make(chan *jobs.RefreshInsightsJob, bufferSize),
		closeChan: make(chan struct{}),
		workers:   workers,
	}
}

// PublishRefreshInsights implements the Publisher interface.
// It enqueues an insight refresh job for asynchronous processing.
func (q *Queue) PublishRefreshInsights(ctx context.Context, job *jobs.RefreshInsightsJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return fmt.Errorf("queue is closed")
	}

	if job.JobID == "" {
		job.JobID = uuid.New().String()
	}
	if job.Status == "" {
		job.Status = jobs.JobStatusPending
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}

	select {
	case q.jobChan <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closeChan:
		return fmt.Errorf("queue is closed")
	}
}

// Start implements the Consumer interface.
// It starts the worker pool and processes queued jobs with the handler.
func (q *Queue) Start(ctx context.Context, handler jobs.JobHandler) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return fmt.Errorf("queue is closed")
	}
	q.mu.RUnlock()

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, handler)
	}

	return nil
}

// worker processes jobs from the queue.
func (q *Queue) worker(ctx context.Context, handler jobs.JobHandler) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.closeChan:
			return
		case job := <-q.jobChan:
			if job == nil {
				return
			}

			q.processJob(ctx, job, handler)
		}
	}
}

// processJob executes a single job. A handler error marks the job failed and
// that is the end of it: failed refreshes are not retried, the next ledger
// change enqueues a fresh job anyway.
func (q *Queue) processJob(ctx context.Context, job *jobs.RefreshInsightsJob, handler jobs.JobHandler) {
	job.Status = jobs.JobStatusRunning
	now := time.Now()
	job.StartedAt = &now

	err := handler(ctx, job)

	completedAt := time.Now()
	job.CompletedAt = &completedAt

	if err != nil {
		job.Status = jobs.JobStatusFailed
		job.Error = err.Error()
	} else {
		job.Status = jobs.JobStatusCompleted
		job.Error = ""
	}
}

// Stop implements the Consumer interface.
// It stops the queue and waits for all in-flight jobs to complete.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.closeChan)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close implements the Publisher interface.
func (q *Queue) Close() error {
	return q.Stop(context.Background())
}

// Ensure Queue implements both Publisher and Consumer interfaces.
var _ jobs.Publisher = (*Queue)(nil)
var _ jobs.Consumer = (*Queue)(nil)
