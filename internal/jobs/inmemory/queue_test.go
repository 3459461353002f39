package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pennywise-ai/pennywise/internal/jobs"
)

func TestPublishAndConsume(t *testing.T) {
	q := NewQueue(10, 2)
	defer q.Close()

	var mu sync.Mutex
	handled := make(map[string]bool)
	done := make(chan struct{}, 3)

	handler := func(ctx context.Context, job jobs.Job) error {
		mu.Lock()
		handled[job.GetID()] = true
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	if err := q.Start(context.Background(), handler); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for _, id := range []string{"j1", "j2", "j3"} {
		err := q.PublishRefreshInsights(context.Background(), &jobs.RefreshInsightsJob{JobID: id, Reason: "transaction_added"})
		if err != nil {
			t.Fatalf("PublishRefreshInsights(%q): %v", id, err)
		}
	}

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	for _, id := range []string{"j1", "j2", "j3"} {
		if !handled[id] {
			t.Errorf("job %s never handled", id)
		}
	}
}

func TestPublish_FillsDefaults(t *testing.T) {
	q := NewQueue(1, 1)
	defer q.Close()

	job := &jobs.RefreshInsightsJob{}
	if err := q.PublishRefreshInsights(context.Background(), job); err != nil {
		t.Fatalf("PublishRefreshInsights: %v", err)
	}

	if job.JobID == "" {
		t.Error("JobID not generated")
	}
	if job.Status != jobs.JobStatusPending {
		t.Errorf("Status = %q, want pending", job.Status)
	}
	if job.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestFailedJobIsNotRetried(t *testing.T) {
	q := NewQueue(10, 1)
	defer q.Close()

	var mu sync.Mutex
	calls := 0
	done := make(chan struct{}, 1)

	handler := func(ctx context.Context, job jobs.Job) error {
		mu.Lock()
		calls++
		mu.Unlock()
		done <- struct{}{}
		return errors.New("model unavailable")
	}

	if err := q.Start(context.Background(), handler); err != nil {
		t.Fatalf("Start: %v", err)
	}

	job := &jobs.RefreshInsightsJob{JobID: "j1"}
	if err := q.PublishRefreshInsights(context.Background(), job); err != nil {
		t.Fatalf("PublishRefreshInsights: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job")
	}

	// Give any stray re-enqueue a chance to run before counting.
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("handler called %d times, want exactly 1", calls)
	}
	if job.Status != jobs.JobStatusFailed {
		t.Errorf("Status = %q, want failed", job.Status)
	}
	if job.Error == "" {
		t.Error("Error not recorded")
	}
}

func TestPublishAfterClose(t *testing.T) {
	q := NewQueue(1, 1)
	q.Close()

	err := q.PublishRefreshInsights(context.Background(), &jobs.RefreshInsightsJob{})
	if err == nil {
		t.Error("expected error publishing to closed queue")
	}
}

func TestStop_WaitsForInflight(t *testing.T) {
	q := NewQueue(1, 1)

	started := make(chan struct{})
	finished := make(chan struct{})

	handler := func(ctx context.Context, job jobs.Job) error {
		close(started)
		time.Sleep(50 * time.Millisecond)
		close(finished)
		return nil
	}

	if err := q.Start(context.Background(), handler); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := q.PublishRefreshInsights(context.Background(), &jobs.RefreshInsightsJob{JobID: "j1"}); err != nil {
		t.Fatalf("PublishRefreshInsights: %v", err)
	}

	<-started
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := q.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	select {
	case <-finished:
	default:
		t.Error("Stop returned before in-flight job finished")
	}
}
