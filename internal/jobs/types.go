package jobs

import (
	"context"
	"time"
)

// JobType represents the type of job to be executed.
type JobType string

const (
	// JobTypeRefreshInsights regenerates the cached AI insight snapshot.
	JobTypeRefreshInsights JobType = "refresh_insights"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	// JobStatusPending indicates the job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the job completed successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job failed. Failed jobs are never
	// retried; the next ledger change simply enqueues a fresh one.
	JobStatusFailed JobStatus = "failed"
)

// RefreshInsightsJob asks the worker pool to regenerate the insight snapshot
// from the current ledger.
type RefreshInsightsJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// Reason records what triggered the refresh (e.g. "transaction_added",
	// "manual"). Diagnostic only.
	Reason string `json:"reason,omitempty"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	// CreatedAt is when the job was created.
	CreatedAt time.Time `json:"created_at"`

	// StartedAt is when the job started processing.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// CompletedAt is when the job completed (success or failure).
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`
}

// Job is a generic interface for all job types.
type Job interface {
	// GetID returns the unique job identifier.
	GetID() string

	// GetType returns the job type.
	GetType() JobType

	// GetStatus returns the current job status.
	GetStatus() JobStatus
}

// GetID implements the Job interface.
func (j *RefreshInsightsJob) GetID() string {
	return j.JobID
}

// GetType implements the Job interface.
func (j *RefreshInsightsJob) GetType() JobType {
	return JobTypeRefreshInsights
}

// GetStatus implements the Job interface.
func (j *RefreshInsightsJob) GetStatus() JobStatus {
	return j.Status
}

// Publisher defines the interface for publishing jobs to a queue.
type Publisher interface {
	// PublishRefreshInsights publishes an insight refresh job.
	PublishRefreshInsights(ctx context.Context, job *RefreshInsightsJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer defines the interface for consuming jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs from the queue.
	// The handler function is called for each job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming jobs and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler is a function that processes a job. A returned error marks the
// job failed; it is recorded, not retried.
type JobHandler func(ctx context.Context, job Job) error
