package port

import (
	"context"

	"github.com/google/uuid"

	"peakbridge/internal/domain"
)

// UserRepository defines the contract for operator-account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// JobRepository defines the contract for upload-batch persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	List(ctx context.Context, offset, limit int) ([]domain.Job, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error
	// RefreshCounters recomputes the per-state file counters from job_files
	// and finalizes the job when every file has reached a terminal state.
	RefreshCounters(ctx context.Context, id uuid.UUID) (*domain.Job, error)
}

// JobFileRepository defines the contract for per-document persistence
// inside a job.
type JobFileRepository interface {
	Create(ctx context.Context, file *domain.JobFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.JobFile, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.JobFile, error)
	// ClaimQueued atomically moves up to limit queued files of non-cancelled
	// jobs to processing and returns them, skipping rows other workers hold.
	ClaimQueued(ctx context.Context, limit int) ([]domain.JobFile, error)
	// Requeue returns a claimed file to the queue after a transient failure.
	Requeue(ctx context.Context, id uuid.UUID) error
	Finish(ctx context.Context, id uuid.UUID, state domain.FileState, platform domain.Platform, message string) error
}

// RowRepository defines the contract for extracted ledger-row persistence.
type RowRepository interface {
	Create(ctx context.Context, row *domain.RowRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RowRecord, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.RowRecord, error)
	DeleteByFile(ctx context.Context, fileID uuid.UUID) error
	Update(ctx context.Context, row *domain.RowRecord) error
}
