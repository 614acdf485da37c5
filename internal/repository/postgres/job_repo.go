package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"peakbridge/internal/domain"
	"peakbridge/internal/port"
)

type jobRepo struct {
	db *sqlx.DB
}

// NewJobRepo creates a new PostgreSQL-backed JobRepository.
func NewJobRepo(db *sqlx.DB) port.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = domain.JobQueued
	}
	if len(job.FilterConfig) == 0 {
		job.FilterConfig = []byte("{}")
	}

	query := `INSERT INTO jobs (id, status, total_files, processed_files, ok_files, review_files,
		error_files, filter_config, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.Status, job.TotalFiles, job.ProcessedFiles, job.OKFiles,
		job.ReviewFiles, job.ErrorFiles, job.FilterConfig, job.CreatedBy,
		job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("jobRepo.Create: %w", err)
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	err := r.db.GetContext(ctx, &job, "SELECT * FROM jobs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("jobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *jobRepo) List(ctx context.Context, offset, limit int) ([]domain.Job, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM jobs"); err != nil {
		return nil, 0, fmt.Errorf("jobRepo.List count: %w", err)
	}

	var jobs []domain.Job
	err := r.db.SelectContext(ctx, &jobs,
		"SELECT * FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("jobRepo.List: %w", err)
	}
	return jobs, total, nil
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	query := `UPDATE jobs SET status = $1, updated_at = NOW(),
		finished_at = CASE WHEN $1 IN ('done', 'error', 'cancelled') THEN NOW() ELSE finished_at END
		WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("jobRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RefreshCounters recomputes the file counters from job_files inside one
// statement and flips the job to done/error once every file is terminal.
// Cancelled jobs keep their status but still get fresh counters.
func (r *jobRepo) RefreshCounters(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	query := `
		WITH counts AS (
			SELECT
				COUNT(*) AS total,
				COUNT(*) FILTER (WHERE state IN ('done', 'needs_review', 'error')) AS processed,
				COUNT(*) FILTER (WHERE state = 'done') AS ok,
				COUNT(*) FILTER (WHERE state = 'needs_review') AS review,
				COUNT(*) FILTER (WHERE state = 'error') AS err
			FROM job_files WHERE job_id = $1
		)
		UPDATE jobs SET
			total_files = counts.total,
			processed_files = counts.processed,
			ok_files = counts.ok,
			review_files = counts.review,
			error_files = counts.err,
			status = CASE
				WHEN jobs.status = 'cancelled' THEN jobs.status
				WHEN counts.processed < counts.total THEN jobs.status
				WHEN counts.err > 0 THEN 'error'
				ELSE 'done'
			END,
			finished_at = CASE
				WHEN jobs.status = 'cancelled' THEN jobs.finished_at
				WHEN counts.processed < counts.total THEN jobs.finished_at
				WHEN jobs.finished_at IS NULL THEN NOW()
				ELSE jobs.finished_at
			END,
			updated_at = NOW()
		FROM counts
		WHERE jobs.id = $1
		RETURNING jobs.id, jobs.status, jobs.total_files, jobs.processed_files,
			jobs.ok_files, jobs.review_files, jobs.error_files, jobs.filter_config,
			jobs.created_by, jobs.created_at, jobs.updated_at, jobs.finished_at`

	var job domain.Job
	err := r.db.GetContext(ctx, &job, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("jobRepo.RefreshCounters: %w", err)
	}
	return &job, nil
}
