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

type jobFileRepo struct {
	db *sqlx.DB
}

// NewJobFileRepo creates a new PostgreSQL-backed JobFileRepository.
func NewJobFileRepo(db *sqlx.DB) port.JobFileRepository {
	return &jobFileRepo{db: db}
}

func (r *jobFileRepo) Create(ctx context.Context, file *domain.JobFile) error {
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	now := time.Now().UTC()
	file.CreatedAt = now
	file.UpdatedAt = now
	if file.State == "" {
		file.State = domain.FileQueued
	}
	if file.Platform == "" {
		file.Platform = domain.PlatformUnknown
	}

	query := `INSERT INTO job_files (id, job_id, position, original_name, content_type, file_size,
		storage_bucket, storage_key, state, attempts, platform, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.JobID, file.Position, file.OriginalName, file.ContentType,
		file.FileSize, file.StorageBucket, file.StorageKey, file.State,
		file.Attempts, file.Platform, file.Message, file.CreatedAt, file.UpdatedAt)
	if err != nil {
		return fmt.Errorf("jobFileRepo.Create: %w", err)
	}
	return nil
}

func (r *jobFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobFile, error) {
	var file domain.JobFile
	err := r.db.GetContext(ctx, &file, "SELECT * FROM job_files WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("jobFileRepo.GetByID: %w", err)
	}
	return &file, nil
}

func (r *jobFileRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.JobFile, error) {
	var files []domain.JobFile
	err := r.db.SelectContext(ctx, &files,
		"SELECT * FROM job_files WHERE job_id = $1 ORDER BY position ASC", jobID)
	if err != nil {
		return nil, fmt.Errorf("jobFileRepo.ListByJob: %w", err)
	}
	return files, nil
}

// ClaimQueued moves up to limit queued files of live jobs to processing
// and returns them. SKIP LOCKED keeps concurrent workers from claiming
// the same row; files of cancelled jobs are never picked up.
func (r *jobFileRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.JobFile, error) {
	query := `
		UPDATE job_files SET state = 'processing', attempts = attempts + 1, updated_at = NOW()
		WHERE id IN (
			SELECT f.id FROM job_files f
			JOIN jobs j ON j.id = f.job_id
			WHERE f.state = 'queued' AND j.status NOT IN ('cancelled', 'done', 'error')
			ORDER BY f.created_at ASC, f.position ASC
			LIMIT $1
			FOR UPDATE OF f SKIP LOCKED
		)
		RETURNING *`

	var files []domain.JobFile
	err := r.db.SelectContext(ctx, &files, query, limit)
	if err != nil {
		return nil, fmt.Errorf("jobFileRepo.ClaimQueued: %w", err)
	}
	return files, nil
}

func (r *jobFileRepo) Requeue(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE job_files SET state = 'queued', updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("jobFileRepo.Requeue: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobFileRepo) Finish(ctx context.Context, id uuid.UUID, state domain.FileState, platform domain.Platform, message string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE job_files SET state = $1, platform = $2, message = $3, updated_at = NOW() WHERE id = $4`,
		state, platform, message, id)
	if err != nil {
		return fmt.Errorf("jobFileRepo.Finish: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
