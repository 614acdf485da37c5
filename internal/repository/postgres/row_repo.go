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

type rowRepo struct {
	db *sqlx.DB
}

// NewRowRepo creates a new PostgreSQL-backed RowRepository.
func NewRowRepo(db *sqlx.DB) port.RowRepository {
	return &rowRepo{db: db}
}

func (r *rowRepo) Create(ctx context.Context, row *domain.RowRecord) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now
	if len(row.Errors) == 0 {
		row.Errors = []byte("[]")
	}

	query := `INSERT INTO rows (id, job_id, file_id, seq, platform, status, source_file,
		row_data, errors, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.JobID, row.FileID, row.Seq, row.Platform, row.Status,
		row.SourceFile, row.RowData, row.Errors, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("rowRepo.Create: %w", err)
	}
	return nil
}

func (r *rowRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RowRecord, error) {
	var row domain.RowRecord
	err := r.db.GetContext(ctx, &row, "SELECT * FROM rows WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("rowRepo.GetByID: %w", err)
	}
	return &row, nil
}

func (r *rowRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.RowRecord, error) {
	var rows []domain.RowRecord
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM rows WHERE job_id = $1 ORDER BY seq ASC, created_at ASC", jobID)
	if err != nil {
		return nil, fmt.Errorf("rowRepo.ListByJob: %w", err)
	}
	return rows, nil
}

// DeleteByFile clears a file's rows before a retry re-extracts them.
func (r *rowRepo) DeleteByFile(ctx context.Context, fileID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM rows WHERE file_id = $1", fileID)
	if err != nil {
		return fmt.Errorf("rowRepo.DeleteByFile: %w", err)
	}
	return nil
}

func (r *rowRepo) Update(ctx context.Context, row *domain.RowRecord) error {
	row.UpdatedAt = time.Now().UTC()
	query := `UPDATE rows SET status = $1, row_data = $2, errors = $3, updated_at = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		row.Status, row.RowData, row.Errors, row.UpdatedAt, row.ID)
	if err != nil {
		return fmt.Errorf("rowRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
