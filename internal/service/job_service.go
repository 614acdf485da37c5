package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/google/uuid"

	"peakbridge/internal/config"
	"peakbridge/internal/domain"
	"peakbridge/internal/ingest"
	"peakbridge/internal/peak"
	"peakbridge/internal/port"
)

// UploadFile is one file of an upload batch, streamed from the request.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// CreateJobInput is the DTO for starting a job.
type CreateJobInput struct {
	Files     []UploadFile
	Filter    domain.JobFilter
	CreatedBy uuid.UUID
}

// RowPatch carries a reviewer's field edits, keyed by column key
// ("E_tax_id_13", "R_paid_amount", ...). Unknown keys are ignored.
type RowPatch map[string]string

// JobService owns the lifecycle of upload batches and their rows.
type JobService interface {
	CreateJob(ctx context.Context, input CreateJobInput) (*domain.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	ListJobs(ctx context.Context, offset, limit int) ([]domain.Job, int, error)
	CancelJob(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	ListFiles(ctx context.Context, jobID uuid.UUID) ([]domain.JobFile, error)
	ListRows(ctx context.Context, jobID uuid.UUID) ([]domain.RowRecord, error)
	PatchRow(ctx context.Context, rowID uuid.UUID, patch RowPatch) (*domain.RowRecord, error)
	// ExportRows returns a job's rows in sheet shape: file order,
	// sequence renumbered 1..N.
	ExportRows(ctx context.Context, jobID uuid.UUID) ([]peak.Row, error)
}

type jobService struct {
	jobRepo  port.JobRepository
	fileRepo port.JobFileRepository
	rowRepo  port.RowRepository
	storage  port.ObjectStorage
	bucket   string
	upload   config.UploadConfig
}

// NewJobService creates a new JobService implementation.
func NewJobService(
	jobRepo port.JobRepository,
	fileRepo port.JobFileRepository,
	rowRepo port.RowRepository,
	storage port.ObjectStorage,
	bucket string,
	upload config.UploadConfig,
) JobService {
	return &jobService{
		jobRepo:  jobRepo,
		fileRepo: fileRepo,
		rowRepo:  rowRepo,
		storage:  storage,
		bucket:   bucket,
		upload:   upload,
	}
}

func (s *jobService) CreateJob(ctx context.Context, input CreateJobInput) (*domain.Job, error) {
	if len(input.Files) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if s.upload.MaxFiles > 0 && len(input.Files) > s.upload.MaxFiles {
		return nil, domain.ErrTooManyFiles
	}
	maxBytes := s.upload.MaxFileSizeMB * 1024 * 1024
	for _, f := range input.Files {
		if maxBytes > 0 && f.Size > maxBytes {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileTooLarge, f.Name)
		}
		if !ingest.SupportedContentType(f.ContentType) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, f.Name)
		}
	}

	filterJSON, err := json.Marshal(input.Filter)
	if err != nil {
		return nil, fmt.Errorf("jobService.CreateJob: encoding filter: %w", err)
	}

	job := &domain.Job{
		ID:           uuid.New(),
		Status:       domain.JobProcessing,
		TotalFiles:   len(input.Files),
		FilterConfig: filterJSON,
		CreatedBy:    input.CreatedBy,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("jobService.CreateJob: %w", err)
	}

	for i, f := range input.Files {
		fileID := uuid.New()
		key := fmt.Sprintf("jobs/%s/%s%s", job.ID, fileID, path.Ext(f.Name))
		if _, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.bucket,
			Key:         key,
			Body:        f.Body,
			ContentType: f.ContentType,
			Size:        f.Size,
		}); err != nil {
			return nil, fmt.Errorf("jobService.CreateJob: storing %s: %w", f.Name, err)
		}

		file := &domain.JobFile{
			ID:            fileID,
			JobID:         job.ID,
			Position:      i,
			OriginalName:  f.Name,
			ContentType:   f.ContentType,
			FileSize:      f.Size,
			StorageBucket: s.bucket,
			StorageKey:    key,
			State:         domain.FileQueued,
		}
		if err := s.fileRepo.Create(ctx, file); err != nil {
			return nil, fmt.Errorf("jobService.CreateJob: queuing %s: %w", f.Name, err)
		}
	}

	log.Printf("jobService.CreateJob: job %s queued with %d files", job.ID, len(input.Files))
	return job, nil
}

func (s *jobService) GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return s.jobRepo.GetByID(ctx, id)
}

func (s *jobService) ListJobs(ctx context.Context, offset, limit int) ([]domain.Job, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.jobRepo.List(ctx, offset, limit)
}

func (s *jobService) CancelJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status.IsTerminal() {
		return nil, domain.ErrJobFinished
	}
	if err := s.jobRepo.UpdateStatus(ctx, id, domain.JobCancelled); err != nil {
		return nil, fmt.Errorf("jobService.CancelJob: %w", err)
	}
	log.Printf("jobService.CancelJob: job %s cancelled", id)
	return s.jobRepo.GetByID(ctx, id)
}

func (s *jobService) ListFiles(ctx context.Context, jobID uuid.UUID) ([]domain.JobFile, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.fileRepo.ListByJob(ctx, jobID)
}

func (s *jobService) ListRows(ctx context.Context, jobID uuid.UUID) ([]domain.RowRecord, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.rowRepo.ListByJob(ctx, jobID)
}

// PatchRow applies reviewer edits to a stored row, re-runs the format
// rules and recomputes the review status. Edits never touch metadata.
func (s *jobService) PatchRow(ctx context.Context, rowID uuid.UUID, patch RowPatch) (*domain.RowRecord, error) {
	rec, err := s.rowRepo.GetByID(ctx, rowID)
	if err != nil {
		return nil, err
	}
	if rec.Status == domain.RowError {
		// An ERROR row has no extracted data to edit.
		return nil, fmt.Errorf("%w: row has no extracted data", domain.ErrValidation)
	}

	var data map[string]string
	if err := json.Unmarshal(rec.RowData, &data); err != nil {
		return nil, fmt.Errorf("jobService.PatchRow: decoding row data: %w", err)
	}
	known := map[string]bool{}
	for _, c := range peak.Columns {
		known[c.Key] = true
	}
	for k, v := range patch {
		if known[k] {
			data[k] = v
		}
	}

	row := peak.FromMap(data).Normalized()
	problems := row.Problems()
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, problems)
	}

	rowJSON, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("jobService.PatchRow: encoding row: %w", err)
	}
	rec.RowData = rowJSON
	if row.NeedsReview() {
		rec.Status = domain.RowNeedsReview
	} else {
		rec.Status = domain.RowOK
	}
	rec.Errors = []byte("[]")
	rec.UpdatedAt = time.Now().UTC()

	if err := s.rowRepo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("jobService.PatchRow: %w", err)
	}
	return rec, nil
}

func (s *jobService) ExportRows(ctx context.Context, jobID uuid.UUID) ([]peak.Row, error) {
	records, err := s.ListRows(ctx, jobID)
	if err != nil {
		return nil, err
	}

	rows := make([]peak.Row, 0, len(records))
	for _, rec := range records {
		if rec.Status == domain.RowError {
			continue
		}
		var row peak.Row
		if err := json.Unmarshal(rec.RowData, &row); err != nil {
			return nil, fmt.Errorf("jobService.ExportRows: decoding row %s: %w", rec.ID, err)
		}
		rows = append(rows, row)
	}
	// The sheet wants a dense 1..N sequence regardless of what
	// extraction produced.
	for i := range rows {
		rows[i].Seq = fmt.Sprintf("%d", i+1)
	}
	return rows, nil
}

// IsTransient reports whether a worker failure is worth retrying.
// Storage and DB hiccups are; extraction itself never fails.
func IsTransient(err error) bool {
	return err != nil && !errors.Is(err, domain.ErrNotFound)
}
