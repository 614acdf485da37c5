package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an operator login for the review API.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Job represents one upload batch moving through the extraction queue.
// Counters are recomputed from job_files after every file so they stay
// correct across worker restarts.
type Job struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Status         JobStatus       `db:"status" json:"status"`
	TotalFiles     int             `db:"total_files" json:"total_files"`
	ProcessedFiles int             `db:"processed_files" json:"processed_files"`
	OKFiles        int             `db:"ok_files" json:"ok_files"`
	ReviewFiles    int             `db:"review_files" json:"review_files"`
	ErrorFiles     int             `db:"error_files" json:"error_files"`
	FilterConfig   json.RawMessage `db:"filter_config" json:"filter_config"`
	CreatedBy      uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
	FinishedAt     *time.Time      `db:"finished_at" json:"finished_at"`
}

// JobFilter restricts which documents a job accepts. Empty slices allow
// everything; a mismatch forces the extracted row to NEEDS_REVIEW rather
// than discarding the document.
type JobFilter struct {
	Companies []string `json:"companies,omitempty"`
	Platforms []string `json:"platforms,omitempty"`
}

// JobFile represents a single uploaded document inside a job.
type JobFile struct {
	ID            uuid.UUID `db:"id" json:"id"`
	JobID         uuid.UUID `db:"job_id" json:"job_id"`
	Position      int       `db:"position" json:"position"`
	OriginalName  string    `db:"original_name" json:"original_name"`
	ContentType   string    `db:"content_type" json:"content_type"`
	FileSize      int64     `db:"file_size" json:"file_size"`
	StorageBucket string    `db:"storage_bucket" json:"-"`
	StorageKey    string    `db:"storage_key" json:"-"`
	State         FileState `db:"state" json:"state"`
	Attempts      int       `db:"attempts" json:"attempts"`
	Platform      Platform  `db:"platform" json:"platform"`
	Message       string    `db:"message" json:"message"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// RowRecord persists one extracted ledger row. RowData holds the canonical
// 21-field row as JSON so field edits and exports share a single shape.
type RowRecord struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	JobID      uuid.UUID       `db:"job_id" json:"job_id"`
	FileID     uuid.UUID       `db:"file_id" json:"file_id"`
	Seq        int             `db:"seq" json:"seq"`
	Platform   Platform        `db:"platform" json:"platform"`
	Status     RowStatus       `db:"status" json:"status"`
	SourceFile string          `db:"source_file" json:"source_file"`
	RowData    json.RawMessage `db:"row_data" json:"row_data"`
	Errors     json.RawMessage `db:"errors" json:"errors"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}
