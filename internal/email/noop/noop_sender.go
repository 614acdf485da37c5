package noop

import (
	"context"
	"log"

	"peakbridge/internal/domain"
	"peakbridge/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs job summaries to
// stdout instead of sending anything.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendJobFinished(_ context.Context, toEmail string, job *domain.Job) error {
	log.Printf("[NOOP EMAIL] job %s finished (%s) for %s: %d files, %d ok, %d review, %d error",
		job.ID, job.Status, toEmail, job.TotalFiles, job.OKFiles, job.ReviewFiles, job.ErrorFiles)
	return nil
}
