package port

import (
	"context"

	"peakbridge/internal/domain"
)

// EmailSender defines the contract for job-completion notifications.
type EmailSender interface {
	SendJobFinished(ctx context.Context, toEmail string, job *domain.Job) error
}
