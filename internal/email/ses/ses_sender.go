package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"peakbridge/internal/domain"
	"peakbridge/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendJobFinished(ctx context.Context, toEmail string, job *domain.Job) error {
	subject := fmt.Sprintf("PeakBridge job %s finished: %d ok, %d review, %d error",
		shortID(job.ID.String()), job.OKFiles, job.ReviewFiles, job.ErrorFiles)
	htmlBody := buildJobFinishedHTML(job)
	textBody := fmt.Sprintf(
		"Job %s finished with status %s.\n\nFiles: %d\nOK: %d\nNeeds review: %d\nError: %d\n\nPeakBridge",
		job.ID, job.Status, job.TotalFiles, job.OKFiles, job.ReviewFiles, job.ErrorFiles)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func buildJobFinishedHTML(job *domain.Job) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Import batch finished</h2>
  <p>Job <code>%s</code> finished with status <strong>%s</strong>.</p>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px;">Files</td><td style="padding: 4px 12px;">%d</td></tr>
    <tr><td style="padding: 4px 12px;">OK</td><td style="padding: 4px 12px;">%d</td></tr>
    <tr><td style="padding: 4px 12px;">Needs review</td><td style="padding: 4px 12px;">%d</td></tr>
    <tr><td style="padding: 4px 12px;">Error</td><td style="padding: 4px 12px;">%d</td></tr>
  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">PeakBridge - PEAK Import Automation</p>
</body>
</html>`, job.ID, job.Status, job.TotalFiles, job.OKFiles, job.ReviewFiles, job.ErrorFiles)
}
