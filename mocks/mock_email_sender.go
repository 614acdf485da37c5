package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"peakbridge/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendJobFinished(ctx context.Context, toEmail string, job *domain.Job) error {
	args := m.Called(ctx, toEmail, job)
	return args.Error(0)
}
