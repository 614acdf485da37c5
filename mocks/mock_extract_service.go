package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"peakbridge/internal/domain"
	"peakbridge/internal/service"
)

// MockExtractService is a mock implementation of service.ExtractService.
type MockExtractService struct {
	mock.Mock
}

func (m *MockExtractService) ExtractDocument(ctx context.Context, text, filename string, filter domain.JobFilter) *service.ExtractOutcome {
	args := m.Called(ctx, text, filename, filter)
	return args.Get(0).(*service.ExtractOutcome)
}
