package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"peakbridge/internal/domain"
)

// MockRowRepo is a mock implementation of port.RowRepository.
type MockRowRepo struct {
	mock.Mock
}

func (m *MockRowRepo) Create(ctx context.Context, row *domain.RowRecord) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockRowRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RowRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RowRecord), args.Error(1)
}

func (m *MockRowRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.RowRecord, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RowRecord), args.Error(1)
}

func (m *MockRowRepo) DeleteByFile(ctx context.Context, fileID uuid.UUID) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}

func (m *MockRowRepo) Update(ctx context.Context, row *domain.RowRecord) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}
