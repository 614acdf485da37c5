package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"peakbridge/internal/domain"
)

// MockJobFileRepo is a mock implementation of port.JobFileRepository.
type MockJobFileRepo struct {
	mock.Mock
}

func (m *MockJobFileRepo) Create(ctx context.Context, file *domain.JobFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockJobFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobFile), args.Error(1)
}

func (m *MockJobFileRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.JobFile, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobFile), args.Error(1)
}

func (m *MockJobFileRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.JobFile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobFile), args.Error(1)
}

func (m *MockJobFileRepo) Requeue(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobFileRepo) Finish(ctx context.Context, id uuid.UUID, state domain.FileState, platform domain.Platform, message string) error {
	args := m.Called(ctx, id, state, platform, message)
	return args.Error(0)
}
