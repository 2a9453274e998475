package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"qalib/internal/service"
)

// MockFillService is a mock implementation of service.FillService.
type MockFillService struct {
	mock.Mock
}

func (m *MockFillService) Fill(ctx context.Context, input service.FillInput) (*service.FillOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FillOutput), args.Error(1)
}

func (m *MockFillService) FillBatch(ctx context.Context, input service.BatchFillInput) (*service.BatchFillOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchFillOutput), args.Error(1)
}

func (m *MockFillService) Artifact(ctx context.Context, key string) (*service.ArtifactOutput, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArtifactOutput), args.Error(1)
}
