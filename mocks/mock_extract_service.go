package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"qalib/internal/domain"
	"qalib/internal/service"
)

// MockExtractService is a mock implementation of service.ExtractService.
type MockExtractService struct {
	mock.Mock
}

func (m *MockExtractService) Extract(ctx context.Context, input service.ExtractInput) (*service.ExtractResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractResult), args.Error(1)
}

func (m *MockExtractService) Prefill(manual, extracted *domain.JobDescriptionRecord) *domain.JobDescriptionRecord {
	args := m.Called(manual, extracted)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.JobDescriptionRecord)
}
