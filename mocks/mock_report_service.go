package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"qalib/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) RenderPDF(ctx context.Context, record *domain.JobDescriptionRecord) ([]byte, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportService) RenderDOCX(ctx context.Context, record *domain.JobDescriptionRecord) ([]byte, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportService) Template(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
