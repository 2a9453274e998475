package mocks

import (
	"github.com/stretchr/testify/mock"

	"qalib/internal/domain"
	"qalib/internal/service"
	"qalib/internal/session"
)

// MockSessionService is a mock implementation of service.SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Start() (*service.SessionStartOutput, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionStartOutput), args.Error(1)
}

func (m *MockSessionService) Resolve(token string) (*session.Session, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionService) Get(sessionID string) (*session.Session, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionService) SaveData(sessionID string, data domain.FlatRecord) (*session.Session, error) {
	args := m.Called(sessionID, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionService) SaveRecord(sessionID string, record *domain.JobDescriptionRecord) (*session.Session, error) {
	args := m.Called(sessionID, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionService) End(sessionID string) {
	m.Called(sessionID)
}
