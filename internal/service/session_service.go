package service

import (
	"fmt"
	"time"

	"qalib/internal/domain"
	"qalib/internal/session"
)

// SessionStartOutput is the DTO returned when a session is opened.
type SessionStartOutput struct {
	Session   *session.Session `json:"session"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// SessionService defines the working-session contract. Tokens are anonymous
// capability tokens: holding one grants access to exactly one session.
type SessionService interface {
	Start() (*SessionStartOutput, error)
	Resolve(token string) (*session.Session, error)
	Get(sessionID string) (*session.Session, error)
	SaveData(sessionID string, data domain.FlatRecord) (*session.Session, error)
	SaveRecord(sessionID string, record *domain.JobDescriptionRecord) (*session.Session, error)
	End(sessionID string)
}

type sessionService struct {
	store  *session.Store
	issuer *session.TokenIssuer
}

// NewSessionService creates a new SessionService implementation.
func NewSessionService(store *session.Store, issuer *session.TokenIssuer) SessionService {
	return &sessionService{store: store, issuer: issuer}
}

func (s *sessionService) Start() (*SessionStartOutput, error) {
	sess := s.store.Create()
	token, expiresAt, err := s.issuer.Issue(sess.ID)
	if err != nil {
		s.store.Delete(sess.ID)
		return nil, fmt.Errorf("session.Start: %w", err)
	}
	return &SessionStartOutput{Session: sess, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *sessionService) Resolve(token string) (*session.Session, error) {
	claims, err := s.issuer.Validate(token)
	if err != nil {
		return nil, err
	}
	return s.store.Get(claims.SessionID)
}

func (s *sessionService) Get(sessionID string) (*session.Session, error) {
	return s.store.Get(sessionID)
}

func (s *sessionService) SaveData(sessionID string, data domain.FlatRecord) (*session.Session, error) {
	return s.store.Update(sessionID, func(sess *session.Session) {
		if sess.Data == nil {
			sess.Data = domain.FlatRecord{}
		}
		sess.Data = sess.Data.Merge(data)
	})
}

func (s *sessionService) SaveRecord(sessionID string, record *domain.JobDescriptionRecord) (*session.Session, error) {
	return s.store.Update(sessionID, func(sess *session.Session) {
		sess.Record = record
	})
}

func (s *sessionService) End(sessionID string) {
	s.store.Delete(sessionID)
}
