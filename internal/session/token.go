package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"qalib/internal/config"
	"qalib/internal/domain"
)

// Claims are the JWT claims carried by a session token. The session ID
// doubles as the subject.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"session_id"`
}

// TokenIssuer mints and validates HS256 session tokens.
type TokenIssuer struct {
	cfg config.SessionConfig
	now func() time.Time
}

// NewTokenIssuer creates a TokenIssuer from session config.
func NewTokenIssuer(cfg config.SessionConfig) *TokenIssuer {
	return &TokenIssuer{cfg: cfg, now: time.Now}
}

// Issue signs a token bound to the given session ID.
func (t *TokenIssuer) Issue(sessionID string) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.cfg.TTL)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    t.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(t.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses a token string and returns its claims.
func (t *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(t.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionInvalid, err)
	}
	if !token.Valid {
		return nil, domain.ErrSessionInvalid
	}
	if claims.Issuer != t.cfg.Issuer {
		return nil, fmt.Errorf("%w: unexpected issuer", domain.ErrSessionInvalid)
	}
	if claims.SessionID == "" {
		return nil, fmt.Errorf("%w: missing session binding", domain.ErrSessionInvalid)
	}
	return claims, nil
}
