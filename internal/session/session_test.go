package session_test

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qalib/internal/config"
	"qalib/internal/domain"
	"qalib/internal/session"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := session.NewStore(time.Hour)

	sess := store.Create()
	assert.NotEmpty(t, sess.ID)
	assert.True(t, sess.ExpiresAt.After(sess.CreatedAt))

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
}

func TestStoreGetUnknown(t *testing.T) {
	store := session.NewStore(time.Hour)
	_, err := store.Get("missing")
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
}

func TestStoreUpdate(t *testing.T) {
	store := session.NewStore(time.Hour)
	sess := store.Create()

	updated, err := store.Update(sess.ID, func(s *session.Session) {
		s.Data = domain.FlatRecord{"name": "Omar"}
		s.Record = &domain.JobDescriptionRecord{JobTitle: "مهندس"}
	})
	require.NoError(t, err)
	assert.Equal(t, "Omar", updated.Data["name"])

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Record)
	assert.Equal(t, "مهندس", got.Record.JobTitle)
}

func TestStoreGetReturnsSnapshot(t *testing.T) {
	store := session.NewStore(time.Hour)
	sess := store.Create()

	_, err := store.Update(sess.ID, func(s *session.Session) {
		s.Data = domain.FlatRecord{"name": "Omar"}
	})
	require.NoError(t, err)

	before, err := store.Get(sess.ID)
	require.NoError(t, err)

	_, err = store.Update(sess.ID, func(s *session.Session) {
		s.Data = s.Data.Merge(domain.FlatRecord{"role": "Engineer"})
	})
	require.NoError(t, err)

	// The earlier snapshot is isolated from later updates.
	assert.Equal(t, domain.FlatRecord{"name": "Omar"}, before.Data)

	after, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", after.Data["role"])
}

func TestStoreConcurrentGetAndUpdate(t *testing.T) {
	store := session.NewStore(time.Hour)
	sess := store.Create()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				_, err := store.Update(sess.ID, func(s *session.Session) {
					s.Data = s.Data.Merge(domain.FlatRecord{"k": "v"})
					s.Record = &domain.JobDescriptionRecord{JobTitle: "مهندس"}
				})
				assert.NoError(t, err)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				got, err := store.Get(sess.ID)
				if assert.NoError(t, err) {
					_, err = json.Marshal(got)
					assert.NoError(t, err)
				}
			}
		}()
	}
	wg.Wait()
}

func TestStoreExpiry(t *testing.T) {
	store := session.NewStore(-time.Second)
	sess := store.Create()

	_, err := store.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
	// Expired session was evicted on access.
	assert.Equal(t, 0, store.Len())
}

func TestStoreDeleteAndSweep(t *testing.T) {
	store := session.NewStore(-time.Second)
	store.Create()
	store.Create()
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 2, store.Sweep())
	assert.Equal(t, 0, store.Len())

	live := session.NewStore(time.Hour)
	sess := live.Create()
	live.Delete(sess.ID)
	assert.Equal(t, 0, live.Len())
}

func TestTokenIssueAndValidate(t *testing.T) {
	issuer := session.NewTokenIssuer(config.SessionConfig{
		Secret: "test-secret",
		TTL:    time.Hour,
		Issuer: "qalib",
	})

	token, expiresAt, err := issuer.Issue("sess-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-123", claims.SessionID)
	assert.Equal(t, "sess-123", claims.Subject)
}

func TestTokenValidateWrongSecret(t *testing.T) {
	issuer := session.NewTokenIssuer(config.SessionConfig{Secret: "one", TTL: time.Hour, Issuer: "qalib"})
	other := session.NewTokenIssuer(config.SessionConfig{Secret: "two", TTL: time.Hour, Issuer: "qalib"})

	token, _, err := issuer.Issue("sess-123")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
}

func TestTokenValidateExpired(t *testing.T) {
	issuer := session.NewTokenIssuer(config.SessionConfig{Secret: "s", TTL: -time.Minute, Issuer: "qalib"})
	token, _, err := issuer.Issue("sess-123")
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
}

func TestTokenValidateGarbage(t *testing.T) {
	issuer := session.NewTokenIssuer(config.SessionConfig{Secret: "s", TTL: time.Hour, Issuer: "qalib"})
	_, err := issuer.Validate("not-a-token")
	assert.ErrorIs(t, err, domain.ErrSessionInvalid)
}
