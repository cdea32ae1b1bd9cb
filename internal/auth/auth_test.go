package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/isdelr/pixelgram/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSessions struct {
	session *models.Session
	err     error
}

func (s staticSessions) CurrentSession() (*models.Session, error) { return s.session, s.err }

func signToken(t *testing.T, expires time.Time) string {
	t.Helper()
	claims := &Claims{
		UserID:   "u1",
		Username: "ada",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestAuthHeaderBearer(t *testing.T) {
	token := signToken(t, time.Now().Add(time.Hour))
	p := NewSessionProvider(staticSessions{session: &models.Session{Token: token}})

	header, err := p.AuthHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+token, header)
}

func TestAuthHeaderOpaqueToken(t *testing.T) {
	p := NewSessionProvider(staticSessions{session: &models.Session{Token: "opaque-token"}})

	header, err := p.AuthHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer opaque-token", header)
}

func TestAuthHeaderExpired(t *testing.T) {
	token := signToken(t, time.Now().Add(-time.Minute))
	p := NewSessionProvider(staticSessions{session: &models.Session{Token: token}})

	_, err := p.AuthHeader(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestAuthHeaderNoSession(t *testing.T) {
	p := NewSessionProvider(staticSessions{})

	_, err := p.AuthHeader(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestAuthHeaderSourceError(t *testing.T) {
	boom := errors.New("disk on fire")
	p := NewSessionProvider(staticSessions{err: boom})

	_, err := p.AuthHeader(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestParseClaims(t *testing.T) {
	claims, err := ParseClaims(signToken(t, time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ada", claims.Username)

	_, err = ParseClaims("not-a-jwt")
	assert.Error(t, err)
}
