package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/isdelr/pixelgram/internal/models"
)

var (
	// ErrNoSession is returned when an authenticated call is made before login.
	ErrNoSession = errors.New("you are not logged in")
	// ErrSessionExpired is returned when the stored token is past its expiry.
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// Claims defines the JWT claims issued by the backend.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Provider supplies the Authorization header value for authenticated requests.
type Provider interface {
	AuthHeader(ctx context.Context) (string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (string, error)

// AuthHeader calls f(ctx).
func (f ProviderFunc) AuthHeader(ctx context.Context) (string, error) { return f(ctx) }

// SessionSource returns the current session, or nil when nobody is logged in.
type SessionSource interface {
	CurrentSession() (*models.Session, error)
}

// SessionProvider builds bearer headers from the locally stored session.
type SessionProvider struct {
	sessions SessionSource
	now      func() time.Time
}

// NewSessionProvider creates a SessionProvider backed by sessions.
func NewSessionProvider(sessions SessionSource) *SessionProvider {
	return &SessionProvider{sessions: sessions, now: time.Now}
}

// AuthHeader returns "Bearer <token>" for the current session.
func (p *SessionProvider) AuthHeader(ctx context.Context) (string, error) {
	session, err := p.sessions.CurrentSession()
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if session == nil || session.Token == "" {
		return "", ErrNoSession
	}

	// Opaque (non-JWT) tokens are passed through; the backend decides.
	if claims, err := ParseClaims(session.Token); err == nil && claims.ExpiresAt != nil {
		if !claims.ExpiresAt.Time.After(p.now()) {
			return "", ErrSessionExpired
		}
	}
	return "Bearer " + session.Token, nil
}

// ParseClaims decodes the claims of a JWT without verifying its signature.
// The signing key belongs to the backend; the client only reads the claims.
func ParseClaims(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
