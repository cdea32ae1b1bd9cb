package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/pixelgram/internal/models"
)

// SessionServiceProvider defines the interface for session services.
type SessionServiceProvider interface {
	SaveSession(email, token string) (models.Session, error)
	CurrentSession() (*models.Session, error)
	ClearSession() error
}

// SessionService stores the logged-in user's token. Only the most recent
// session is kept.
type SessionService struct {
	db *sql.DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *sql.DB) *SessionService {
	return &SessionService{db: db}
}

// SaveSession replaces any existing session with a new one.
func (s *SessionService) SaveSession(email, token string) (models.Session, error) {
	session := models.Session{
		ID:        uuid.New().String(),
		Email:     email,
		Token:     token,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Session{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sessions"); err != nil {
		return models.Session{}, fmt.Errorf("failed to clear previous session: %w", err)
	}
	_, err = tx.Exec("INSERT INTO sessions(id, email, token, created_at) VALUES(?, ?, ?, ?)",
		session.ID, session.Email, session.Token, session.CreatedAt.UnixMilli())
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to insert session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// CurrentSession returns the stored session, or nil when nobody is logged in.
func (s *SessionService) CurrentSession() (*models.Session, error) {
	var session models.Session
	var createdAt int64
	row := s.db.QueryRow("SELECT id, email, token, created_at FROM sessions ORDER BY created_at DESC LIMIT 1")
	err := row.Scan(&session.ID, &session.Email, &session.Token, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	session.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &session, nil
}

// ClearSession logs the user out locally.
func (s *SessionService) ClearSession() error {
	_, err := s.db.Exec("DELETE FROM sessions")
	return err
}
