package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/pixelgram/internal/models"
	"github.com/isdelr/pixelgram/internal/outcome"
	"github.com/rs/zerolog/log"
)

// ActivityServiceProvider defines the interface for activity services.
type ActivityServiceProvider interface {
	RecordOutcome(sig outcome.Signal) error
	GetRecentActivity(limit int) ([]models.Activity, error)
	PruneBefore(cutoff time.Time) (int64, error)
}

// ActivityService keeps a history of terminal action outcomes.
type ActivityService struct {
	db *sql.DB
}

// NewActivityService creates a new ActivityService.
func NewActivityService(db *sql.DB) *ActivityService {
	return &ActivityService{db: db}
}

// RecordOutcome stores a terminal signal. Pending signals are ignored.
func (s *ActivityService) RecordOutcome(sig outcome.Signal) error {
	if !sig.Terminal() {
		return nil
	}

	at := sig.At
	if at.IsZero() {
		at = time.Now()
	}

	stmt, err := s.db.Prepare("INSERT INTO activity (id, invocation_id, category, phase, message, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(uuid.New().String(), sig.InvocationID, string(sig.Category), string(sig.Phase), sig.Payload, at.UnixMilli())
	return err
}

// Observe is an outcome store subscriber that records terminal signals.
func (s *ActivityService) Observe(sig outcome.Signal) {
	if err := s.RecordOutcome(sig); err != nil {
		log.Error().Err(err).Str("invocation_id", sig.InvocationID).Msg("Failed to record activity")
	}
}

// GetRecentActivity retrieves the most recent outcomes, newest first.
func (s *ActivityService) GetRecentActivity(limit int) ([]models.Activity, error) {
	rows, err := s.db.Query("SELECT id, invocation_id, category, phase, message, created_at FROM activity ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activity []models.Activity
	for rows.Next() {
		var a models.Activity
		var message sql.NullString
		var createdAt int64
		if err := rows.Scan(&a.ID, &a.InvocationID, &a.Category, &a.Phase, &message, &createdAt); err != nil {
			return nil, err
		}
		a.Message = message.String
		a.CreatedAt = time.UnixMilli(createdAt).UTC()
		activity = append(activity, a)
	}
	return activity, rows.Err()
}

// PruneBefore deletes outcomes recorded before cutoff.
func (s *ActivityService) PruneBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM activity WHERE created_at < ?", cutoff.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
