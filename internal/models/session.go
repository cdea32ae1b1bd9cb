package models

import "time"

// Session is the locally stored login of the current user.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Token     string    `json:"-"` // Never expose this to the view
	CreatedAt time.Time `json:"createdAt"`
}
