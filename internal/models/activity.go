package models

import "time"

// Activity is a persisted terminal outcome of an action invocation.
type Activity struct {
	ID           string    `json:"id"`
	InvocationID string    `json:"invocationId"`
	Category     string    `json:"category"` // e.g., "like", "deletePost"
	Phase        string    `json:"phase"`    // "success" or "failure"
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}
