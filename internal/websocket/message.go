package websocket

import (
	"encoding/json"

	"github.com/isdelr/pixelgram/internal/outcome"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewOutcomeMessage wraps an outcome signal for the browser.
func NewOutcomeMessage(sig outcome.Signal) []byte {
	b, _ := json.Marshal(Message{Action: "outcome", Payload: sig})
	return b
}

// NewErrorMessage builds an error notification for a single client.
func NewErrorMessage(msg string) []byte {
	b, _ := json.Marshal(Message{Action: "error", Payload: map[string]string{"message": msg}})
	return b
}
