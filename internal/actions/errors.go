package actions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/isdelr/pixelgram/internal/auth"
)

const (
	// GenericFailureMessage is reported when no better message is available.
	GenericFailureMessage = "something went wrong, please try again"
	// TransportFailureMessage is reported when no response was obtained.
	TransportFailureMessage = "unable to reach the server"

	maxTextMessage = 200
)

// ErrMissingID is returned when a post or comment identifier is empty.
var ErrMissingID = errors.New("an identifier is required")

// ServerRejection is a response received with a non-2xx status.
type ServerRejection struct {
	Status  int
	Message string
}

func (e *ServerRejection) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// TransportFailure means no response was obtained at all.
type TransportFailure struct {
	Err error
}

func (e *TransportFailure) Error() string {
	return fmt.Sprintf("%s: %v", TransportFailureMessage, e.Err)
}

func (e *TransportFailure) Unwrap() error { return e.Err }

// FailureMessage returns the user-facing message for err. It never fails,
// whatever shape the error has.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}

	var rejection *ServerRejection
	if errors.As(err, &rejection) {
		return rejection.Error()
	}

	var transport *TransportFailure
	if errors.As(err, &transport) {
		return TransportFailureMessage
	}

	switch {
	case errors.Is(err, auth.ErrNoSession):
		return auth.ErrNoSession.Error()
	case errors.Is(err, auth.ErrSessionExpired):
		return auth.ErrSessionExpired.Error()
	case errors.Is(err, ErrMissingID):
		return ErrMissingID.Error()
	}
	return GenericFailureMessage
}

// extractMessage reads the message of an error body. JSON bodies are expected
// to carry a "message" field; short plain-text bodies are used verbatim.
func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
		return payload.Message
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "<") {
		return ""
	}
	if len(trimmed) > maxTextMessage || !utf8.ValidString(trimmed) {
		return ""
	}
	return trimmed
}
