// Package outcome holds the three-phase signals emitted by actions and the
// process-wide store that keeps the latest signal per action category.
//
// Every action invocation emits a Pending signal followed by exactly one
// terminal signal (Success or Failure). All signals of one invocation share an
// InvocationID, so consumers of the broadcast can correlate them.
package outcome

import "time"

// Phase is the stage of an action invocation.
type Phase string

const (
	Pending Phase = "pending"
	Success Phase = "success"
	Failure Phase = "failure"
)

// Category names a family of actions, e.g. every like invocation.
type Category string

const (
	Like          Category = "like"
	AddComment    Category = "addComment"
	DeleteComment Category = "deleteComment"
	NewPost       Category = "newPost"
	UpdateCaption Category = "updateCaption"
	DeletePost    Category = "deletePost"
	Login         Category = "login"
	Register      Category = "register"
)

// Categories lists every known category in a stable order.
var Categories = []Category{Like, AddComment, DeleteComment, NewPost, UpdateCaption, DeletePost, Login, Register}

// Type returns the signal type name for the phase, e.g. "likeRequest".
func (c Category) Type(p Phase) string {
	switch p {
	case Pending:
		return string(c) + "Request"
	case Success:
		return string(c) + "Success"
	default:
		return string(c) + "Failure"
	}
}

// Signal is a single outcome notification.
type Signal struct {
	Type         string    `json:"type"`
	Category     Category  `json:"category"`
	Phase        Phase     `json:"phase"`
	Payload      string    `json:"payload,omitempty"`
	InvocationID string    `json:"invocationId"`
	At           time.Time `json:"at"`
}

// New builds a signal stamped with the current time.
func New(category Category, phase Phase, invocationID, payload string) Signal {
	return Signal{
		Type:         category.Type(phase),
		Category:     category,
		Phase:        phase,
		Payload:      payload,
		InvocationID: invocationID,
		At:           time.Now().UTC(),
	}
}

// Terminal reports whether the signal ends its invocation.
func (s Signal) Terminal() bool {
	return s.Phase == Success || s.Phase == Failure
}

// Sink receives signals.
type Sink interface {
	Emit(Signal)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Signal)

// Emit calls f(s).
func (f SinkFunc) Emit(s Signal) { f(s) }
