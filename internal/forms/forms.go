// Package forms is the view layer of login and registration: it validates the
// collected input, dispatches the matching action at most once at a time per
// form, and navigates to the landing route when the action succeeds.
package forms

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/isdelr/pixelgram/internal/actions"
	"github.com/isdelr/pixelgram/internal/models"
)

// LandingRoute is where successful logins and registrations navigate to.
const LandingRoute = "/"

// ErrSubmissionInFlight is returned when a form is submitted again before the
// previous submission finished.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Navigator moves the user to another route. ctx is the context the form
// was submitted with.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(ctx context.Context, route string)

// Navigate calls f(ctx, route).
func (f NavigatorFunc) Navigate(ctx context.Context, route string) { f(ctx, route) }

// Authenticator is the part of the action layer the forms depend on.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) actions.Result
	Register(ctx context.Context, profile models.RegistrationProfile) actions.Result
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names, the names the view uses.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// check runs the struct's validation tags and maps failures to messages
// keyed by "field.tag", falling back to "field".
func check(v any, messages map[string]string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := fields[field]; seen {
			continue
		}
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg, ok = messages[field]
		}
		if !ok {
			msg = field + " is invalid"
		}
		fields[field] = msg
	}
	return &ValidationError{Fields: fields}
}

// inFlight is a per-form flag set for the duration of a submission.
type inFlight struct {
	busy atomic.Bool
}

func (f *inFlight) acquire() bool { return f.busy.CompareAndSwap(false, true) }

func (f *inFlight) release() { f.busy.Store(false) }
