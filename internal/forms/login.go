package forms

import (
	"context"
	"strings"

	"github.com/isdelr/pixelgram/internal/actions"
	"github.com/isdelr/pixelgram/internal/models"
	"github.com/rs/zerolog/log"
)

var loginMessages = map[string]string{
	"email":    "Please enter a valid email",
	"password": "Password must be at least 6 characters long",
}

// LoginForm submits credentials.
type LoginForm struct {
	auth     Authenticator
	nav      Navigator
	inFlight inFlight
}

// NewLoginForm creates a LoginForm.
func NewLoginForm(auth Authenticator, nav Navigator) *LoginForm {
	return &LoginForm{auth: auth, nav: nav}
}

// ValidateCredentials checks credentials against the login schema.
func ValidateCredentials(creds models.Credentials) error {
	return check(creds, loginMessages)
}

// Submit validates creds, logs in and navigates to the landing route on
// success. The returned error is non-nil only when nothing was dispatched.
func (f *LoginForm) Submit(ctx context.Context, creds models.Credentials) (actions.Result, error) {
	if !f.inFlight.acquire() {
		return actions.Result{}, ErrSubmissionInFlight
	}
	defer f.inFlight.release()

	creds.Email = strings.TrimSpace(creds.Email)
	if err := ValidateCredentials(creds); err != nil {
		return actions.Result{}, err
	}

	res := f.auth.Login(ctx, creds)
	if !res.OK() {
		log.Warn().Str("email", creds.Email).Str("message", res.Message).Msg("Login failed")
		return res, nil
	}
	f.nav.Navigate(ctx, LandingRoute)
	return res, nil
}
