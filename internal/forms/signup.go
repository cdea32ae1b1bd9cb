package forms

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/isdelr/pixelgram/internal/actions"
	"github.com/isdelr/pixelgram/internal/models"
	"github.com/rs/zerolog/log"
)

// ErrNotAnImage is returned when avatar data is not a recognised image.
var ErrNotAnImage = errors.New("avatar must be an image")

var signUpMessages = map[string]string{
	"name":           "Name is required",
	"nameId":         "Username is required",
	"email.required": "Email is required",
	"email":          "Invalid email address",
	"password":       "Password must be at least 6 characters",
}

// SignUpForm submits a registration profile.
type SignUpForm struct {
	auth     Authenticator
	nav      Navigator
	inFlight inFlight
}

// NewSignUpForm creates a SignUpForm.
func NewSignUpForm(auth Authenticator, nav Navigator) *SignUpForm {
	return &SignUpForm{auth: auth, nav: nav}
}

// ValidateProfile checks a profile against the registration schema.
func ValidateProfile(profile models.RegistrationProfile) error {
	return check(profile, signUpMessages)
}

// Submit validates profile, registers and navigates to the landing route on
// success. Failures are logged. The returned error is non-nil only when
// nothing was dispatched.
func (f *SignUpForm) Submit(ctx context.Context, profile models.RegistrationProfile) (actions.Result, error) {
	if !f.inFlight.acquire() {
		return actions.Result{}, ErrSubmissionInFlight
	}
	defer f.inFlight.release()

	profile.Name = strings.TrimSpace(profile.Name)
	profile.NameID = strings.TrimSpace(profile.NameID)
	profile.Email = strings.TrimSpace(profile.Email)
	if err := ValidateProfile(profile); err != nil {
		return actions.Result{}, err
	}

	res := f.auth.Register(ctx, profile)
	if !res.OK() {
		log.Error().Err(res.Err).Str("email", profile.Email).Str("message", res.Message).Msg("Registration failed")
		return res, nil
	}
	f.nav.Navigate(ctx, LandingRoute)
	return res, nil
}

// AvatarDataURL encodes raw image bytes as a data URL. Empty input means no
// avatar and yields nil.
func AvatarDataURL(data []byte) (*string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}
	url := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	return &url, nil
}
