package actions

import (
	"context"
	"fmt"
	"net/http"

	"github.com/isdelr/pixelgram/internal/models"
	"github.com/isdelr/pixelgram/internal/outcome"
)

// Login authenticates with the backend and stores the returned token.
func (d *Dispatcher) Login(ctx context.Context, creds models.Credentials) Result {
	return d.run(ctx, request{
		category: outcome.Login,
		method:   http.MethodPost,
		path:     "/api/v1/user/login",
		body:     creds,
	}, d.storeToken(creds.Email))
}

// Register creates a new account. A token returned by the backend logs the
// user in straight away.
func (d *Dispatcher) Register(ctx context.Context, profile models.RegistrationProfile) Result {
	return d.run(ctx, request{
		category: outcome.Register,
		method:   http.MethodPost,
		path:     "/api/v1/user/register",
		body:     profile,
	}, d.storeToken(profile.Email))
}

func (d *Dispatcher) storeToken(email string) func(response) error {
	return func(resp response) error {
		if d.sessions == nil || resp.Token == "" {
			return nil
		}
		if resp.UserEmail != "" {
			email = resp.UserEmail
		}
		if _, err := d.sessions.SaveSession(email, resp.Token); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return nil
	}
}
