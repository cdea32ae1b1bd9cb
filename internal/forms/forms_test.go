package forms

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/isdelr/pixelgram/internal/actions"
	"github.com/isdelr/pixelgram/internal/models"
	"github.com/isdelr/pixelgram/internal/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	mu       sync.Mutex
	result   actions.Result
	block    chan struct{}
	started  chan struct{}
	logins   []models.Credentials
	profiles []models.RegistrationProfile
}

func (f *fakeAuth) wait() {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeAuth) Login(_ context.Context, creds models.Credentials) actions.Result {
	f.mu.Lock()
	f.logins = append(f.logins, creds)
	f.mu.Unlock()
	f.wait()
	return f.result
}

func (f *fakeAuth) Register(_ context.Context, profile models.RegistrationProfile) actions.Result {
	f.mu.Lock()
	f.profiles = append(f.profiles, profile)
	f.mu.Unlock()
	f.wait()
	return f.result
}

type routes struct {
	visited []string
}

func (r *routes) Navigate(_ context.Context, route string) { r.visited = append(r.visited, route) }

var (
	success = actions.Result{Phase: outcome.Success, Message: "ok"}
	failure = actions.Result{Phase: outcome.Failure, Message: "Invalid credentials"}
)

func TestLoginNavigatesOnSuccess(t *testing.T) {
	auth := &fakeAuth{result: success}
	nav := &routes{}
	form := NewLoginForm(auth, nav)

	res, err := form.Submit(context.Background(), models.Credentials{Email: " a@b.com ", Password: "secret1"})
	require.NoError(t, err)

	assert.True(t, res.OK())
	assert.Equal(t, []string{LandingRoute}, nav.visited)
	require.Len(t, auth.logins, 1)
	assert.Equal(t, "a@b.com", auth.logins[0].Email)
}

func TestLoginStaysOnFailure(t *testing.T) {
	auth := &fakeAuth{result: failure}
	nav := &routes{}
	form := NewLoginForm(auth, nav)

	res, err := form.Submit(context.Background(), models.Credentials{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	assert.False(t, res.OK())
	assert.Equal(t, "Invalid credentials", res.Message)
	assert.Empty(t, nav.visited)
}

func TestLoginValidationBlocksDispatch(t *testing.T) {
	auth := &fakeAuth{result: success}
	nav := &routes{}
	form := NewLoginForm(auth, nav)

	_, err := form.Submit(context.Background(), models.Credentials{Email: "not-an-email", Password: "123"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"email":    "Please enter a valid email",
		"password": "Password must be at least 6 characters long",
	}, verr.Fields)
	assert.Empty(t, auth.logins)
	assert.Empty(t, nav.visited)
}

func TestSubmitRejectsConcurrentDuplicate(t *testing.T) {
	auth := &fakeAuth{result: success, block: make(chan struct{}), started: make(chan struct{})}
	nav := &routes{}
	form := NewLoginForm(auth, nav)
	creds := models.Credentials{Email: "a@b.com", Password: "secret1"}

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background(), creds)
		done <- err
	}()
	<-auth.started

	_, err := form.Submit(context.Background(), creds)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(auth.block)
	require.NoError(t, <-done)
	assert.Len(t, auth.logins, 1)

	// The flag is released once the first submission finishes.
	auth.started = nil
	_, err = form.Submit(context.Background(), creds)
	assert.NoError(t, err)
	assert.Len(t, auth.logins, 2)
}

func TestSignUpWithoutAvatarSendsNull(t *testing.T) {
	auth := &fakeAuth{result: success}
	nav := &routes{}
	form := NewSignUpForm(auth, nav)

	_, err := form.Submit(context.Background(), models.RegistrationProfile{
		Name:     "A",
		NameID:   "a1",
		Email:    "a@b.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.Len(t, auth.profiles, 1)

	payload, err := json.Marshal(auth.profiles[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"A","nameId":"a1","email":"a@b.com","password":"secret1","avatar":null}`, string(payload))
	assert.Equal(t, []string{LandingRoute}, nav.visited)
}

func TestSignUpValidationMessages(t *testing.T) {
	auth := &fakeAuth{result: success}
	form := NewSignUpForm(auth, &routes{})

	_, err := form.Submit(context.Background(), models.RegistrationProfile{Email: "", Password: "short"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"name":     "Name is required",
		"nameId":   "Username is required",
		"email":    "Email is required",
		"password": "Password must be at least 6 characters",
	}, verr.Fields)
	assert.Empty(t, auth.profiles)
	assert.Contains(t, verr.Error(), "email: Email is required")
}

func TestSignUpFailureDoesNotNavigate(t *testing.T) {
	auth := &fakeAuth{result: failure}
	nav := &routes{}
	form := NewSignUpForm(auth, nav)

	res, err := form.Submit(context.Background(), models.RegistrationProfile{Name: "A", NameID: "a1", Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Empty(t, nav.visited)
}

func TestAvatarDataURL(t *testing.T) {
	none, err := AvatarDataURL(nil)
	require.NoError(t, err)
	assert.Nil(t, none)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	url, err := AvatarDataURL(png)
	require.NoError(t, err)
	require.NotNil(t, url)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg==", *url)

	_, err = AvatarDataURL([]byte("plain text, not a picture"))
	assert.ErrorIs(t, err, ErrNotAnImage)
}
