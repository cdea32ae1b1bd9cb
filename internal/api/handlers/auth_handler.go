package handlers

import (
	"errors"
	"io"
	"net/http"
	"sort"

	"github.com/isdelr/pixelgram/internal/forms"
	"github.com/isdelr/pixelgram/internal/models"
	"github.com/isdelr/pixelgram/internal/outcome"
	"github.com/isdelr/pixelgram/internal/services"
	"github.com/rs/zerolog/log"
)

const maxAvatarBytes = 5 << 20

// ErrAvatarTooLarge is reported for uploads above maxAvatarBytes.
var ErrAvatarTooLarge = errors.New("avatar is too large")

// AuthHandler serves the landing, login and registration pages.
type AuthHandler struct {
	login    *forms.LoginForm
	signUp   *forms.SignUpForm
	sessions services.SessionServiceProvider
	activity services.ActivityServiceProvider
	store    *outcome.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(login *forms.LoginForm, signUp *forms.SignUpForm, sessions services.SessionServiceProvider, activity services.ActivityServiceProvider, store *outcome.Store) *AuthHandler {
	return &AuthHandler{
		login:    login,
		signUp:   signUp,
		sessions: sessions,
		activity: activity,
		store:    store,
	}
}

// Home renders the landing page.
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.CurrentSession()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load session")
	}
	recent, err := h.activity.GetRecentActivity(10)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load recent activity")
	}

	snapshot := h.store.Snapshot()
	latest := make([]outcome.Signal, 0, len(snapshot))
	for _, sig := range snapshot {
		latest = append(latest, sig)
	}
	sort.Slice(latest, func(i, j int) bool { return latest[i].At.After(latest[j].At) })

	renderPage(w, http.StatusOK, "home", struct {
		pageData
		Session  *models.Session
		Outcomes []outcome.Signal
		Activity []models.Activity
	}{
		pageData: pageData{Title: "Home"},
		Session:  session,
		Outcomes: latest,
		Activity: recent,
	})
}

// LoginPage renders the empty login form.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "login", pageData{Title: "LOGIN"})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderPage(w, http.StatusBadRequest, "login", pageData{Title: "LOGIN", Message: "Invalid form submission"})
		return
	}
	creds := models.Credentials{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	page := pageData{Title: "LOGIN", Values: map[string]string{"email": creds.Email}}

	ctx, target := withNavigation(r.Context())
	res, err := h.login.Submit(ctx, creds)
	if err != nil {
		h.renderSubmitError(w, "login", page, err)
		return
	}
	if *target != "" {
		http.Redirect(w, r, *target, http.StatusSeeOther)
		return
	}
	page.Message = res.Message
	renderPage(w, statusFor(res), "login", page)
}

// RegisterPage renders the empty registration form.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "register", pageData{Title: "Sign Up"})
}

// Register handles the registration form submission, including an optional
// avatar upload.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	page := pageData{Title: "Sign Up"}

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		page.Message = "Invalid form submission"
		renderPage(w, http.StatusBadRequest, "register", page)
		return
	}

	profile := models.RegistrationProfile{
		Name:     r.FormValue("name"),
		NameID:   r.FormValue("nameId"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	page.Values = map[string]string{"name": profile.Name, "nameId": profile.NameID, "email": profile.Email}

	avatar, err := readAvatar(r)
	if err != nil {
		page.Errors = map[string]string{"avatar": err.Error()}
		renderPage(w, http.StatusUnprocessableEntity, "register", page)
		return
	}
	profile.Avatar = avatar

	ctx, target := withNavigation(r.Context())
	res, err := h.signUp.Submit(ctx, profile)
	if err != nil {
		h.renderSubmitError(w, "register", page, err)
		return
	}
	if *target != "" {
		http.Redirect(w, r, *target, http.StatusSeeOther)
		return
	}
	page.Message = res.Message
	renderPage(w, statusFor(res), "register", page)
}

// Logout forgets the local session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ClearSession(); err != nil {
		log.Error().Err(err).Msg("Failed to clear session")
		http.Error(w, "Failed to log out", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) renderSubmitError(w http.ResponseWriter, name string, page pageData, err error) {
	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		page.Errors = verr.Fields
		renderPage(w, http.StatusUnprocessableEntity, name, page)
	case errors.Is(err, forms.ErrSubmissionInFlight):
		page.Message = "Your previous submission is still being processed."
		renderPage(w, http.StatusConflict, name, page)
	default:
		log.Error().Err(err).Str("form", name).Msg("Form submission failed")
		page.Message = "Something went wrong, please try again."
		renderPage(w, http.StatusInternalServerError, name, page)
	}
}

// readAvatar converts the optional avatar upload into a data URL.
func readAvatar(r *http.Request) (*string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, _, err := r.FormFile("avatar")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxAvatarBytes {
		return nil, ErrAvatarTooLarge
	}
	return forms.AvatarDataURL(data)
}
