package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/pixelgram/internal/actions"
	"github.com/isdelr/pixelgram/internal/auth"
	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// statusFor maps an action result to the HTTP status returned to the view.
func statusFor(res actions.Result) int {
	if res.OK() {
		return http.StatusOK
	}

	var rejection *actions.ServerRejection
	var transport *actions.TransportFailure
	switch {
	case errors.As(res.Err, &rejection):
		// Only error statuses are passed on; anything else cannot carry the
		// failure page.
		if rejection.Status >= 400 && rejection.Status <= 599 {
			return rejection.Status
		}
		return http.StatusBadGateway
	case errors.As(res.Err, &transport):
		return http.StatusBadGateway
	case errors.Is(res.Err, auth.ErrNoSession), errors.Is(res.Err, auth.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(res.Err, actions.ErrMissingID):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

type navigationKey struct{}

// PageNavigator records the route a form navigates to in the request
// context, so the handler can answer with a redirect.
type PageNavigator struct{}

// Navigate stores route for the request that submitted the form.
func (PageNavigator) Navigate(ctx context.Context, route string) {
	if target, ok := ctx.Value(navigationKey{}).(*string); ok {
		*target = route
	}
}

// withNavigation returns a context the PageNavigator can write into.
func withNavigation(ctx context.Context) (context.Context, *string) {
	target := new(string)
	return context.WithValue(ctx, navigationKey{}, target), target
}
