package handlers

import (
	"net/http"
	"strconv"

	"github.com/isdelr/pixelgram/internal/outcome"
	"github.com/isdelr/pixelgram/internal/services"
	"github.com/rs/zerolog/log"
)

// OutcomeHandler handles HTTP requests related to action outcomes.
type OutcomeHandler struct {
	store    *outcome.Store
	activity services.ActivityServiceProvider
}

// NewOutcomeHandler creates a new OutcomeHandler.
func NewOutcomeHandler(store *outcome.Store, activity services.ActivityServiceProvider) *OutcomeHandler {
	return &OutcomeHandler{store: store, activity: activity}
}

// Latest returns the latest signal of every category.
func (h *OutcomeHandler) Latest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// GetRecent handles the request to get recent activity.
func (h *OutcomeHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	activity, err := h.activity.GetRecentActivity(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve activity")
		http.Error(w, "Failed to retrieve activity: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}
