package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/pixelgram/internal/actions"
	"github.com/isdelr/pixelgram/internal/models"
)

// PostActions is the part of the action layer used by PostHandler.
type PostActions interface {
	LikePost(ctx context.Context, id string) actions.Result
	AddComment(ctx context.Context, id, comment string) actions.Result
	DeleteComment(ctx context.Context, id, commentID string) actions.Result
	CreatePost(ctx context.Context, post models.NewPost) actions.Result
	UpdatePost(ctx context.Context, id string, update models.PostUpdate) actions.Result
	DeletePost(ctx context.Context, id string) actions.Result
}

// PostHandler exposes the post actions to the browser as JSON endpoints.
type PostHandler struct {
	actions PostActions
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(actions PostActions) *PostHandler {
	return &PostHandler{actions: actions}
}

func (h *PostHandler) respond(w http.ResponseWriter, res actions.Result) {
	writeJSON(w, statusFor(res), res)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// Like handles liking or unliking a post.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.actions.LikePost(r.Context(), chi.URLParam(r, "id")))
}

// AddComment handles commenting on a post.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var payload models.CommentPayload
	if !decode(w, r, &payload) {
		return
	}
	h.respond(w, h.actions.AddComment(r.Context(), chi.URLParam(r, "id"), payload.Comment))
}

// DeleteComment handles removing a comment from a post.
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.actions.DeleteComment(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "commentId")))
}

// Create handles uploading a new post.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var post models.NewPost
	if !decode(w, r, &post) {
		return
	}
	h.respond(w, h.actions.CreatePost(r.Context(), post))
}

// Update handles editing a post's caption, location and tags.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update models.PostUpdate
	if !decode(w, r, &update) {
		return
	}
	h.respond(w, h.actions.UpdatePost(r.Context(), chi.URLParam(r, "id"), update))
}

// Delete handles deleting a post.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.actions.DeletePost(r.Context(), chi.URLParam(r, "id")))
}
