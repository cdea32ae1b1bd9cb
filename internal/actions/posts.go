package actions

import (
	"context"
	"net/http"
	"net/url"

	"github.com/isdelr/pixelgram/internal/models"
	"github.com/isdelr/pixelgram/internal/outcome"
)

func postPath(id string) string {
	return "/api/v1/post/" + url.PathEscape(id)
}

func commentPath(id string) string {
	return "/api/v1/post/comment/" + url.PathEscape(id)
}

// requireIDs fails the invocation through the normal protocol when an
// identifier is missing.
func (d *Dispatcher) requireIDs(ctx context.Context, category outcome.Category, ids ...string) (Result, bool) {
	for _, id := range ids {
		if id == "" {
			return d.run(ctx, request{category: category, err: ErrMissingID}, nil), false
		}
	}
	return Result{}, true
}

// LikePost toggles the current user's like on a post.
func (d *Dispatcher) LikePost(ctx context.Context, id string) Result {
	if r, ok := d.requireIDs(ctx, outcome.Like, id); !ok {
		return r
	}
	return d.run(ctx, request{
		category: outcome.Like,
		method:   http.MethodGet,
		path:     postPath(id),
		authed:   true,
	}, nil)
}

// AddComment adds a comment to a post.
func (d *Dispatcher) AddComment(ctx context.Context, id, comment string) Result {
	if r, ok := d.requireIDs(ctx, outcome.AddComment, id); !ok {
		return r
	}
	return d.run(ctx, request{
		category: outcome.AddComment,
		method:   http.MethodPut,
		path:     commentPath(id),
		body:     models.CommentPayload{Comment: comment},
		authed:   true,
	}, nil)
}

// DeleteComment removes a comment from a post.
func (d *Dispatcher) DeleteComment(ctx context.Context, id, commentID string) Result {
	if r, ok := d.requireIDs(ctx, outcome.DeleteComment, id, commentID); !ok {
		return r
	}
	return d.run(ctx, request{
		category: outcome.DeleteComment,
		method:   http.MethodDelete,
		path:     commentPath(id),
		body:     models.CommentRemoval{CommentID: commentID},
		authed:   true,
	}, nil)
}

// CreatePost uploads a new post.
func (d *Dispatcher) CreatePost(ctx context.Context, post models.NewPost) Result {
	return d.run(ctx, request{
		category: outcome.NewPost,
		method:   http.MethodPost,
		path:     "/api/v1/post/upload",
		body:     post,
		authed:   true,
	}, nil)
}

// UpdatePost replaces the caption, location and tags of a post.
func (d *Dispatcher) UpdatePost(ctx context.Context, id string, update models.PostUpdate) Result {
	if r, ok := d.requireIDs(ctx, outcome.UpdateCaption, id); !ok {
		return r
	}
	return d.run(ctx, request{
		category: outcome.UpdateCaption,
		method:   http.MethodPut,
		path:     postPath(id),
		body:     update,
		authed:   true,
	}, nil)
}

// DeletePost deletes a post.
func (d *Dispatcher) DeletePost(ctx context.Context, id string) Result {
	if r, ok := d.requireIDs(ctx, outcome.DeletePost, id); !ok {
		return r
	}
	return d.run(ctx, request{
		category: outcome.DeletePost,
		method:   http.MethodDelete,
		path:     postPath(id),
		authed:   true,
	}, nil)
}
