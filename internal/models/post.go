package models

// NewPost is the full payload sent when uploading a post.
type NewPost struct {
	Caption  string   `json:"caption"`
	Location string   `json:"location,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Image    string   `json:"image"` // data URL
}

// PostUpdate carries the editable fields of an existing post.
type PostUpdate struct {
	Caption  string   `json:"caption"`
	Location string   `json:"location"`
	Tags     []string `json:"tags"`
}

// CommentPayload is the body of an add-comment request.
type CommentPayload struct {
	Comment string `json:"comment"`
}

// CommentRemoval is the body of a delete-comment request.
type CommentRemoval struct {
	CommentID string `json:"commentId"`
}
