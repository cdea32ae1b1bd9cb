package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/isdelr/pixelgram/internal/auth"
	"github.com/isdelr/pixelgram/internal/models"
	"github.com/isdelr/pixelgram/internal/outcome"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

// Result is the outcome of one action invocation, returned to the caller
// that started it.
type Result struct {
	InvocationID string           `json:"invocationId"`
	Category     outcome.Category `json:"category"`
	Phase        outcome.Phase    `json:"phase"`
	Message      string           `json:"message"`
	Err          error            `json:"-"`
}

// OK reports whether the action succeeded.
func (r Result) OK() bool { return r.Phase == outcome.Success }

// SessionSaver stores the token returned by login or registration.
type SessionSaver interface {
	SaveSession(email, token string) (models.Session, error)
}

// Dispatcher performs actions against the backend.
type Dispatcher struct {
	baseURL  string
	http     *http.Client
	auth     auth.Provider
	sink     outcome.Sink
	sessions SessionSaver
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient overrides http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.http = c }
}

// WithSessions stores tokens returned by login and registration.
func WithSessions(s SessionSaver) Option {
	return func(d *Dispatcher) { d.sessions = s }
}

// New creates a Dispatcher for the backend at baseURL. Signals go to sink.
func New(baseURL string, provider auth.Provider, sink outcome.Sink, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		auth:    provider,
		sink:    sink,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type request struct {
	category outcome.Category
	method   string
	path     string
	body     any
	authed   bool

	// err fails the invocation before any request is sent.
	err error
}

// response holds the fields the actions read from a success body.
type response struct {
	Message   string
	Token     string
	UserEmail string
}

// decodeResponse reads each field of a success body on its own, so a field
// of an unexpected shape is dropped without losing the others.
func decodeResponse(raw []byte) (response, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return response{}, err
	}

	var out response
	var user struct {
		Email string `json:"email"`
	}
	for key, dst := range map[string]any{"message": &out.Message, "token": &out.Token, "user": &user} {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, dst); err != nil {
			log.Debug().Err(err).Str("field", key).Msg("Ignoring malformed response field")
		}
	}
	out.UserEmail = user.Email
	return out, nil
}

// run executes req with the Pending -> Success|Failure protocol. onSuccess
// may turn a successful response into a failure.
func (d *Dispatcher) run(ctx context.Context, req request, onSuccess func(response) error) Result {
	id := uuid.NewString()
	d.sink.Emit(outcome.New(req.category, outcome.Pending, id, ""))

	resp, err := d.do(ctx, req)
	if err == nil && onSuccess != nil {
		err = onSuccess(resp)
	}

	if err != nil {
		msg := FailureMessage(err)
		log.Warn().Err(err).
			Str("category", string(req.category)).
			Str("invocation_id", id).
			Msg("Action failed")
		d.sink.Emit(outcome.New(req.category, outcome.Failure, id, msg))
		return Result{InvocationID: id, Category: req.category, Phase: outcome.Failure, Message: msg, Err: err}
	}

	log.Debug().Str("category", string(req.category)).Str("invocation_id", id).Msg("Action succeeded")
	d.sink.Emit(outcome.New(req.category, outcome.Success, id, resp.Message))
	return Result{InvocationID: id, Category: req.category, Phase: outcome.Success, Message: resp.Message}
}

// do performs the single HTTP round trip of an action.
func (d *Dispatcher) do(ctx context.Context, req request) (response, error) {
	if req.err != nil {
		return response{}, req.err
	}

	var body io.Reader
	if req.body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(req.body); err != nil {
			return response{}, fmt.Errorf("encode %s body: %w", req.category, err)
		}
		body = buf
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, d.baseURL+req.path, body)
	if err != nil {
		return response{}, fmt.Errorf("build %s request: %w", req.category, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.authed {
		header, err := d.auth.AuthHeader(ctx)
		if err != nil {
			return response{}, err
		}
		httpReq.Header.Set("Authorization", header)
	}

	resp, err := d.http.Do(httpReq)
	if err != nil {
		return response{}, &TransportFailure{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{}, &TransportFailure{Err: err}
	}

	if resp.StatusCode/100 != 2 {
		return response{}, &ServerRejection{Status: resp.StatusCode, Message: extractMessage(raw)}
	}

	// The request succeeded even when the body is not the JSON we expect.
	if len(bytes.TrimSpace(raw)) == 0 {
		return response{}, nil
	}
	out, err := decodeResponse(raw)
	if err != nil {
		log.Warn().Err(err).Str("category", string(req.category)).Msg("Ignoring undecodable success body")
		return response{}, nil
	}
	return out, nil
}
