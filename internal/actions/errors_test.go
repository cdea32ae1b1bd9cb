package actions

import (
	"errors"
	"fmt"
	"testing"

	"github.com/isdelr/pixelgram/internal/auth"
	"github.com/stretchr/testify/assert"
)

func TestFailureMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"rejection", &ServerRejection{Status: 404, Message: "not found"}, "not found"},
		{"rejection without message", &ServerRejection{Status: 502}, "request failed with status 502"},
		{"wrapped rejection", fmt.Errorf("like: %w", &ServerRejection{Status: 403, Message: "forbidden"}), "forbidden"},
		{"transport", &TransportFailure{Err: errors.New("dial tcp: refused")}, TransportFailureMessage},
		{"expired", fmt.Errorf("auth: %w", auth.ErrSessionExpired), auth.ErrSessionExpired.Error()},
		{"unknown", errors.New("decode like response: unexpected EOF"), GenericFailureMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FailureMessage(tc.err))
		})
	}
}
