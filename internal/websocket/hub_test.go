package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/isdelr/pixelgram/internal/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case raw := <-c.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestHubFansOutByCategory(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	all := NewClient(hub, nil, nil)
	likes := NewClient(hub, nil, []outcome.Category{outcome.Like})
	require.True(t, hub.Join(all))
	require.True(t, hub.Join(likes))

	hub.Publish(outcome.New(outcome.DeletePost, outcome.Failure, "inv-1", "not found"))
	hub.Publish(outcome.New(outcome.Like, outcome.Success, "inv-2", "liked"))

	first := receive(t, all)
	assert.Equal(t, "outcome", first.Action)
	assert.Equal(t, "deletePostFailure", first.Payload.(map[string]interface{})["type"])
	second := receive(t, all)
	assert.Equal(t, "likeSuccess", second.Payload.(map[string]interface{})["type"])

	only := receive(t, likes)
	assert.Equal(t, "liked", only.Payload.(map[string]interface{})["payload"])
	select {
	case <-likes.Send:
		t.Fatal("filtered client received an unwanted signal")
	default:
	}
}

func TestHubLeaveClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := NewClient(hub, nil, nil)
	require.True(t, hub.Join(c))
	hub.Leave(c)

	_, open := <-c.Send
	assert.False(t, open)

	hub.Stop()
	assert.False(t, hub.Join(NewClient(hub, nil, nil)))
}

func TestReplyOnlyReachesRegisteredClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	joined := NewClient(hub, nil, nil)
	stranger := NewClient(hub, nil, nil)
	require.True(t, hub.Join(joined))

	hub.Reply(joined, NewErrorMessage("Unknown action: ping"))
	hub.Reply(stranger, NewErrorMessage("Unknown action: ping"))

	msg := receive(t, joined)
	assert.Equal(t, "error", msg.Action)
	assert.Equal(t, "Unknown action: ping", msg.Payload.(map[string]interface{})["message"])
	select {
	case <-stranger.Send:
		t.Fatal("unregistered client received a reply")
	default:
	}
}

func TestStopIsIdempotent(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	hub.Stop()
	assert.NotPanics(t, hub.Stop)
}
