package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/isdelr/pixelgram/internal/outcome"
	ws "github.com/isdelr/pixelgram/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler streams outcome signals to the browser.
type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler. Origins are checked
// against allowedOrigins; same-host requests are always accepted.
func NewWebSocketHandler(hub *ws.Hub, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowed[origin] {
					return true
				}
				return strings.TrimPrefix(strings.TrimPrefix(origin, "http://"), "https://") == r.Host
			},
		},
	}
}

// Serve handles the WebSocket connection request. The optional "category"
// query parameter (comma separated) limits which signals are streamed.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, parseCategories(r.URL.Query().Get("category")))
	if !h.hub.Join(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go func() {
		client.ReadPump(h.handleIncomingWSMessage)
		// The hub closes Send, which ends WritePump.
		h.hub.Leave(client)
	}()
}

// handleIncomingWSMessage processes messages received from a websocket client.
func (h *WebSocketHandler) handleIncomingWSMessage(client *ws.Client, message []byte) {
	var msg ws.Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Error().Err(err).Bytes("message", message).Msg("Error decoding websocket message")
		return
	}

	switch msg.Action {
	case "subscribe":
		payload, ok := msg.Payload.(map[string]interface{})
		if !ok {
			h.hub.Reply(client, ws.NewErrorMessage("Invalid payload for subscribe"))
			return
		}
		raw, _ := payload["categories"].([]interface{})
		categories := make([]outcome.Category, 0, len(raw))
		for _, c := range raw {
			if s, ok := c.(string); ok && s != "" {
				categories = append(categories, outcome.Category(s))
			}
		}
		client.SetCategories(categories)
		log.Debug().Int("categories", len(categories)).Msg("Client updated subscription")

	case "unsubscribe":
		// An empty filter streams every category again.
		client.SetCategories(nil)

	default:
		log.Warn().Str("action", msg.Action).Msg("Unknown websocket action received")
		h.hub.Reply(client, ws.NewErrorMessage("Unknown action: "+msg.Action))
	}
}

func parseCategories(raw string) []outcome.Category {
	var categories []outcome.Category
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			categories = append(categories, outcome.Category(part))
		}
	}
	return categories
}
