package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/isdelr/pixelgram/internal/outcome"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan []byte

	mu         sync.RWMutex
	categories map[outcome.Category]bool // empty means every category
}

// NewClient creates a client subscribed to the given categories.
func NewClient(hub *Hub, conn *websocket.Conn, categories []outcome.Category) *Client {
	c := &Client{
		hub:  hub,
		conn: conn,
		Send: make(chan []byte, 64),
	}
	c.SetCategories(categories)
	return c
}

// SetCategories replaces the client's category filter.
func (c *Client) SetCategories(categories []outcome.Category) {
	set := make(map[outcome.Category]bool, len(categories))
	for _, cat := range categories {
		set[cat] = true
	}
	c.mu.Lock()
	c.categories = set
	c.mu.Unlock()
}

// Wants reports whether signals of the category should reach the client.
func (c *Client) Wants(cat outcome.Category) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.categories) == 0 || c.categories[cat]
}

// ReadPump pumps messages from the websocket connection to handle.
func (c *Client) ReadPump(handle func(*Client, []byte)) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Msg("Unexpected websocket close")
			}
			return
		}
		handle(c, message)
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
