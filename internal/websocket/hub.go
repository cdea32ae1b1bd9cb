package websocket

import (
	"sync"

	"github.com/isdelr/pixelgram/internal/outcome"
	"github.com/rs/zerolog/log"
)

// Hub maintains the set of active clients and broadcasts outcome signals to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Signals waiting to be fanned out.
	broadcast chan outcome.Signal

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Replies addressed to a single client.
	direct chan directMessage

	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan outcome.Signal, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan directMessage),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

type directMessage struct {
	client  *Client
	message []byte
}

// Reply sends a message to one client if it is still registered.
func (h *Hub) Reply(c *Client, message []byte) {
	select {
	case h.direct <- directMessage{client: c, message: message}:
	case <-h.done:
	}
}

// Publish queues a signal for every interested client. It never blocks the
// action that emitted the signal; when the queue is full the signal is dropped.
func (h *Hub) Publish(sig outcome.Signal) {
	select {
	case h.broadcast <- sig:
	default:
		log.Warn().Str("type", sig.Type).Msg("Websocket broadcast queue full, dropping signal")
	}
}

// Join registers a client. It returns false when the hub has stopped.
func (h *Hub) Join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters a client.
func (h *Hub) Leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	defer close(h.stopped)
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case d := <-h.direct:
			if h.clients[d.client] {
				select {
				case d.client.Send <- d.message:
				default:
				}
			}
		case sig := <-h.broadcast:
			message := NewOutcomeMessage(sig)
			for client := range h.clients {
				if !client.Wants(sig.Category) {
					continue
				}
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Stop halts a running hub, disconnects every client and waits for Run to return.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
	<-h.stopped
}
