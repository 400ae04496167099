package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fleetpulse/pkg/logger"
)

var ErrHubStopped = errors.New("websocket hub is not running")

// Event is the frame pushed to every subscriber.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans events out to connected clients. The client set is owned by the
// Run goroutine; everything else talks to it through channels.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	count      chan chan int
	done       chan struct{}
	logger     *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		logger:     log.WithComponent("websocket_hub"),
	}
}

// Run serves the hub until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.removeClient(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.WithField("clients", len(h.clients)).Debug("Client registered")

		case client := <-h.unregister:
			if h.clients[client] {
				h.removeClient(client)
				h.logger.WithField("clients", len(h.clients)).Debug("Client unregistered")
			}

		case message := <-h.broadcast:
			h.sendToAll(message)

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

// Broadcast publishes event with payload to every connected client. It
// returns once the hub has accepted the frame; delivery is best effort.
func (h *Hub) Broadcast(event string, payload interface{}) error {
	data, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event, err)
	}

	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}

	select {
	case h.broadcast <- data:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// sendToAll drops clients whose send buffer is full.
func (h *Hub) sendToAll(message []byte) {
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			h.logger.Warn("Dropping slow websocket client")
			h.removeClient(client)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	delete(h.clients, client)
	close(client.send)
}
