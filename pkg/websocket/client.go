package websocket

import (
	"time"

	"github.com/gorilla/websocket"

	"fleetpulse/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
)

type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	pingPeriod time.Duration
	pongWait   time.Duration
	logger     *logger.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, cfg Config, log *logger.Logger) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, cfg.SendBufferSize),
		pingPeriod: cfg.PingInterval,
		pongWait:   cfg.PongTimeout,
		logger:     log,
	}
}

// readPump keeps the read deadline fresh and detects disconnects. Incoming
// payloads are discarded; the channel is push only.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.WithError(err).Warn("WebSocket read failed")
			}
			return
		}
	}
}

// writePump sends one frame per event and pings on pingPeriod.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
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
