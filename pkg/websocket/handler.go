package websocket

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"fleetpulse/pkg/logger"
)

type Config struct {
	ReadBufferSize   int
	WriteBufferSize  int
	HandshakeTimeout time.Duration
	PingInterval     time.Duration
	PongTimeout      time.Duration
	SendBufferSize   int
	AllowedOrigins   []string
}

func (c Config) withDefaults() Config {
	if c.PongTimeout <= 0 {
		c.PongTimeout = 60 * time.Second
	}
	if c.PingInterval <= 0 || c.PingInterval >= c.PongTimeout {
		c.PingInterval = (c.PongTimeout * 9) / 10
	}
	if c.SendBufferSize <= 0 {
		c.SendBufferSize = 256
	}
	return c
}

type Handler struct {
	hub      *Hub
	cfg      Config
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

func NewHandler(hub *Hub, cfg Config, log *logger.Logger) *Handler {
	cfg = cfg.withDefaults()
	return &Handler{
		hub: hub,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:   cfg.ReadBufferSize,
			WriteBufferSize:  cfg.WriteBufferSize,
			HandshakeTimeout: cfg.HandshakeTimeout,
			CheckOrigin:      originChecker(cfg.AllowedOrigins),
		},
		logger: log.WithComponent("websocket"),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := NewClient(h.hub, conn, h.cfg, h.logger)
	if err := h.hub.Register(client); err != nil {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
