package routes

import (
	handlers "fleetpulse/internal/handlers/shared"
	"fleetpulse/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Emergency *handlers.EmergencyHandler
	Driver    *handlers.DriverHandler
	Car       *handlers.CarHandler
	RSU       *handlers.RSUHandler
	Auth      *handlers.AuthHandler
	Health    *handlers.HealthHandler
	WebSocket *websocket.Handler
}

type Options struct {
	// JWTSecret guards emergency writes. Empty disables authentication.
	JWTSecret     string
	WebSocketPath string
}

// SetupRoutes mounts the API on r. Global middleware is expected to be
// installed by the caller.
func SetupRoutes(r *gin.Engine, h *Handlers, opts Options) {
	if h.Health != nil {
		r.GET("/health", h.Health.Health)
	}
	if h.WebSocket != nil {
		path := opts.WebSocketPath
		if path == "" {
			path = "/ws"
		}
		r.GET(path, h.WebSocket.HandleWebSocket)
	}

	api := r.Group("/api")
	SetupAuthRoutes(api, h.Auth)
	SetupEmergencyRoutes(api, h.Emergency, opts.JWTSecret)
	SetupDriverRoutes(api, h.Driver)
	SetupCarRoutes(api, h.Car)
	SetupRSURoutes(api, h.RSU)
}
