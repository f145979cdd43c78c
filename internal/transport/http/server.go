package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/roomrelay/server/internal/config"
	"github.com/roomrelay/server/internal/core"
)

// NewServer builds the HTTP server: health check, the WebSocket relay
// endpoint, and read-only presence queries.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/ws", NewWSHandler(hub, cfg, logger).Handle)

	presence := NewPresenceHandlers(hub, logger)
	api := router.Group("/api")
	api.GET("/rooms", presence.ListRooms)
	api.GET("/rooms/:room/users", presence.RoomUsers)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
