package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/roomrelay/server/internal/core"
)

// PresenceHandlers exposes read-only presence queries over REST. Queries
// are answered through the hub's event loop, so they observe a consistent
// snapshot of the tables.
type PresenceHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewPresenceHandlers creates a new presence handlers instance.
func NewPresenceHandlers(hub *core.Hub, logger *zerolog.Logger) *PresenceHandlers {
	return &PresenceHandlers{hub: hub, log: logger}
}

// RoomsResponse lists rooms that currently have members.
type RoomsResponse struct {
	Rooms []string `json:"rooms"`
}

// RoomUsersResponse is the roster of a single room.
type RoomUsersResponse struct {
	Room  string   `json:"room"`
	Users []string `json:"users"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListRooms handles listing active rooms.
// GET /api/rooms
func (h *PresenceHandlers) ListRooms(c *gin.Context) {
	rooms, err := h.hub.Rooms(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list rooms")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, RoomsResponse{Rooms: rooms})
}

// RoomUsers handles the roster query for one room. Unknown rooms resolve
// to an empty roster, not an error.
// GET /api/rooms/:room/users
func (h *PresenceHandlers) RoomUsers(c *gin.Context) {
	room := c.Param("room")
	users, err := h.hub.Members(c.Request.Context(), room)
	if err != nil {
		h.log.Error().Err(err).Str("room", room).Msg("failed to query room users")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, RoomUsersResponse{Room: room, Users: users})
}
