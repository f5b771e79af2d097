package handler

import (
	"io"
	"net/http"

	"sugoroku/backend/internal/hub"

	"github.com/gin-gonic/gin"
)

// StreamEvents godoc
// @Summary      Subscribe to a room's event stream
// @Description  Server-sent events carrying game_started and action_resolved events. Members only.
// @Tags         events
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        uname path string true "Room uname"
// @Failure      404 {object} ErrorResponse
// @Router       /rooms/{uname}/events [get]
func StreamEvents(c *gin.Context) {
	userID, _ := c.Get("userID")

	room, err := Engine.FindByName(c.Request.Context(), c.Param("uname"))
	if err != nil {
		respondEngineError(c, err)
		return
	}

	member, err := Engine.IsMember(c.Request.Context(), room.ID, userID.(uint))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	if !member {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	client := make(hub.Client, 16)
	hub.GlobalHub.Subscribe(room.ID, client)
	defer hub.GlobalHub.Unsubscribe(room.ID, client)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(message))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
