package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/NZUMAN2/transera-crm-sub001/internal/api/interfaces"
	"github.com/NZUMAN2/transera-crm-sub001/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer; the token check already ran.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ActivityFeed upgrades the connection and attaches it to the activity hub.
// Authentication happens upstream in the websocket gate middleware.
func ActivityFeed(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			services.GetLogger().Warning("websocket upgrade failed: %v", err)
			return
		}

		client := realtime.NewClient(services.Hub(), conn)

		services.GetLogger().WithField("user_id", c.GetInt64("user_id")).
			Debug("websocket client connected")

		go client.WritePump()
		go client.ReadPump()
	}
}
