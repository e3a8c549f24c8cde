package handlers

import (
	"github.com/anjiri1684/institute_manager/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func UpgradeRequired(c *fiber.Ctx) error {
	if websocketcontrib.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ServeResultFeed keeps the connection registered until the client goes
// away; the feed is write-only so reads only detect disconnects.
func ServeResultFeed(c *websocketcontrib.Conn) {
	client := &websocket.Client{ID: uuid.New(), Conn: c}
	if !websocket.Results.Register(client) {
		c.Close()
		return
	}
	defer websocket.Results.Unregister(client)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
