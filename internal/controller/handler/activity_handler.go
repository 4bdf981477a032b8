package handler

import (
	ws "ai-showroom-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterActivityRoutes mounts the live-activity websocket for dashboards.
// The connection is scoped to one tenant slug taken from the path.
func RegisterActivityRoutes(router fiber.Router, hub *ws.Hub) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/ws/activity/:tenant", websocket.New(func(c *websocket.Conn) {
		ws.ServeWs(hub, c, c.Params("tenant"))
	}))
}
