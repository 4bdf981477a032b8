package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches a dashboard connection to the hub, scoped to one tenant.
func ServeWs(hub *Hub, c *websocket.Conn, tenantSlug string) {
	client := &Client{Hub: hub, Conn: c, Tenant: tenantSlug, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // blocks the fiber handler goroutine
}
