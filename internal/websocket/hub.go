package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"ai-showroom-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Activity is one live funnel event pushed to dashboard watchers.
type Activity struct {
	Tenant    string                 `json:"tenant"`
	Kind      string                 `json:"kind"`
	Channel   string                 `json:"channel,omitempty"`
	UserRef   string                 `json:"user_ref,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Hub fans funnel activity out to dashboard websocket connections, keyed by
// tenant slug so each dealership only sees its own traffic.
type Hub struct {
	// tenant slug -> watchers (multiple dashboard tabs per tenant)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Tenant] = append(h.clients[client.Tenant], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Watcher registered", map[string]interface{}{"tenant": client.Tenant})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.Tenant]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.Tenant] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.Tenant]) == 0 {
					delete(h.clients, client.Tenant)
					h.logger.Info("Hub", "Last watcher unregistered", map[string]interface{}{"tenant": client.Tenant})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish pushes an activity to the tenant's local watchers and relays it to
// the other instances over redis.
func (h *Hub) Publish(activity Activity) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "activity",
		"data": activity,
	})

	h.deliverLocal(activity.Tenant, data)

	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_tenant": activity.Tenant,
			"message":       data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "funnel_activity", jsonPayload)
	}
}

func (h *Hub) deliverLocal(tenant string, data []byte) {
	h.mu.RLock()
	clients := h.clients[tenant]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Watcher buffer full, dropping", map[string]interface{}{"tenant": tenant})
			close(client.Send)
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to one channel and filter on tenant; with a
	// handful of tenants per deployment this stays cheap.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "funnel_activity")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetTenant string          `json:"target_tenant"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.deliverLocal(payload.TargetTenant, payload.Message)
	}
}
