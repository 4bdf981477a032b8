package service

import (
	"context"
	"time"

	"ai-showroom-be/internal/pkg/logger"
	"ai-showroom-be/internal/websocket"
	"ai-showroom-be/pkg/events"
	natsbus "ai-showroom-be/pkg/nats"
)

type INotificationService interface {
	// Start binds the durable consumer and begins relaying bus events to the
	// dashboard hub.
	Start() error
}

// notificationService bridges the NATS event stream into the websocket hub
// so dashboards see lead traffic from every instance, not just their own.
type notificationService struct {
	subscriber *natsbus.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewNotificationService(subscriber *natsbus.Subscriber, hub *websocket.Hub, log logger.ILogger) INotificationService {
	return &notificationService{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

func (s *notificationService) Start() error {
	return s.subscriber.Subscribe("events.>", "dashboard-relay", s.handle)
}

func (s *notificationService) handle(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	tenant, _ := payload["tenant"].(string)
	if tenant == "" {
		// Events without a tenant have no dashboard to land on.
		s.logger.Warn("Notification", "Event without tenant, skipping", map[string]interface{}{
			"subject": event.EventType(),
		})
		return nil
	}

	s.hub.Publish(websocket.Activity{
		Tenant:    tenant,
		Kind:      event.EventType(),
		Details:   payload,
		Timestamp: time.Now(),
	})
	return nil
}
