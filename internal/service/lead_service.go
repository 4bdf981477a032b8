package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-showroom-be/internal/entity"
	"ai-showroom-be/internal/pkg/logger"
	"ai-showroom-be/internal/repository/unitofwork"
	"ai-showroom-be/pkg/events"
	natsbus "ai-showroom-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// PublishExportLeadMessage is the payload queued for the export worker.
type PublishExportLeadMessage struct {
	LeadId   uuid.UUID `json:"lead_id"`
	TenantId uuid.UUID `json:"tenant_id"`
}

type ILeadService interface {
	// Record persists a lead and queues it for CRM export. The funnel has
	// already replied to the user by the time the export runs; persistence
	// failure is the only error surfaced here.
	Record(ctx context.Context, tenant *entity.Tenant, lead *entity.Lead) error
}

type leadService struct {
	uowFactory unitofwork.RepositoryFactory
	pubSub     *gochannel.GoChannel
	topicName  string
	bus        *natsbus.Publisher
	logger     logger.ILogger
}

func NewLeadService(
	uowFactory unitofwork.RepositoryFactory,
	pubSub *gochannel.GoChannel,
	topicName string,
	bus *natsbus.Publisher,
	log logger.ILogger,
) ILeadService {
	return &leadService{
		uowFactory: uowFactory,
		pubSub:     pubSub,
		topicName:  topicName,
		bus:        bus,
		logger:     log,
	}
}

func (s *leadService) Record(ctx context.Context, tenant *entity.Tenant, lead *entity.Lead) error {
	lead.TenantId = tenant.Id
	lead.CreatedAt = time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LeadRepository().Create(ctx, lead); err != nil {
		return err
	}

	s.logger.Info("Lead", "Lead recorded", map[string]interface{}{
		"lead_id": lead.Id,
		"tenant":  tenant.Slug,
		"kind":    lead.Kind,
	})

	// Queue the CRM export. The worker owns retries; a publish failure only
	// delays the export, the lead itself is already safe.
	payload, err := json.Marshal(PublishExportLeadMessage{LeadId: lead.Id, TenantId: tenant.Id})
	if err == nil {
		if err := s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
			log.Printf("[ERROR] Failed to queue lead export for %s: %v", lead.Id, err)
		}
	}

	if s.bus != nil {
		ev := events.NewLeadCreated(tenant.Slug, lead.Id.String(), lead.Kind)
		if err := s.bus.Publish(ctx, ev); err != nil {
			log.Printf("[WARN] Failed to publish %s event: %v", ev.EventType(), err)
		}
	}

	return nil
}
