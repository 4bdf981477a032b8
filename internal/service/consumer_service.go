package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-showroom-be/internal/constant"
	"ai-showroom-be/internal/pkg/mailer"
	"ai-showroom-be/internal/repository/specification"
	"ai-showroom-be/internal/repository/unitofwork"
	"ai-showroom-be/pkg/crm/sheets"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the export worker: it drains the lead queue, pushes each
// lead to the tenant's CRM sheet, alerts the manager by mail and flips the
// exported flag.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	crm        sheets.LeadAppender // nil when no service account is configured
	mail       mailer.IEmailService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	crm sheets.LeadAppender,
	mail mailer.IEmailService,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		crm:        crm,
		mail:       mail,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload PublishExportLeadMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal export message: %v", err)
		msg.Ack() // malformed messages would retry forever
		return
	}

	log.Printf("[INFO] Exporting lead %s", payload.LeadId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	lead, err := uow.LeadRepository().FindOne(ctx, specification.ByID{ID: payload.LeadId})
	if err != nil {
		log.Printf("[ERROR] Failed to load lead %s: %v", payload.LeadId, err)
		msg.Nack()
		return
	}
	if lead == nil {
		log.Printf("[WARN] Lead %s vanished before export", payload.LeadId)
		msg.Ack()
		return
	}

	tenant, err := uow.TenantRepository().FindOne(ctx, specification.ByID{ID: payload.TenantId})
	if err != nil {
		log.Printf("[ERROR] Failed to load tenant %s: %v", payload.TenantId, err)
		msg.Nack()
		return
	}
	if tenant == nil {
		log.Printf("[WARN] Tenant %s vanished before export of lead %s", payload.TenantId, payload.LeadId)
		msg.Ack()
		return
	}

	// CRM push is retriable; mail is best-effort and never blocks the ack.
	if cs.crm != nil && tenant.CrmSheetId != "" {
		if err := cs.crm.AppendLead(ctx, tenant.CrmSheetId, lead); err != nil {
			log.Printf("[ERROR] CRM append failed for lead %s: %v", lead.Id, err)
			msg.Nack()
			return
		}
	}

	if cs.mail != nil && tenant.ManagerEmail != "" {
		var mailErr error
		if lead.Kind == constant.LeadKindManagerRequest {
			mailErr = cs.mail.SendManagerRequest(tenant.ManagerEmail, lead)
		} else {
			mailErr = cs.mail.SendLeadAlert(tenant.ManagerEmail, lead)
		}
		if mailErr != nil {
			log.Printf("[WARN] Manager mail failed for lead %s: %v", lead.Id, mailErr)
		}
	}

	if err := uow.LeadRepository().MarkExported(ctx, lead.Id); err != nil {
		log.Printf("[ERROR] Failed to mark lead %s exported: %v", lead.Id, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
