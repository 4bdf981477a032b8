package controller

import (
	"ai-showroom-be/internal/constant"
	"ai-showroom-be/internal/dto"
	"ai-showroom-be/internal/pkg/logger"
	"ai-showroom-be/internal/pkg/serverutils"
	"ai-showroom-be/internal/service"
	"ai-showroom-be/pkg/messenger/whatsapp"

	"github.com/gofiber/fiber/v2"
)

// WhatsAppController terminates the WhatsApp Cloud API webhook: the GET leg
// answers Meta's verification challenge, the POST leg carries messages.
type WhatsAppController struct {
	funnel service.IFunnelService
	logger logger.ILogger
}

func NewWhatsAppController(funnel service.IFunnelService, log logger.ILogger) *WhatsAppController {
	return &WhatsAppController{funnel: funnel, logger: log}
}

func (c *WhatsAppController) RegisterRoutes(router fiber.Router) {
	router.Get("/webhook/whatsapp/:tenant", c.Verify)
	router.Post("/webhook/whatsapp/:tenant", c.HandleWebhook)
}

func (c *WhatsAppController) Verify(ctx *fiber.Ctx) error {
	tenantSlug := ctx.Params("tenant")
	mode := ctx.Query("hub.mode")
	token := ctx.Query("hub.verify_token")
	challenge := ctx.Query("hub.challenge")

	if mode != "subscribe" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Unsupported hub.mode"))
	}

	if _, err := c.funnel.AuthorizeWhatsApp(ctx.Context(), tenantSlug, token); err != nil {
		return webhookAuthError(ctx, err)
	}

	return ctx.SendString(challenge)
}

func (c *WhatsAppController) HandleWebhook(ctx *fiber.Ctx) error {
	tenantSlug := ctx.Params("tenant")

	var webhook dto.WhatsAppWebhook
	if err := ctx.BodyParser(&webhook); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid webhook payload"))
	}

	// The verify token is only exchanged on the GET challenge; the message
	// leg just needs the tenant for the outbound credentials.
	tenant, err := c.funnel.Tenant(ctx.Context(), tenantSlug)
	if err != nil {
		return webhookAuthError(ctx, err)
	}

	sender := whatsapp.NewSender(tenant.WhatsAppToken, tenant.WhatsAppPhoneId)

	var lastReply string
	for _, entry := range webhook.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Type != "text" || msg.Text.Body == "" {
					continue
				}

				reply, err := c.funnel.HandleMessage(ctx.Context(), tenantSlug, constant.ChannelWhatsApp, msg.From, msg.Text.Body)
				if err != nil {
					c.logger.Error("WhatsApp", "Turn failed", map[string]interface{}{
						"tenant": tenantSlug, "user": msg.From, "error": err.Error(),
					})
					continue
				}
				lastReply = reply

				if err := sender.Send(ctx.Context(), msg.From, reply); err != nil {
					c.logger.Error("WhatsApp", "Send failed", map[string]interface{}{
						"tenant": tenantSlug, "to": msg.From, "error": err.Error(),
					})
				}
			}
		}
	}

	return ctx.JSON(dto.WebhookAck{Handled: lastReply != "", Reply: lastReply})
}
