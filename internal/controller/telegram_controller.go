package controller

import (
	"errors"
	"strconv"

	"ai-showroom-be/internal/constant"
	"ai-showroom-be/internal/dto"
	"ai-showroom-be/internal/pkg/logger"
	"ai-showroom-be/internal/pkg/serverutils"
	"ai-showroom-be/internal/service"
	"ai-showroom-be/pkg/messenger/telegram"

	"github.com/gofiber/fiber/v2"
)

// TelegramController terminates the per-tenant Telegram webhook. The bot
// token lives on the tenant row, so the outbound sender is built per request.
type TelegramController struct {
	funnel service.IFunnelService
	logger logger.ILogger
}

func NewTelegramController(funnel service.IFunnelService, log logger.ILogger) *TelegramController {
	return &TelegramController{funnel: funnel, logger: log}
}

func (c *TelegramController) RegisterRoutes(router fiber.Router) {
	router.Post("/webhook/telegram/:tenant", c.HandleUpdate)
}

func (c *TelegramController) HandleUpdate(ctx *fiber.Ctx) error {
	tenantSlug := ctx.Params("tenant")
	secret := ctx.Get("X-Telegram-Bot-Api-Secret-Token")

	tenant, err := c.funnel.AuthorizeTelegram(ctx.Context(), tenantSlug, secret)
	if err != nil {
		return webhookAuthError(ctx, err)
	}

	var update dto.TelegramUpdate
	if err := ctx.BodyParser(&update); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid update payload"))
	}

	// Edited messages, joins etc. carry no message body; ack and move on so
	// Telegram stops redelivering.
	if update.Message == nil || update.Message.Text == "" {
		return ctx.JSON(dto.WebhookAck{Handled: false})
	}

	userRef := strconv.FormatInt(update.Message.From.Id, 10)
	chatRef := strconv.FormatInt(update.Message.Chat.Id, 10)

	reply, err := c.funnel.HandleMessage(ctx.Context(), tenantSlug, constant.ChannelTelegram, userRef, update.Message.Text)
	if err != nil {
		c.logger.Error("Telegram", "Turn failed", map[string]interface{}{
			"tenant": tenantSlug, "user": userRef, "error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	sender := telegram.NewSender(tenant.TelegramToken)
	if err := sender.Send(ctx.Context(), chatRef, reply); err != nil {
		c.logger.Error("Telegram", "Send failed", map[string]interface{}{
			"tenant": tenantSlug, "chat": chatRef, "error": err.Error(),
		})
	}

	return ctx.JSON(dto.WebhookAck{Handled: true, Reply: reply})
}

func webhookAuthError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTenantNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Unknown tenant"))
	case errors.Is(err, service.ErrTenantInactive):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Tenant disabled"))
	case errors.Is(err, service.ErrWebhookForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Webhook secret mismatch"))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
}
