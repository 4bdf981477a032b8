package controller

import (
	"strconv"

	"ai-showroom-be/internal/dto"
	"ai-showroom-be/internal/pkg/serverutils"
	"ai-showroom-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminController exposes the back-office surface: lead listing, funnel
// stats, session maintenance and log access. All routes sit behind the admin
// JWT middleware.
type AdminController struct {
	admin service.IAdminService
}

func NewAdminController(admin service.IAdminService) *AdminController {
	return &AdminController{admin: admin}
}

func (c *AdminController) RegisterRoutes(router fiber.Router) {
	group := router.Group("/admin/v1", serverutils.AdminJwtMiddleware)
	group.Get("/leads", c.ListLeads)
	group.Get("/stats/:tenant", c.Stats)
	group.Post("/sessions/reset", c.ResetSession)
	group.Post("/sessions/sweep", c.SweepSessions)
	group.Get("/logs", c.GetLogs)
}

func (c *AdminController) ListLeads(ctx *fiber.Ctx) error {
	var query dto.LeadListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}
	if query.TenantSlug == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "tenant_slug is required"))
	}

	leads, err := c.admin.ListLeads(ctx.Context(), query)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Leads", leads))
}

func (c *AdminController) Stats(ctx *fiber.Ctx) error {
	stats, err := c.admin.Stats(ctx.Context(), ctx.Params("tenant"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Funnel stats", stats))
}

func (c *AdminController) ResetSession(ctx *fiber.Ctx) error {
	var req dto.ResetSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	c.admin.ResetSession(req)
	return ctx.JSON(serverutils.SuccessResponse("Session reset", nil))
}

func (c *AdminController) SweepSessions(ctx *fiber.Ctx) error {
	res := c.admin.SweepSessions()
	return ctx.JSON(serverutils.SuccessResponse("Expired sessions swept", res))
}

func (c *AdminController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit, _ := strconv.Atoi(ctx.Query("limit", "100"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))

	logs, err := c.admin.GetLogs(level, limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Logs", logs))
}
