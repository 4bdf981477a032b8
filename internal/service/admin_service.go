package service

import (
	"context"
	"fmt"
	"time"

	"ai-showroom-be/internal/constant"
	"ai-showroom-be/internal/dto"
	"ai-showroom-be/internal/pkg/logger"
	"ai-showroom-be/internal/repository/memory"
	"ai-showroom-be/internal/repository/specification"
	"ai-showroom-be/internal/repository/unitofwork"
)

type IAdminService interface {
	ResetSession(req dto.ResetSessionRequest)
	SweepSessions() dto.SweepResponse
	ListLeads(ctx context.Context, query dto.LeadListQuery) ([]dto.LeadResponse, error)
	Stats(ctx context.Context, tenantSlug string) (*dto.StatsResponse, error)
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
}

type adminService struct {
	funnel     IFunnelService
	sessions   *memory.SessionStore
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAdminService(
	funnel IFunnelService,
	sessions *memory.SessionStore,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		funnel:     funnel,
		sessions:   sessions,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *adminService) ResetSession(req dto.ResetSessionRequest) {
	s.funnel.ResetSession(req.TenantSlug, req.Channel, req.UserRef)
	s.logger.Info("Admin", "Session reset", map[string]interface{}{
		"tenant":  req.TenantSlug,
		"channel": req.Channel,
		"user":    req.UserRef,
	})
}

func (s *adminService) SweepSessions() dto.SweepResponse {
	removed := s.sessions.SweepExpired()
	return dto.SweepResponse{Removed: removed}
}

func (s *adminService) ListLeads(ctx context.Context, query dto.LeadListQuery) ([]dto.LeadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tenant, err := uow.TenantRepository().FindBySlug(ctx, query.TenantSlug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, fmt.Errorf("tenant %q not found", query.TenantSlug)
	}

	limit := query.Limit
	if limit < 1 || limit > 200 {
		limit = 50
	}

	specs := []specification.Specification{
		specification.ByTenant{TenantId: tenant.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: query.Offset},
	}
	if query.Kind != "" {
		specs = append(specs, specification.Filter("kind", query.Kind))
	}

	leads, err := uow.LeadRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LeadResponse, len(leads))
	for i, lead := range leads {
		out[i] = dto.LeadResponse{
			Id:        lead.Id.String(),
			Kind:      lead.Kind,
			Channel:   lead.Channel,
			UserRef:   lead.UserRef,
			Category:  lead.Category,
			Brand:     lead.Brand,
			Model:     lead.Model,
			BodyType:  lead.BodyType,
			Options:   lead.Options,
			Price:     lead.Price,
			PriceNote: lead.PriceNote,
			Contact:   lead.Contact,
			Exported:  lead.Exported,
			CreatedAt: lead.CreatedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}

func (s *adminService) Stats(ctx context.Context, tenantSlug string) (*dto.StatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tenant, err := uow.TenantRepository().FindBySlug(ctx, tenantSlug)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, fmt.Errorf("tenant %q not found", tenantSlug)
	}

	byTenant := specification.ByTenant{TenantId: tenant.Id}

	total, err := uow.LeadRepository().Count(ctx, byTenant)
	if err != nil {
		return nil, err
	}
	orders, err := uow.LeadRepository().Count(ctx, byTenant, specification.Filter("kind", constant.LeadKindOrder))
	if err != nil {
		return nil, err
	}
	managers, err := uow.LeadRepository().Count(ctx, byTenant, specification.Filter("kind", constant.LeadKindManagerRequest))
	if err != nil {
		return nil, err
	}

	return &dto.StatsResponse{
		ActiveSessions: s.sessions.ActiveCount(),
		TotalLeads:     total,
		OrderLeads:     orders,
		ManagerLeads:   managers,
	}, nil
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	return s.logger.GetLogs(level, limit, offset)
}
