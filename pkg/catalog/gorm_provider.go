package catalog

import (
	"context"
	"fmt"

	"ai-showroom-be/internal/entity"
	"ai-showroom-be/internal/repository/specification"
	"ai-showroom-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// GormProvider serves catalog lists straight from the tenant's tables.
type GormProvider struct {
	uowFactory unitofwork.RepositoryFactory
}

var _ Provider = &GormProvider{}

func NewGormProvider(uowFactory unitofwork.RepositoryFactory) *GormProvider {
	return &GormProvider{uowFactory: uowFactory}
}

func (p *GormProvider) ListCategories(ctx context.Context, tenantId uuid.UUID) ([]string, error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)
	categories, err := uow.CategoryRepository().FindAll(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ActiveOnly{},
		specification.ByPosition(),
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names, nil
}

func (p *GormProvider) ListBrands(ctx context.Context, tenantId uuid.UUID) ([]string, error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)
	brands, err := uow.BrandRepository().FindAll(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ActiveOnly{},
		specification.ByPosition(),
	)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	names := make([]string, len(brands))
	for i, b := range brands {
		names[i] = b.Name
	}
	return names, nil
}

func (p *GormProvider) ListModels(ctx context.Context, tenantId uuid.UUID, brand string) ([]string, error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)
	b, err := uow.BrandRepository().FindByName(ctx, tenantId, brand)
	if err != nil {
		return nil, fmt.Errorf("resolve brand %q: %w", brand, err)
	}
	if b == nil {
		return nil, nil
	}
	models, err := uow.VehicleModelRepository().FindByBrand(ctx, tenantId, b.Id)
	if err != nil {
		return nil, fmt.Errorf("list models for %q: %w", brand, err)
	}
	names := make([]string, len(models))
	for i, vm := range models {
		names[i] = vm.Name
	}
	return names, nil
}

func (p *GormProvider) ListBodyTypes(ctx context.Context, tenantId uuid.UUID, brand, model string) ([]string, error) {
	vm, err := p.findModel(ctx, tenantId, brand, model)
	if err != nil || vm == nil {
		return nil, err
	}
	names := make([]string, len(vm.BodyTypes))
	for i, bt := range vm.BodyTypes {
		names[i] = bt.Name
	}
	return names, nil
}

func (p *GormProvider) ListOptionPacks(ctx context.Context, tenantId uuid.UUID) ([]string, error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)
	packs, err := uow.OptionPackRepository().FindAll(ctx,
		specification.ByTenant{TenantId: tenantId},
		specification.ActiveOnly{},
		specification.ByPosition(),
	)
	if err != nil {
		return nil, fmt.Errorf("list option packs: %w", err)
	}
	names := make([]string, len(packs))
	for i, pk := range packs {
		names[i] = pk.Name
	}
	return names, nil
}

func (p *GormProvider) FindAvailability(ctx context.Context, tenantId uuid.UUID, brand, model string) (bool, error) {
	vm, err := p.findModel(ctx, tenantId, brand, model)
	if err != nil {
		return false, err
	}
	return vm != nil && vm.Available, nil
}

func (p *GormProvider) findModel(ctx context.Context, tenantId uuid.UUID, brand, model string) (*entity.VehicleModel, error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)
	b, err := uow.BrandRepository().FindByName(ctx, tenantId, brand)
	if err != nil {
		return nil, fmt.Errorf("resolve brand %q: %w", brand, err)
	}
	if b == nil {
		return nil, nil
	}
	found, err := uow.VehicleModelRepository().FindByName(ctx, tenantId, b.Id, model)
	if err != nil {
		return nil, fmt.Errorf("resolve model %q: %w", model, err)
	}
	return found, nil
}
