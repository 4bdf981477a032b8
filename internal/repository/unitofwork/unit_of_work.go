package unitofwork

import (
	"context"

	"ai-showroom-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TenantRepository() contract.TenantRepository
	CategoryRepository() contract.CategoryRepository
	BrandRepository() contract.BrandRepository
	VehicleModelRepository() contract.VehicleModelRepository
	OptionPackRepository() contract.OptionPackRepository
	LeadRepository() contract.LeadRepository
}
