package contract

import (
	"context"

	"ai-showroom-be/internal/entity"
	"ai-showroom-be/internal/repository/specification"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	Update(ctx context.Context, tenant *entity.Tenant) error
	FindBySlug(ctx context.Context, slug string) (*entity.Tenant, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Tenant, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Tenant, error)
}
