package contract

import (
	"context"

	"ai-showroom-be/internal/entity"
	"ai-showroom-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error)
}

type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Brand, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Brand, error)
	FindByName(ctx context.Context, tenantId uuid.UUID, name string) (*entity.Brand, error)
}

type VehicleModelRepository interface {
	Create(ctx context.Context, model *entity.VehicleModel) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VehicleModel, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VehicleModel, error)
	FindByBrand(ctx context.Context, tenantId, brandId uuid.UUID) ([]*entity.VehicleModel, error)
	FindByName(ctx context.Context, tenantId, brandId uuid.UUID, name string) (*entity.VehicleModel, error)
}

type OptionPackRepository interface {
	Create(ctx context.Context, pack *entity.OptionPack) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OptionPack, error)
	FindByNames(ctx context.Context, tenantId uuid.UUID, names []string) ([]*entity.OptionPack, error)
}
