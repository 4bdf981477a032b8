package implementation

import (
	"context"
	"errors"

	"ai-showroom-be/internal/entity"
	"ai-showroom-be/internal/mapper"
	"ai-showroom-be/internal/model"
	"ai-showroom-be/internal/repository/contract"
	"ai-showroom-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category

type CategoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewCategoryRepository(db *gorm.DB) contract.CategoryRepository {
	return &CategoryRepositoryImpl{db: db, mapper: mapper.NewCatalogMapper()}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *entity.Category) error {
	m := r.mapper.CategoryToModel(category)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*category = *r.mapper.CategoryToEntity(m)
	return nil
}

func (r *CategoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	var models []*model.Category
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.CategoriesToEntities(models), nil
}

func (r *CategoryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error) {
	var m model.Category
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CategoryToEntity(&m), nil
}

// Brand

type BrandRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewBrandRepository(db *gorm.DB) contract.BrandRepository {
	return &BrandRepositoryImpl{db: db, mapper: mapper.NewCatalogMapper()}
}

func (r *BrandRepositoryImpl) Create(ctx context.Context, brand *entity.Brand) error {
	m := r.mapper.BrandToModel(brand)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*brand = *r.mapper.BrandToEntity(m)
	return nil
}

func (r *BrandRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Brand, error) {
	var models []*model.Brand
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.BrandsToEntities(models), nil
}

func (r *BrandRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Brand, error) {
	var m model.Brand
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.BrandToEntity(&m), nil
}

func (r *BrandRepositoryImpl) FindByName(ctx context.Context, tenantId uuid.UUID, name string) (*entity.Brand, error) {
	var m model.Brand
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name = ?", tenantId, name).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.BrandToEntity(&m), nil
}

// VehicleModel

type VehicleModelRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewVehicleModelRepository(db *gorm.DB) contract.VehicleModelRepository {
	return &VehicleModelRepositoryImpl{db: db, mapper: mapper.NewCatalogMapper()}
}

func (r *VehicleModelRepositoryImpl) Create(ctx context.Context, vm *entity.VehicleModel) error {
	m := r.mapper.VehicleModelToModel(vm)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*vm = *r.mapper.VehicleModelToEntity(m)
	return nil
}

func (r *VehicleModelRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VehicleModel, error) {
	var models []*model.VehicleModel
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.VehicleModelsToEntities(models), nil
}

func (r *VehicleModelRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VehicleModel, error) {
	var m model.VehicleModel
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.VehicleModelToEntity(&m), nil
}

func (r *VehicleModelRepositoryImpl) FindByBrand(ctx context.Context, tenantId, brandId uuid.UUID) ([]*entity.VehicleModel, error) {
	var models []*model.VehicleModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND brand_id = ?", tenantId, brandId).
		Order("position ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.VehicleModelsToEntities(models), nil
}

func (r *VehicleModelRepositoryImpl) FindByName(ctx context.Context, tenantId, brandId uuid.UUID, name string) (*entity.VehicleModel, error) {
	var m model.VehicleModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND brand_id = ? AND name = ?", tenantId, brandId, name).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.VehicleModelToEntity(&m), nil
}

// OptionPack

type OptionPackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewOptionPackRepository(db *gorm.DB) contract.OptionPackRepository {
	return &OptionPackRepositoryImpl{db: db, mapper: mapper.NewCatalogMapper()}
}

func (r *OptionPackRepositoryImpl) Create(ctx context.Context, pack *entity.OptionPack) error {
	m := r.mapper.OptionPackToModel(pack)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*pack = *r.mapper.OptionPackToEntity(m)
	return nil
}

func (r *OptionPackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OptionPack, error) {
	var models []*model.OptionPack
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.OptionPacksToEntities(models), nil
}

func (r *OptionPackRepositoryImpl) FindByNames(ctx context.Context, tenantId uuid.UUID, names []string) ([]*entity.OptionPack, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var models []*model.OptionPack
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND name IN ?", tenantId, names).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.OptionPacksToEntities(models), nil
}
