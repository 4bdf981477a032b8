package mapper

import (
	"encoding/json"

	"ai-showroom-be/internal/entity"
	"ai-showroom-be/internal/model"

	"gorm.io/datatypes"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) CategoryToEntity(c *model.Category) *entity.Category {
	if c == nil {
		return nil
	}
	return &entity.Category{
		Id:       c.Id,
		TenantId: c.TenantId,
		Name:     c.Name,
		Position: c.Position,
		Active:   c.Active,
	}
}

func (m *CatalogMapper) CategoryToModel(c *entity.Category) *model.Category {
	if c == nil {
		return nil
	}
	return &model.Category{
		Id:       c.Id,
		TenantId: c.TenantId,
		Name:     c.Name,
		Position: c.Position,
		Active:   c.Active,
	}
}

func (m *CatalogMapper) CategoriesToEntities(categories []*model.Category) []*entity.Category {
	entities := make([]*entity.Category, len(categories))
	for i, c := range categories {
		entities[i] = m.CategoryToEntity(c)
	}
	return entities
}

func (m *CatalogMapper) BrandToEntity(b *model.Brand) *entity.Brand {
	if b == nil {
		return nil
	}
	return &entity.Brand{
		Id:       b.Id,
		TenantId: b.TenantId,
		Name:     b.Name,
		Position: b.Position,
		Active:   b.Active,
	}
}

func (m *CatalogMapper) BrandToModel(b *entity.Brand) *model.Brand {
	if b == nil {
		return nil
	}
	return &model.Brand{
		Id:       b.Id,
		TenantId: b.TenantId,
		Name:     b.Name,
		Position: b.Position,
		Active:   b.Active,
	}
}

func (m *CatalogMapper) BrandsToEntities(brands []*model.Brand) []*entity.Brand {
	entities := make([]*entity.Brand, len(brands))
	for i, b := range brands {
		entities[i] = m.BrandToEntity(b)
	}
	return entities
}

func (m *CatalogMapper) VehicleModelToEntity(v *model.VehicleModel) *entity.VehicleModel {
	if v == nil {
		return nil
	}

	var bodyTypes []entity.BodyType
	if len(v.BodyTypes) > 0 {
		// A malformed column degrades to "no body types"; the funnel then
		// skips the body-type step instead of failing the request.
		_ = json.Unmarshal(v.BodyTypes, &bodyTypes)
	}

	return &entity.VehicleModel{
		Id:        v.Id,
		TenantId:  v.TenantId,
		BrandId:   v.BrandId,
		Name:      v.Name,
		BodyTypes: bodyTypes,
		BasePrice: v.BasePrice,
		Available: v.Available,
		Position:  v.Position,
	}
}

func (m *CatalogMapper) VehicleModelToModel(v *entity.VehicleModel) *model.VehicleModel {
	if v == nil {
		return nil
	}

	var bodyTypes datatypes.JSON
	if len(v.BodyTypes) > 0 {
		raw, err := json.Marshal(v.BodyTypes)
		if err == nil {
			bodyTypes = raw
		}
	}

	return &model.VehicleModel{
		Id:        v.Id,
		TenantId:  v.TenantId,
		BrandId:   v.BrandId,
		Name:      v.Name,
		BodyTypes: bodyTypes,
		BasePrice: v.BasePrice,
		Available: v.Available,
		Position:  v.Position,
	}
}

func (m *CatalogMapper) VehicleModelsToEntities(models []*model.VehicleModel) []*entity.VehicleModel {
	entities := make([]*entity.VehicleModel, len(models))
	for i, v := range models {
		entities[i] = m.VehicleModelToEntity(v)
	}
	return entities
}

func (m *CatalogMapper) OptionPackToEntity(o *model.OptionPack) *entity.OptionPack {
	if o == nil {
		return nil
	}
	return &entity.OptionPack{
		Id:       o.Id,
		TenantId: o.TenantId,
		Name:     o.Name,
		Price:    o.Price,
		Position: o.Position,
		Active:   o.Active,
	}
}

func (m *CatalogMapper) OptionPackToModel(o *entity.OptionPack) *model.OptionPack {
	if o == nil {
		return nil
	}
	return &model.OptionPack{
		Id:       o.Id,
		TenantId: o.TenantId,
		Name:     o.Name,
		Price:    o.Price,
		Position: o.Position,
		Active:   o.Active,
	}
}

func (m *CatalogMapper) OptionPacksToEntities(packs []*model.OptionPack) []*entity.OptionPack {
	entities := make([]*entity.OptionPack, len(packs))
	for i, o := range packs {
		entities[i] = m.OptionPackToEntity(o)
	}
	return entities
}
