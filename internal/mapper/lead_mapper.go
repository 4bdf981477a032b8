package mapper

import (
	"encoding/json"

	"ai-showroom-be/internal/entity"
	"ai-showroom-be/internal/model"

	"gorm.io/datatypes"
)

type LeadMapper struct{}

func NewLeadMapper() *LeadMapper {
	return &LeadMapper{}
}

func (m *LeadMapper) ToEntity(l *model.Lead) *entity.Lead {
	if l == nil {
		return nil
	}

	var options []string
	if len(l.Options) > 0 {
		_ = json.Unmarshal(l.Options, &options)
	}

	return &entity.Lead{
		Id:        l.Id,
		TenantId:  l.TenantId,
		Kind:      l.Kind,
		Channel:   l.Channel,
		UserRef:   l.UserRef,
		Category:  l.Category,
		Brand:     l.Brand,
		Model:     l.Model,
		BodyType:  l.BodyType,
		Options:   options,
		Price:     l.Price,
		PriceNote: l.PriceNote,
		Contact:   l.Contact,
		Exported:  l.Exported,
		CreatedAt: l.CreatedAt,
	}
}

func (m *LeadMapper) ToModel(l *entity.Lead) *model.Lead {
	if l == nil {
		return nil
	}

	var options datatypes.JSON
	if len(l.Options) > 0 {
		raw, err := json.Marshal(l.Options)
		if err == nil {
			options = raw
		}
	}

	return &model.Lead{
		Id:        l.Id,
		TenantId:  l.TenantId,
		Kind:      l.Kind,
		Channel:   l.Channel,
		UserRef:   l.UserRef,
		Category:  l.Category,
		Brand:     l.Brand,
		Model:     l.Model,
		BodyType:  l.BodyType,
		Options:   options,
		Price:     l.Price,
		PriceNote: l.PriceNote,
		Contact:   l.Contact,
		Exported:  l.Exported,
		CreatedAt: l.CreatedAt,
	}
}

func (m *LeadMapper) ToEntities(leads []*model.Lead) []*entity.Lead {
	entities := make([]*entity.Lead, len(leads))
	for i, l := range leads {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
