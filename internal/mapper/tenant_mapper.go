package mapper

import (
	"time"

	"ai-showroom-be/internal/entity"
	"ai-showroom-be/internal/model"
)

type TenantMapper struct{}

func NewTenantMapper() *TenantMapper {
	return &TenantMapper{}
}

func (m *TenantMapper) ToEntity(t *model.Tenant) *entity.Tenant {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Tenant{
		Id:              t.Id,
		Slug:            t.Slug,
		Name:            t.Name,
		ManagerEmail:    t.ManagerEmail,
		CrmSheetId:      t.CrmSheetId,
		TelegramToken:   t.TelegramToken,
		TelegramSecret:  t.TelegramSecret,
		WhatsAppToken:   t.WhatsAppToken,
		WhatsAppPhoneId: t.WhatsAppPhoneId,
		WhatsAppSecret:  t.WhatsAppSecret,
		Active:          t.Active,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *TenantMapper) ToModel(t *entity.Tenant) *model.Tenant {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Tenant{
		Id:              t.Id,
		Slug:            t.Slug,
		Name:            t.Name,
		ManagerEmail:    t.ManagerEmail,
		CrmSheetId:      t.CrmSheetId,
		TelegramToken:   t.TelegramToken,
		TelegramSecret:  t.TelegramSecret,
		WhatsAppToken:   t.WhatsAppToken,
		WhatsAppPhoneId: t.WhatsAppPhoneId,
		WhatsAppSecret:  t.WhatsAppSecret,
		Active:          t.Active,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *TenantMapper) ToEntities(tenants []*model.Tenant) []*entity.Tenant {
	entities := make([]*entity.Tenant, len(tenants))
	for i, t := range tenants {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
