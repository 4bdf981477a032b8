package model

import (
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug            string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name            string    `gorm:"type:varchar(255);not null"`
	ManagerEmail    string    `gorm:"type:varchar(255)"`
	CrmSheetId      string    `gorm:"type:varchar(128)"`
	TelegramToken   string    `gorm:"type:varchar(128)"`
	TelegramSecret  string    `gorm:"type:varchar(128)"`
	WhatsAppToken   string    `gorm:"type:varchar(255)"`
	WhatsAppPhoneId string    `gorm:"type:varchar(64)"`
	WhatsAppSecret  string    `gorm:"type:varchar(128)"`
	Active          bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Tenant) TableName() string {
	return "tenants"
}
