package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is one isolated dealership. Catalogs, sessions and leads never
// cross tenant boundaries.
type Tenant struct {
	Id              uuid.UUID
	Slug            string
	Name            string
	ManagerEmail    string
	CrmSheetId      string
	TelegramToken   string
	TelegramSecret  string
	WhatsAppToken   string
	WhatsAppPhoneId string
	WhatsAppSecret  string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
