package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Lead struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Kind      string         `gorm:"type:varchar(32);not null;index"`
	Channel   string         `gorm:"type:varchar(16);not null"`
	UserRef   string         `gorm:"type:varchar(128);not null"`
	Category  string         `gorm:"type:varchar(255)"`
	Brand     string         `gorm:"type:varchar(255)"`
	Model     string         `gorm:"type:varchar(255)"`
	BodyType  string         `gorm:"type:varchar(255)"`
	Options   datatypes.JSON `gorm:"type:jsonb"` // []string
	Price     int64          `gorm:"not null;default:0"`
	PriceNote string         `gorm:"type:varchar(64)"`
	Contact   string         `gorm:"type:text"`
	Exported  bool           `gorm:"not null;default:false;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Lead) TableName() string {
	return "leads"
}
