package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Category struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Position int       `gorm:"not null;default:0"`
	Active   bool      `gorm:"not null;default:true"`
}

func (Category) TableName() string {
	return "categories"
}

type Brand struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Position int       `gorm:"not null;default:0"`
	Active   bool      `gorm:"not null;default:true"`
}

func (Brand) TableName() string {
	return "brands"
}

type VehicleModel struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	BrandId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	BodyTypes datatypes.JSON `gorm:"type:jsonb"` // []entity.BodyType
	BasePrice int64          `gorm:"not null;default:0"`
	Available bool           `gorm:"not null;default:true"`
	Position  int            `gorm:"not null;default:0"`
}

func (VehicleModel) TableName() string {
	return "vehicle_models"
}

type OptionPack struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Price    int64     `gorm:"not null;default:0"`
	Position int       `gorm:"not null;default:0"`
	Active   bool      `gorm:"not null;default:true"`
}

func (OptionPack) TableName() string {
	return "option_packs"
}
