package entity

import (
	"github.com/google/uuid"
)

type Category struct {
	Id       uuid.UUID
	TenantId uuid.UUID
	Name     string
	Position int
	Active   bool
}

type Brand struct {
	Id       uuid.UUID
	TenantId uuid.UUID
	Name     string
	Position int
	Active   bool
}

// BodyType is one body variant of a vehicle model with its price delta
// relative to the model base price.
type BodyType struct {
	Name       string `json:"name"`
	PriceDelta int64  `json:"price_delta"`
}

type VehicleModel struct {
	Id        uuid.UUID
	TenantId  uuid.UUID
	BrandId   uuid.UUID
	Name      string
	BodyTypes []BodyType
	BasePrice int64
	Available bool
	Position  int
}

type OptionPack struct {
	Id       uuid.UUID
	TenantId uuid.UUID
	Name     string
	Price    int64
	Position int
	Active   bool
}
