package pricing

import (
	"testing"

	"ai-showroom-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestComposeBaseOnly(t *testing.T) {
	vm := &entity.VehicleModel{Name: "Camry", BasePrice: 28000}

	q := Compose(vm, "", nil)

	assert.Equal(t, int64(28000), q.Total)
	assert.Len(t, q.Lines, 1)
	assert.Equal(t, "Camry base price", q.Lines[0].Label)
}

func TestComposeWithBodyTypeAndOptions(t *testing.T) {
	vm := &entity.VehicleModel{
		Name:      "Camry",
		BasePrice: 28000,
		BodyTypes: []entity.BodyType{
			{Name: "Sedan", PriceDelta: 0},
			{Name: "Hybrid", PriceDelta: 3500},
		},
	}
	packs := []*entity.OptionPack{
		{Name: "Winter pack", Price: 900},
		{Name: "Premium sound", Price: 1200},
	}

	q := Compose(vm, "Hybrid", packs)

	assert.Equal(t, int64(28000+3500+900+1200), q.Total)
	assert.Len(t, q.Lines, 4)
	assert.Equal(t, "Hybrid", q.Lines[1].Label)
}

func TestComposeZeroDeltaBodyTypeOmitted(t *testing.T) {
	vm := &entity.VehicleModel{
		Name:      "Golf",
		BasePrice: 22000,
		BodyTypes: []entity.BodyType{{Name: "Hatchback", PriceDelta: 0}},
	}

	q := Compose(vm, "Hatchback", nil)

	assert.Equal(t, int64(22000), q.Total)
	assert.Len(t, q.Lines, 1, "zero-delta body type should not add a line")
}

func TestComposeUnknownBodyTypeIgnored(t *testing.T) {
	vm := &entity.VehicleModel{Name: "Golf", BasePrice: 22000}

	q := Compose(vm, "Cabrio", nil)

	assert.Equal(t, int64(22000), q.Total)
}
