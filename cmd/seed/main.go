package main

import (
	"encoding/json"
	"log"

	"ai-showroom-be/internal/config"
	"ai-showroom-be/internal/entity"
	"ai-showroom-be/internal/model"
	"ai-showroom-be/pkg/database"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeds a demo dealership with a small two-brand catalog, enough to click
// through every funnel path locally.
func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	tenant := model.Tenant{
		Slug:           "demo-motors",
		Name:           "Demo Motors",
		ManagerEmail:   "manager@demo-motors.test",
		TelegramSecret: "demo-telegram-secret",
		WhatsAppSecret: "demo-whatsapp-secret",
		Active:         true,
	}

	var existing model.Tenant
	err = gormDB.Where("slug = ?", tenant.Slug).First(&existing).Error
	if err == nil {
		log.Printf("Tenant %q already seeded (id %s), nothing to do", tenant.Slug, existing.Id)
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("Tenant lookup failed: %v", err)
	}

	if err := gormDB.Create(&tenant).Error; err != nil {
		log.Fatalf("Failed to create tenant: %v", err)
	}

	categories := []model.Category{
		{TenantId: tenant.Id, Name: "New cars", Position: 1, Active: true},
		{TenantId: tenant.Id, Name: "Pre-owned", Position: 2, Active: true},
	}
	if err := gormDB.Create(&categories).Error; err != nil {
		log.Fatalf("Failed to create categories: %v", err)
	}

	brands := []model.Brand{
		{TenantId: tenant.Id, Name: "Toyota", Position: 1, Active: true},
		{TenantId: tenant.Id, Name: "Audi", Position: 2, Active: true},
		{TenantId: tenant.Id, Name: "Volkswagen", Position: 3, Active: true},
	}
	if err := gormDB.Create(&brands).Error; err != nil {
		log.Fatalf("Failed to create brands: %v", err)
	}

	vehicles := []model.VehicleModel{
		{
			TenantId: tenant.Id, BrandId: brands[0].Id, Name: "Camry",
			BodyTypes: bodyTypes(
				entity.BodyType{Name: "Sedan", PriceDelta: 0},
				entity.BodyType{Name: "Hybrid", PriceDelta: 3500},
			),
			BasePrice: 28000, Available: true, Position: 1,
		},
		{
			TenantId: tenant.Id, BrandId: brands[0].Id, Name: "Corolla",
			BodyTypes: bodyTypes(
				entity.BodyType{Name: "Sedan", PriceDelta: 0},
				entity.BodyType{Name: "Hatchback", PriceDelta: 800},
			),
			BasePrice: 22000, Available: true, Position: 2,
		},
		{
			TenantId: tenant.Id, BrandId: brands[0].Id, Name: "Land Cruiser",
			BasePrice: 56000, Available: false, Position: 3, // exercises the custom-order path
		},
		{
			TenantId: tenant.Id, BrandId: brands[1].Id, Name: "A4",
			BodyTypes: bodyTypes(
				entity.BodyType{Name: "Sedan", PriceDelta: 0},
				entity.BodyType{Name: "Avant", PriceDelta: 2100},
			),
			BasePrice: 41000, Available: true, Position: 1,
		},
		{
			TenantId: tenant.Id, BrandId: brands[1].Id, Name: "Q5",
			BasePrice: 48000, Available: true, Position: 2,
		},
		{
			TenantId: tenant.Id, BrandId: brands[2].Id, Name: "Golf",
			BodyTypes: bodyTypes(
				entity.BodyType{Name: "Hatchback", PriceDelta: 0},
				entity.BodyType{Name: "Variant", PriceDelta: 1400},
			),
			BasePrice: 25000, Available: true, Position: 1,
		},
	}
	if err := gormDB.Create(&vehicles).Error; err != nil {
		log.Fatalf("Failed to create vehicle models: %v", err)
	}

	packs := []model.OptionPack{
		{TenantId: tenant.Id, Name: "Winter pack", Price: 900, Position: 1, Active: true},
		{TenantId: tenant.Id, Name: "Premium sound", Price: 1200, Position: 2, Active: true},
		{TenantId: tenant.Id, Name: "Towing kit", Price: 650, Position: 3, Active: true},
	}
	if err := gormDB.Create(&packs).Error; err != nil {
		log.Fatalf("Failed to create option packs: %v", err)
	}

	log.Printf("✅ Seeded tenant %q (id %s)", tenant.Slug, tenant.Id)
}

func bodyTypes(types ...entity.BodyType) datatypes.JSON {
	raw, err := json.Marshal(types)
	if err != nil {
		log.Fatalf("Failed to marshal body types: %v", err)
	}
	return datatypes.JSON(raw)
}
