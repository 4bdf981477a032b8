package main

import (
	"log"

	"ai-showroom-be/internal/config"
	"ai-showroom-be/internal/model"
	"ai-showroom-be/pkg/database"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	log.Println("Running migrations...")
	err = gormDB.AutoMigrate(
		&model.Tenant{},
		&model.Category{},
		&model.Brand{},
		&model.VehicleModel{},
		&model.OptionPack{},
		&model.Lead{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("✅ Migrations complete")
}
