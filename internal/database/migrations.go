package database

import (
	"fmt"

	"gorm.io/gorm"

	"homeenergy/server/internal/models"
)

// MigrateSchema creates or updates every table the application uses.
func MigrateSchema(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Home{},
		&models.ConsumptionRecord{},
		&models.BillRecord{},
		&models.Appliance{},
		&models.Prediction{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (d *Database) RunMigrations() error {
	return MigrateSchema(d.db)
}
