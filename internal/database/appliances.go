package database

import (
	"context"
	"fmt"

	"homeenergy/server/internal/models"
)

// ListAppliances returns the appliances of the given homes.
func (d *Database) ListAppliances(ctx context.Context, homeIDs []uint) ([]models.Appliance, error) {
	appliances := []models.Appliance{}
	if len(homeIDs) == 0 {
		return appliances, nil
	}
	err := d.db.WithContext(ctx).
		Where("home_id IN ?", homeIDs).
		Order("appliance_id").
		Find(&appliances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appliances: %w", err)
	}
	return appliances, nil
}

// CreateAppliance inserts an appliance.
func (d *Database) CreateAppliance(ctx context.Context, appliance *models.Appliance) error {
	if err := d.db.WithContext(ctx).Create(appliance).Error; err != nil {
		return fmt.Errorf("failed to create appliance: %w", translate(err))
	}
	return nil
}
