package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"homeenergy/server/internal/models"
)

// ListHomes returns a user's homes, newest first.
func (d *Database) ListHomes(ctx context.Context, userID string) ([]models.Home, error) {
	var homes []models.Home
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("home_id DESC").
		Find(&homes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list homes: %w", err)
	}
	return homes, nil
}

// GetHome returns a home or ErrNotFound.
func (d *Database) GetHome(ctx context.Context, homeID uint) (*models.Home, error) {
	var home models.Home
	if err := d.db.WithContext(ctx).First(&home, homeID).Error; err != nil {
		return nil, translate(err)
	}
	return &home, nil
}

// CreateHome inserts a home and sets its id.
func (d *Database) CreateHome(ctx context.Context, home *models.Home) error {
	if err := d.db.WithContext(ctx).Create(home).Error; err != nil {
		return fmt.Errorf("failed to create home: %w", translate(err))
	}
	return nil
}

// UpdateHome saves the editable attributes of a home.
func (d *Database) UpdateHome(ctx context.Context, home *models.Home) error {
	result := d.db.WithContext(ctx).
		Model(&models.Home{}).
		Where("home_id = ?", home.HomeID).
		Updates(map[string]interface{}{
			"address":    home.Address,
			"home_type":  home.HomeType,
			"size_m2":    home.SizeM2,
			"num_rooms":  home.NumRooms,
			"has_ac":     home.HasAC,
			"has_heater": home.HasHeater,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update home: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteHome removes a home together with its appliances, consumption,
// bills and predictions.
func (d *Database) DeleteHome(ctx context.Context, homeID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []interface{}{
			&models.Appliance{},
			&models.ConsumptionRecord{},
			&models.BillRecord{},
			&models.Prediction{},
		}
		for _, model := range dependents {
			if err := tx.Where("home_id = ?", homeID).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete dependents of home %d: %w", homeID, err)
			}
		}

		result := tx.Delete(&models.Home{}, homeID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete home: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListHomesMissingCoordinates returns a user's homes that were never geocoded.
func (d *Database) ListHomesMissingCoordinates(ctx context.Context, userID string) ([]models.Home, error) {
	var homes []models.Home
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND (latitude IS NULL OR longitude IS NULL)", userID).
		Find(&homes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list homes without coordinates: %w", err)
	}
	return homes, nil
}

// UpdateHomeCoordinates stores geocoded coordinates for a home.
func (d *Database) UpdateHomeCoordinates(ctx context.Context, homeID uint, lat, lon float64) error {
	err := d.db.WithContext(ctx).
		Model(&models.Home{}).
		Where("home_id = ?", homeID).
		Updates(map[string]interface{}{"latitude": lat, "longitude": lon}).Error
	if err != nil {
		return fmt.Errorf("failed to update coordinates: %w", err)
	}
	return nil
}
