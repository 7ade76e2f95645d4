package database

import (
	"context"
	"fmt"

	"homeenergy/server/internal/models"
)

// ListPredictions returns a user's most recent predictions.
func (d *Database) ListPredictions(ctx context.Context, userID string, limit int) ([]models.Prediction, error) {
	predictions := []models.Prediction{}
	query := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("prediction_date DESC").
		Order("prediction_id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&predictions).Error; err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	return predictions, nil
}

// CreatePrediction inserts a prediction.
func (d *Database) CreatePrediction(ctx context.Context, prediction *models.Prediction) error {
	if err := d.db.WithContext(ctx).Create(prediction).Error; err != nil {
		return fmt.Errorf("failed to create prediction: %w", translate(err))
	}
	return nil
}
