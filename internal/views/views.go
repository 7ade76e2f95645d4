// Package views loads and mutates the data behind each screen of the
// tracker: it fetches rows from the store and hands them to the
// aggregate package.
package views

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homeenergy/server/internal/database"
	"homeenergy/server/internal/models"
	"homeenergy/server/internal/prediction"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("home belongs to another user")

	// ErrUnavailable marks an optional feature that is not configured.
	ErrUnavailable = errors.New("feature not configured")
)

// ValidationError names the offending field of a rejected request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap makes every ValidationError match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Store is the subset of the data store the controllers read and write.
type Store interface {
	ListHomes(ctx context.Context, userID string) ([]models.Home, error)
	GetHome(ctx context.Context, homeID uint) (*models.Home, error)
	CreateHome(ctx context.Context, home *models.Home) error
	UpdateHome(ctx context.Context, home *models.Home) error
	DeleteHome(ctx context.Context, homeID uint) error
	ListHomesMissingCoordinates(ctx context.Context, userID string) ([]models.Home, error)
	UpdateHomeCoordinates(ctx context.Context, homeID uint, lat, lon float64) error

	ListConsumption(ctx context.Context, q database.RecordQuery) ([]models.ConsumptionRecord, error)
	ListBills(ctx context.Context, q database.RecordQuery) ([]models.BillRecord, error)
	CreateConsumptionWithBill(ctx context.Context, record *models.ConsumptionRecord, bill *models.BillRecord) error
	GetBill(ctx context.Context, billID uint) (*models.BillRecord, error)
	MarkBillPaid(ctx context.Context, billID uint, paidAt time.Time) error

	ListAppliances(ctx context.Context, homeIDs []uint) ([]models.Appliance, error)
	CreateAppliance(ctx context.Context, appliance *models.Appliance) error

	ListPredictions(ctx context.Context, userID string, limit int) ([]models.Prediction, error)
	CreatePrediction(ctx context.Context, prediction *models.Prediction) error
}

// PredictionService is the remote bill predictor.
type PredictionService interface {
	Predict(ctx context.Context, req prediction.Request) (*prediction.Response, error)
}

// ownedHome loads a home and checks it belongs to userID.
func ownedHome(ctx context.Context, store Store, userID string, homeID uint) (*models.Home, error) {
	home, err := store.GetHome(ctx, homeID)
	if err != nil {
		return nil, err
	}
	if home.UserID != userID {
		return nil, ErrForbidden
	}
	return home, nil
}
