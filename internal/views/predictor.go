package views

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"homeenergy/server/internal/aggregate"
	"homeenergy/server/internal/models"
	"homeenergy/server/internal/prediction"
)

// PredictionResult is the predictor screen's answer.
type PredictionResult struct {
	HomeID        *uint            `json:"home_id,omitempty"`
	Month         int              `json:"month"`
	HomeSize      float64          `json:"home_size"`
	NumAppliances int              `json:"num_appliances"`
	PredictedBill float64          `json:"predicted_bill"`
	PredictedKwh  float64          `json:"predicted_kwh"`
	Season        aggregate.Season `json:"season"`
	PredictionID  uint             `json:"prediction_id,omitempty"`
}

// Predictor requests bill predictions and stores them.
type Predictor struct {
	store      Store
	service    PredictionService
	confidence float64
	logger     *logrus.Logger
	now        func() time.Time
}

// NewPredictor builds the predictor view. confidence is stored on every
// persisted prediction because the service does not report one.
func NewPredictor(store Store, service PredictionService, confidence float64, logger *logrus.Logger) *Predictor {
	if logger == nil {
		logger = logrus.New()
	}
	return &Predictor{
		store:      store,
		service:    service,
		confidence: confidence,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Predict asks the prediction service for a bill. Missing inputs are taken
// from the selected home. The result is stored only when a home was chosen
// and the service succeeded.
func (p *Predictor) Predict(ctx context.Context, userID string, req models.PredictRequest) (*PredictionResult, error) {
	if req.Month < 1 || req.Month > 12 {
		return nil, invalid("month", "must be between 1 and 12")
	}

	var (
		homeSize      float64
		numAppliances int
	)
	if req.HomeID != nil {
		home, err := ownedHome(ctx, p.store, userID, *req.HomeID)
		if err != nil {
			return nil, err
		}
		appliances, err := p.store.ListAppliances(ctx, []uint{home.HomeID})
		if err != nil {
			return nil, fmt.Errorf("failed to load appliances: %w", err)
		}
		homeSize = home.SizeM2
		numAppliances = aggregate.TotalAppliances(appliances)
	}
	if req.HomeSize != nil {
		homeSize = *req.HomeSize
	}
	if req.NumAppliances != nil {
		numAppliances = *req.NumAppliances
	}
	if homeSize <= 0 {
		return nil, invalid("home_size", "must be positive")
	}
	if numAppliances < 0 {
		return nil, invalid("num_appliances", "must not be negative")
	}

	resp, err := p.service.Predict(ctx, prediction.Request{
		HomeSize:      homeSize,
		NumAppliances: numAppliances,
		Month:         req.Month,
	})
	if err != nil {
		return nil, err
	}

	result := &PredictionResult{
		HomeID:        req.HomeID,
		Month:         req.Month,
		HomeSize:      homeSize,
		NumAppliances: numAppliances,
		PredictedBill: resp.PredictedBill,
		PredictedKwh:  aggregate.EstimateKwh(resp.PredictedBill),
		Season:        aggregate.SeasonFor(req.Month),
	}

	if req.HomeID != nil {
		record := &models.Prediction{
			HomeID:            *req.HomeID,
			UserID:            userID,
			PredictedKwh:      result.PredictedKwh,
			PredictedBill:     result.PredictedBill,
			MLConfidenceScore: p.confidence,
			PredictionDate:    p.now(),
		}
		if err := p.store.CreatePrediction(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to save prediction: %w", err)
		}
		result.PredictionID = record.PredictionID
	}

	p.logger.WithFields(logrus.Fields{
		"user_id":        userID,
		"month":          req.Month,
		"predicted_bill": resp.PredictedBill,
	}).Info("Prediction completed")
	return result, nil
}
