package models

import "time"

type Prediction struct {
	PredictionID      uint      `gorm:"primaryKey" json:"prediction_id"`
	HomeID            uint      `gorm:"index;not null" json:"home_id"`
	UserID            string    `gorm:"index;not null" json:"user_id"`
	PredictedKwh      float64   `json:"predicted_kwh"`
	PredictedBill     float64   `json:"predicted_bill"`
	MLConfidenceScore float64   `gorm:"column:ml_confidence_score" json:"ml_confidence_score"`
	PredictionDate    time.Time `gorm:"index" json:"prediction_date"`
}

func (Prediction) TableName() string { return "predictions" }

// PredictRequest carries the predictor form. HomeSize and NumAppliances
// fall back to the selected home's values when omitted.
type PredictRequest struct {
	HomeID        *uint    `json:"home_id"`
	HomeSize      *float64 `json:"home_size"`
	NumAppliances *int     `json:"num_appliances"`
	Month         int      `json:"month"`
}
