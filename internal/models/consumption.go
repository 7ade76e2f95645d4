package models

import "time"

// ConsumptionRecord is one month of measured usage for a home.
// (HomeID, Month, Year) is unique.
type ConsumptionRecord struct {
	ConsumptionID uint      `gorm:"primaryKey" json:"consumption_id"`
	HomeID        uint      `gorm:"not null;uniqueIndex:idx_consumption_home_period" json:"home_id"`
	Month         int       `gorm:"not null;uniqueIndex:idx_consumption_home_period" json:"month"`
	Year          int       `gorm:"not null;uniqueIndex:idx_consumption_home_period" json:"year"`
	KwhUsed       float64   `gorm:"not null" json:"kwh_used"`
	BillAmount    float64   `gorm:"not null" json:"bill_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ConsumptionRecord) TableName() string { return "energy_consumption" }

type BillRecord struct {
	BillID      uint       `gorm:"primaryKey" json:"bill_id"`
	HomeID      uint       `gorm:"not null;uniqueIndex:idx_bill_home_period" json:"home_id"`
	Month       int        `gorm:"not null;uniqueIndex:idx_bill_home_period" json:"month"`
	Year        int        `gorm:"not null;uniqueIndex:idx_bill_home_period" json:"year"`
	ActualBill  float64    `gorm:"not null" json:"actual_bill"`
	DueDate     time.Time  `json:"due_date"`
	IsPaid      bool       `json:"is_paid"`
	PaymentDate *time.Time `json:"payment_date"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (BillRecord) TableName() string { return "bill_history" }

// ConsumptionRequest records a month of usage together with its bill
type ConsumptionRequest struct {
	Month      int        `json:"month"`
	Year       int        `json:"year"`
	KwhUsed    float64    `json:"kwh_used"`
	BillAmount float64    `json:"bill_amount"`
	DueDate    *time.Time `json:"due_date"`
}
