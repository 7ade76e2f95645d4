package models

import "time"

// ApplianceTypes lists the accepted appliance categories
var ApplianceTypes = []string{
	"fridge",
	"tv",
	"ac",
	"heater",
	"washing_machine",
	"dishwasher",
	"microwave",
	"oven",
	"computer",
	"other",
}

type Appliance struct {
	ApplianceID    uint      `gorm:"primaryKey" json:"appliance_id"`
	HomeID         uint      `gorm:"index;not null" json:"home_id"`
	ApplianceType  string    `gorm:"not null" json:"appliance_type"`
	Quantity       int       `gorm:"not null;default:1" json:"quantity"`
	Wattage        float64   `gorm:"not null" json:"wattage"`
	AvgHoursPerDay float64   `gorm:"not null" json:"avg_hours_per_day"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Appliance) TableName() string { return "appliances" }

type ApplianceRequest struct {
	ApplianceType  string  `json:"appliance_type" binding:"required"`
	Quantity       int     `json:"quantity"`
	Wattage        float64 `json:"wattage"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
}
