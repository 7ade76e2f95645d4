package models

import "time"

const (
	HomeTypeApartment = "apartment"
	HomeTypeHouse     = "house"
)

type Home struct {
	HomeID    uint      `gorm:"primaryKey" json:"home_id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Address   string    `gorm:"not null" json:"address"`
	HomeType  string    `gorm:"not null;default:apartment" json:"home_type"`
	SizeM2    float64   `gorm:"column:size_m2;not null" json:"size_m2"`
	NumRooms  int       `gorm:"not null" json:"num_rooms"`
	HasAC     bool      `gorm:"column:has_ac" json:"has_ac"`
	HasHeater bool      `json:"has_heater"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

func (Home) TableName() string { return "homes" }

// HomeRequest is the payload for creating or editing a home
type HomeRequest struct {
	Address   string  `json:"address" binding:"required"`
	HomeType  string  `json:"home_type"`
	SizeM2    float64 `json:"size_m2"`
	NumRooms  int     `json:"num_rooms"`
	HasAC     bool    `json:"has_ac"`
	HasHeater bool    `json:"has_heater"`
}
