package entities

import "time"

type FoodItem struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	DonorID     uint       `gorm:"not null;index" json:"donor_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `json:"description,omitempty"`
	Quantity    int        `gorm:"not null" json:"quantity"`
	Unit        string     `gorm:"size:50;default:servings" json:"unit"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	PickupStart time.Time  `gorm:"not null" json:"pickup_start"`
	PickupEnd   time.Time  `gorm:"not null" json:"pickup_end"`
	Location    string     `gorm:"size:255" json:"location,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	ImageURL    string     `gorm:"size:500" json:"image_url,omitempty"`
	Status      FoodStatus `gorm:"size:20;default:available;index" json:"status"`

	Donor          *User            `gorm:"foreignKey:DonorID"`
	PickupRequests []*PickupRequest `gorm:"foreignKey:FoodItemID"`
	Timestamp
}
