package entities

import "time"

type PickupRequest struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	FoodItemID    uint          `gorm:"not null;index" json:"food_item_id"`
	BeneficiaryID uint          `gorm:"not null;index" json:"beneficiary_id"`
	Status        RequestStatus `gorm:"size:20;default:pending;index" json:"status"`
	Message       string        `json:"message,omitempty"`
	RequestedAt   time.Time     `json:"requested_at"`
	RespondedAt   *time.Time    `json:"responded_at,omitempty"`
	PickedAt      *time.Time    `json:"picked_at,omitempty"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`

	FoodItem    *FoodItem `gorm:"foreignKey:FoodItemID"`
	Beneficiary *User     `gorm:"foreignKey:BeneficiaryID"`
	Timestamp
}
