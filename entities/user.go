package entities

type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Name         string   `gorm:"size:100;not null" json:"name"`
	Email        string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"size:255;not null" json:"-"`
	Role         string   `gorm:"size:20;not null" json:"role"` // "donor", "beneficiary", "admin"
	Phone        string   `gorm:"size:20" json:"phone,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Address      string   `json:"address,omitempty"`
	Verified     bool     `gorm:"default:false" json:"verified"`

	FoodItems      []*FoodItem      `gorm:"foreignKey:DonorID"`
	PickupRequests []*PickupRequest `gorm:"foreignKey:BeneficiaryID"`
	Notifications  []*Notification  `gorm:"foreignKey:UserID"`
	Timestamp
}
