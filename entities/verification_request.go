package entities

import "time"

type VerificationRequest struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"user_id"`
	OrganizationName string     `gorm:"size:200" json:"organization_name,omitempty"`
	OrganizationType string     `gorm:"size:30;not null" json:"organization_type"` // "restaurant", "ngo", "shelter", "food_bank", "other"
	DocumentURL      string     `gorm:"size:500" json:"document_url,omitempty"`
	Description      string     `json:"description,omitempty"`
	Status           string     `gorm:"size:20;default:pending;index" json:"status"` // "pending", "approved", "rejected"
	AdminNotes       string     `json:"admin_notes,omitempty"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy       *uint      `json:"reviewed_by,omitempty"`

	User     *User `gorm:"foreignKey:UserID"`
	Reviewer *User `gorm:"foreignKey:ReviewedBy"`
	Timestamp
}
