package entities

import "encoding/json"

type Notification struct {
	ID      uint             `gorm:"primaryKey" json:"id"`
	UserID  uint             `gorm:"not null;index" json:"user_id"`
	Type    NotificationType `gorm:"size:30;not null" json:"type"`
	Title   string           `gorm:"size:200;not null" json:"title"`
	Message string           `gorm:"not null" json:"message"`
	Payload json.RawMessage  `gorm:"type:jsonb" json:"payload,omitempty"`
	IsRead  bool             `gorm:"default:false" json:"is_read"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
