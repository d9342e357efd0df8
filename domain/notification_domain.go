package domain

import (
	"encoding/json"
	"errors"
	"time"

	"foodbridge-backend/entities"
)

var (
	MessageSuccessGetNotifications = "notifications retrieved successfully"
	MessageSuccessMarkRead         = "notification marked as read"

	MessageFailedGetNotifications = "failed to retrieve notifications"
	MessageFailedMarkRead         = "failed to mark notification as read"

	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationPayload is the structured payload attached to a notification.
// Each notification type carries its own variant; the emitter serializes the
// variant as the record's JSON payload.
type NotificationPayload interface {
	NotificationType() entities.NotificationType
}

type (
	// NewListingPayload accompanies new_listing broadcasts to nearby
	// beneficiaries. Distance is in kilometers, rounded to two decimals.
	NewListingPayload struct {
		FoodItemID uint    `json:"food_item_id"`
		Distance   float64 `json:"distance"`
	}

	// PickupRequestPayload accompanies the pickup_request notification sent
	// to the donor when a beneficiary claims an item.
	PickupRequestPayload struct {
		RequestID   uint   `json:"request_id"`
		Beneficiary string `json:"beneficiary"`
	}

	// RequestDecisionPayload accompanies request_accepted and
	// request_rejected notifications sent to the beneficiary.
	RequestDecisionPayload struct {
		RequestID uint `json:"request_id"`
		Accepted  bool `json:"-"`
	}

	// PickupCompletedPayload accompanies the pickup_completed notification.
	PickupCompletedPayload struct {
		RequestID  uint `json:"request_id"`
		FoodItemID uint `json:"food_item_id"`
	}
)

func (NewListingPayload) NotificationType() entities.NotificationType {
	return entities.NotifyNewListing
}

func (PickupRequestPayload) NotificationType() entities.NotificationType {
	return entities.NotifyPickupRequest
}

func (p RequestDecisionPayload) NotificationType() entities.NotificationType {
	if p.Accepted {
		return entities.NotifyRequestAccepted
	}
	return entities.NotifyRequestRejected
}

func (PickupCompletedPayload) NotificationType() entities.NotificationType {
	return entities.NotifyPickupCompleted
}

type (
	NotificationResponse struct {
		ID        uint            `json:"id"`
		UserID    uint            `json:"user_id"`
		Type      string          `json:"type"`
		Title     string          `json:"title"`
		Message   string          `json:"message"`
		Payload   json.RawMessage `json:"payload,omitempty"`
		IsRead    bool            `json:"is_read"`
		CreatedAt time.Time       `json:"created_at"`
	}

	NotificationListResponse struct {
		Notifications []*NotificationResponse `json:"notifications"`
		Total         int64                   `json:"total"`
		Page          int                     `json:"page"`
		PerPage       int                     `json:"per_page"`
	}
)
