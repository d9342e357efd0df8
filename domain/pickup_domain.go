package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateRequest = "pickup request created successfully"
	MessageSuccessUpdateRequest = "pickup request updated successfully"
	MessageSuccessGetRequests   = "pickup requests retrieved successfully"

	MessageFailedCreateRequest = "failed to create pickup request"
	MessageFailedUpdateRequest = "failed to update pickup request"
	MessageFailedGetRequests   = "failed to retrieve pickup requests"

	ErrPickupRequestNotFound     = errors.New("pickup request not found")
	ErrFoodItemNotAvailable      = errors.New("food item is not available")
	ErrDuplicateRequest          = errors.New("an active request for this item already exists")
	ErrRequestNotPending         = errors.New("pickup request is no longer pending")
	ErrRequestNotAccepted        = errors.New("pickup request has not been accepted")
	ErrRequestNotPicked          = errors.New("pickup request has not been picked up")
	ErrRequestNotCancellable     = errors.New("pickup request can no longer be cancelled")
	ErrInvalidRequestStatus      = errors.New("invalid pickup request status")
	ErrStaleRequestStatus        = errors.New("pickup request status has changed")
	ErrUnauthorizedRequestAccess = errors.New("unauthorized access to pickup request")
)

type (
	CreatePickupRequest struct {
		FoodItemID uint   `json:"food_item_id" validate:"required,min=1"`
		Message    string `json:"message" validate:"omitempty"`
	}

	UpdatePickupRequest struct {
		Status string `json:"status" validate:"required,oneof=accepted rejected picked completed cancelled"`
	}

	PickupRequestResponse struct {
		ID              uint              `json:"id"`
		FoodItemID      uint              `json:"food_item_id"`
		FoodItem        *FoodItemResponse `json:"food_item,omitempty"`
		BeneficiaryID   uint              `json:"beneficiary_id"`
		BeneficiaryName string            `json:"beneficiary_name,omitempty"`
		Status          string            `json:"status"`
		Message         string            `json:"message,omitempty"`
		RequestedAt     time.Time         `json:"requested_at"`
		RespondedAt     *time.Time        `json:"responded_at,omitempty"`
		PickedAt        *time.Time        `json:"picked_at,omitempty"`
		CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	}

	PickupRequestListResponse struct {
		PickupRequests []*PickupRequestResponse `json:"pickup_requests"`
		Total          int64                    `json:"total"`
		Page           int                      `json:"page"`
		PerPage        int                      `json:"per_page"`
	}
)
