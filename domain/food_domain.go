package domain

import (
	"errors"
	"time"

	"foodbridge-backend/entities"
)

var (
	MessageSuccessCreateFoodItem = "food item created successfully"
	MessageSuccessUpdateFoodItem = "food item updated successfully"
	MessageSuccessGetFoodItems   = "food items retrieved successfully"
	MessageSuccessUploadImage    = "food image uploaded successfully"

	MessageFailedCreateFoodItem = "failed to create food item"
	MessageFailedUpdateFoodItem = "failed to update food item"
	MessageFailedGetFoodItems   = "failed to retrieve food items"
	MessageFailedUploadImage    = "failed to upload food image"

	ErrFoodItemNotFound       = errors.New("food item not found")
	ErrInvalidQuantity        = errors.New("quantity must be positive")
	ErrInvalidPickupWindow    = errors.New("pickup window start must be before end")
	ErrInvalidFoodStatus      = errors.New("invalid food item status")
	ErrUnauthorizedFoodAccess = errors.New("unauthorized access to food item")
)

type (
	CreateFoodItemRequest struct {
		Title       string   `json:"title" validate:"required,max=200"`
		Description string   `json:"description" validate:"omitempty"`
		Quantity    int      `json:"quantity" validate:"required,min=1"`
		Unit        string   `json:"unit" validate:"omitempty,max=50"`
		ExpiryDate  string   `json:"expiry_date" validate:"omitempty"`
		PickupStart string   `json:"pickup_start" validate:"required"`
		PickupEnd   string   `json:"pickup_end" validate:"required"`
		Location    string   `json:"location" validate:"omitempty,max=255"`
		Latitude    *float64 `json:"latitude" validate:"omitempty"`
		Longitude   *float64 `json:"longitude" validate:"omitempty"`
		ImageURL    string   `json:"image_url" validate:"omitempty,max=500"`
	}

	UpdateFoodItemRequest struct {
		Title       string `json:"title" validate:"omitempty,max=200"`
		Description string `json:"description" validate:"omitempty"`
		Quantity    int    `json:"quantity" validate:"omitempty,min=1"`
		Status      string `json:"status" validate:"omitempty,oneof=available requested accepted picked completed cancelled"`
	}

	ListFoodItemsQuery struct {
		Status      entities.FoodStatus
		MaxDistance float64
		Page        int
		PerPage     int
	}

	FoodItemResponse struct {
		ID          uint       `json:"id"`
		DonorID     uint       `json:"donor_id"`
		DonorName   string     `json:"donor_name,omitempty"`
		Title       string     `json:"title"`
		Description string     `json:"description,omitempty"`
		Quantity    int        `json:"quantity"`
		Unit        string     `json:"unit"`
		ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
		PickupStart time.Time  `json:"pickup_start"`
		PickupEnd   time.Time  `json:"pickup_end"`
		Location    string     `json:"location,omitempty"`
		Latitude    *float64   `json:"latitude,omitempty"`
		Longitude   *float64   `json:"longitude,omitempty"`
		ImageURL    string     `json:"image_url,omitempty"`
		Status      string     `json:"status"`
		Distance    *float64   `json:"distance,omitempty"`
		CreatedAt   time.Time  `json:"created_at"`
	}

	FoodItemListResponse struct {
		FoodItems []*FoodItemResponse `json:"food_items"`
		Total     int64               `json:"total"`
		Page      int                 `json:"page"`
		PerPage   int                 `json:"per_page"`
	}
)
