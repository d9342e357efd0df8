package food

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/internal/utils/storage"
	"foodbridge-backend/pkg/geo"
	"foodbridge-backend/pkg/notification"
)

type (
	FoodService interface {
		CreateFoodItem(ctx context.Context, req domain.CreateFoodItemRequest, donor *domain.UserResponse) (*domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id uint, req domain.UpdateFoodItemRequest, donorID uint) (*domain.FoodItemResponse, error)
		GetFoodItemByID(ctx context.Context, id uint) (*domain.FoodItemResponse, error)
		ListFoodItems(ctx context.Context, actor *domain.UserResponse, query domain.ListFoodItemsQuery) (*domain.FoodItemListResponse, error)
		UploadFoodImage(ctx context.Context, id uint, image *multipart.FileHeader, donorID uint) (*domain.FoodItemResponse, error)
	}

	foodService struct {
		foodRepository      FoodRepository
		notificationService notification.NotificationService
		s3                  storage.AwsS3
	}
)

func NewFoodService(foodRepository FoodRepository, notificationService notification.NotificationService, s3 storage.AwsS3) FoodService {
	return &foodService{
		foodRepository:      foodRepository,
		notificationService: notificationService,
		s3:                  s3,
	}
}

func (s *foodService) CreateFoodItem(ctx context.Context, req domain.CreateFoodItemRequest, donor *domain.UserResponse) (*domain.FoodItemResponse, error) {
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	pickupStart, err := time.Parse(time.RFC3339, req.PickupStart)
	if err != nil {
		return nil, domain.ErrInvalidPickupWindow
	}
	pickupEnd, err := time.Parse(time.RFC3339, req.PickupEnd)
	if err != nil {
		return nil, domain.ErrInvalidPickupWindow
	}
	if !pickupStart.Before(pickupEnd) {
		return nil, domain.ErrInvalidPickupWindow
	}

	var expiryDate *time.Time
	if req.ExpiryDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExpiryDate)
		if err != nil {
			return nil, domain.ErrInvalidPickupWindow
		}
		expiryDate = &parsed
	}

	// Fall back to the donor's profile location so listings created from a
	// fixed storefront still reach nearby beneficiaries.
	latitude, longitude := req.Latitude, req.Longitude
	if latitude == nil && longitude == nil {
		latitude, longitude = donor.Latitude, donor.Longitude
	}
	if latitude != nil || longitude != nil {
		if latitude == nil || longitude == nil || !geo.ValidateCoordinates(*latitude, *longitude) {
			return nil, domain.ErrInvalidCoordinates
		}
	}

	unit := req.Unit
	if unit == "" {
		unit = "servings"
	}

	item := &entities.FoodItem{
		DonorID:     donor.ID,
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        unit,
		ExpiryDate:  expiryDate,
		PickupStart: pickupStart,
		PickupEnd:   pickupEnd,
		Location:    req.Location,
		Latitude:    latitude,
		Longitude:   longitude,
		ImageURL:    req.ImageURL,
		Status:      entities.FoodAvailable,
	}

	if err := s.foodRepository.CreateFoodItem(ctx, item); err != nil {
		return nil, err
	}

	// Broadcast after the item is committed; the listing stands even if
	// every notification fails.
	s.notificationService.NotifyNearbyBeneficiaries(ctx, item, notification.DefaultNearbyRadiusKm)

	resp := toFoodItemResponse(item, nil)
	resp.DonorName = donor.Name
	return resp, nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id uint, req domain.UpdateFoodItemRequest, donorID uint) (*domain.FoodItemResponse, error) {
	item, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}

	if item.DonorID != donorID {
		return nil, domain.ErrUnauthorizedFoodAccess
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Quantity > 0 {
		item.Quantity = req.Quantity
	}
	if req.Status != "" {
		status := entities.FoodStatus(req.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidFoodStatus
		}
		item.Status = status
	}

	if err := s.foodRepository.UpdateFoodItem(ctx, item); err != nil {
		return nil, err
	}
	return toFoodItemResponse(item, nil), nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id uint) (*domain.FoodItemResponse, error) {
	item, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}
	return toFoodItemResponse(item, nil), nil
}

// ListFoodItems serves both sides of the marketplace through one contract.
// Donors see their own listings with plain pagination. Beneficiaries with a
// profile location see available items within query.MaxDistance, nearest
// first, each with its distance attached. Everyone else (admins,
// beneficiaries without coordinates) sees the full status-filtered feed.
func (s *foodService) ListFoodItems(ctx context.Context, actor *domain.UserResponse, query domain.ListFoodItemsQuery) (*domain.FoodItemListResponse, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PerPage < 1 {
		query.PerPage = 20
	}
	if query.PerPage > 100 {
		query.PerPage = 100
	}
	if query.Status == "" {
		query.Status = entities.FoodAvailable
	}
	if !query.Status.Valid() {
		return nil, domain.ErrInvalidFoodStatus
	}
	if query.MaxDistance <= 0 {
		query.MaxDistance = 10
	}

	if actor.Role == domain.RoleBeneficiary && actor.Latitude != nil && actor.Longitude != nil {
		return s.listNearby(ctx, actor, query)
	}

	var (
		items []*entities.FoodItem
		count int64
		err   error
	)
	if actor.Role == domain.RoleDonor {
		items, count, err = s.foodRepository.GetDonorFoodItems(ctx, actor.ID, query.Status, query.Page, query.PerPage)
	} else {
		items, count, err = s.foodRepository.GetFoodItems(ctx, query.Status, query.Page, query.PerPage)
	}
	if err != nil {
		return nil, err
	}

	result := make([]*domain.FoodItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toFoodItemResponse(item, nil))
	}
	return &domain.FoodItemListResponse{
		FoodItems: result,
		Total:     count,
		Page:      query.Page,
		PerPage:   query.PerPage,
	}, nil
}

func (s *foodService) listNearby(ctx context.Context, actor *domain.UserResponse, query domain.ListFoodItemsQuery) (*domain.FoodItemListResponse, error) {
	items, err := s.foodRepository.GetFoodItemsByStatus(ctx, query.Status)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		item     *entities.FoodItem
		distance float64
	}
	nearby := make([]candidate, 0, len(items))
	for _, item := range items {
		distance := geo.DistanceKm(item.Latitude, item.Longitude, actor.Latitude, actor.Longitude)
		if distance <= query.MaxDistance {
			nearby = append(nearby, candidate{item: item, distance: distance})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].distance < nearby[j].distance
	})

	total := int64(len(nearby))
	start := (query.Page - 1) * query.PerPage
	if start > len(nearby) {
		start = len(nearby)
	}
	end := start + query.PerPage
	if end > len(nearby) {
		end = len(nearby)
	}

	result := make([]*domain.FoodItemResponse, 0, end-start)
	for _, c := range nearby[start:end] {
		distance := geo.RoundDistance(c.distance)
		result = append(result, toFoodItemResponse(c.item, &distance))
	}
	return &domain.FoodItemListResponse{
		FoodItems: result,
		Total:     total,
		Page:      query.Page,
		PerPage:   query.PerPage,
	}, nil
}

func (s *foodService) UploadFoodImage(ctx context.Context, id uint, image *multipart.FileHeader, donorID uint) (*domain.FoodItemResponse, error) {
	item, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}

	if item.DonorID != donorID {
		return nil, domain.ErrUnauthorizedFoodAccess
	}

	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("food-%d-%s", item.ID, uuid.New().String()),
		image,
		"food-items",
		storage.AllowImage...,
	)
	if err != nil {
		return nil, err
	}
	item.ImageURL = s.s3.GetPublicLinkKey(objectKey)

	if err := s.foodRepository.UpdateFoodItem(ctx, item); err != nil {
		return nil, err
	}
	return toFoodItemResponse(item, nil), nil
}

func toFoodItemResponse(item *entities.FoodItem, distance *float64) *domain.FoodItemResponse {
	resp := &domain.FoodItemResponse{
		ID:          item.ID,
		DonorID:     item.DonorID,
		Title:       item.Title,
		Description: item.Description,
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		ExpiryDate:  item.ExpiryDate,
		PickupStart: item.PickupStart,
		PickupEnd:   item.PickupEnd,
		Location:    item.Location,
		Latitude:    item.Latitude,
		Longitude:   item.Longitude,
		ImageURL:    item.ImageURL,
		Status:      string(item.Status),
		Distance:    distance,
		CreatedAt:   item.CreatedAt,
	}
	if item.Donor != nil {
		resp.DonorName = item.Donor.Name
	}
	return resp
}
