package pickup

import (
	"context"

	"gorm.io/gorm"

	"foodbridge-backend/entities"
)

type (
	// PickupRepository is the transactional store boundary of the workflow
	// engine. Transact runs fn against a repository bound to one database
	// transaction; every status write and lifecycle notification of a
	// transition happens inside that closure so a failure rolls back the
	// whole step. The status writes are conditional on the status the row
	// was read at and report rows affected, which lets a transition detect
	// that a rival committed first without relying on row locks.
	PickupRepository interface {
		Transact(ctx context.Context, fn func(r PickupRepository) error) error

		GetPickupRequestByID(ctx context.Context, id uint) (*entities.PickupRequest, error)
		GetPickupRequests(ctx context.Context, userID uint, role string, page, limit int) ([]*entities.PickupRequest, int64, error)
		FindActiveRequest(ctx context.Context, foodItemID, beneficiaryID uint) (*entities.PickupRequest, error)
		CreatePickupRequest(ctx context.Context, request *entities.PickupRequest) error
		UpdatePickupRequest(ctx context.Context, request *entities.PickupRequest, prior entities.RequestStatus) (int64, error)

		GetFoodItemByID(ctx context.Context, id uint) (*entities.FoodItem, error)
		UpdateFoodItemStatus(ctx context.Context, id uint, from, to entities.FoodStatus) (int64, error)

		CreateNotification(ctx context.Context, notification *entities.Notification) error
	}

	pickupRepository struct {
		db *gorm.DB
	}
)

func NewPickupRepository(db *gorm.DB) PickupRepository {
	return &pickupRepository{db: db}
}

func (r *pickupRepository) Transact(ctx context.Context, fn func(r PickupRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pickupRepository{db: tx})
	})
}

func (r *pickupRepository) GetPickupRequestByID(ctx context.Context, id uint) (*entities.PickupRequest, error) {
	var request entities.PickupRequest
	if err := r.db.WithContext(ctx).
		Preload("FoodItem").
		Preload("Beneficiary").
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *pickupRepository) GetPickupRequests(ctx context.Context, userID uint, role string, page, limit int) ([]*entities.PickupRequest, int64, error) {
	var requests []*entities.PickupRequest
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.PickupRequest{})
	switch role {
	case "donor":
		query = query.
			Joins("JOIN food_items ON food_items.id = pickup_requests.food_item_id").
			Where("food_items.donor_id = ?", userID)
	case "beneficiary":
		query = query.Where("beneficiary_id = ?", userID)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("FoodItem").
		Preload("Beneficiary").
		Order("pickup_requests.requested_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, count, nil
}

func (r *pickupRepository) FindActiveRequest(ctx context.Context, foodItemID, beneficiaryID uint) (*entities.PickupRequest, error) {
	var request entities.PickupRequest
	if err := r.db.WithContext(ctx).
		Where("food_item_id = ? AND beneficiary_id = ? AND status IN ?",
			foodItemID, beneficiaryID,
			[]entities.RequestStatus{entities.RequestPending, entities.RequestAccepted, entities.RequestPicked}).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *pickupRepository) CreatePickupRequest(ctx context.Context, request *entities.PickupRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *pickupRepository) UpdatePickupRequest(ctx context.Context, request *entities.PickupRequest, prior entities.RequestStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.PickupRequest{}).
		Where("id = ? AND status = ?", request.ID, prior).
		Select("status", "responded_at", "picked_at", "completed_at").
		Updates(request)
	return result.RowsAffected, result.Error
}

func (r *pickupRepository) GetFoodItemByID(ctx context.Context, id uint) (*entities.FoodItem, error) {
	var item entities.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *pickupRepository) UpdateFoodItemStatus(ctx context.Context, id uint, from, to entities.FoodStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.FoodItem{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *pickupRepository) CreateNotification(ctx context.Context, notification *entities.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}
