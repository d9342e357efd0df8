package food

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodbridge-backend/entities"
)

type (
	FoodRepository interface {
		CreateFoodItem(ctx context.Context, item *entities.FoodItem) error
		GetFoodItemByID(ctx context.Context, id uint) (*entities.FoodItem, error)
		UpdateFoodItem(ctx context.Context, item *entities.FoodItem) error
		GetDonorFoodItems(ctx context.Context, donorID uint, status entities.FoodStatus, page, limit int) ([]*entities.FoodItem, int64, error)
		GetFoodItems(ctx context.Context, status entities.FoodStatus, page, limit int) ([]*entities.FoodItem, int64, error)
		GetFoodItemsByStatus(ctx context.Context, status entities.FoodStatus) ([]*entities.FoodItem, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) CreateFoodItem(ctx context.Context, item *entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *foodRepository) GetFoodItemByID(ctx context.Context, id uint) (*entities.FoodItem, error) {
	var item entities.FoodItem
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *foodRepository) UpdateFoodItem(ctx context.Context, item *entities.FoodItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *foodRepository) GetDonorFoodItems(ctx context.Context, donorID uint, status entities.FoodStatus, page, limit int) ([]*entities.FoodItem, int64, error) {
	var items []*entities.FoodItem
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.FoodItem{}).Where("donor_id = ?", donorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *foodRepository) GetFoodItems(ctx context.Context, status entities.FoodStatus, page, limit int) ([]*entities.FoodItem, int64, error) {
	var items []*entities.FoodItem
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.FoodItem{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Donor").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *foodRepository) GetFoodItemsByStatus(ctx context.Context, status entities.FoodStatus) ([]*entities.FoodItem, error) {
	var items []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Where("status = ?", status).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
