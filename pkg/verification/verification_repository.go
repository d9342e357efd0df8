package verification

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodbridge-backend/entities"
)

type (
	VerificationRepository interface {
		CreateVerificationRequest(ctx context.Context, request *entities.VerificationRequest) error
		GetVerificationRequestByID(ctx context.Context, id uint) (*entities.VerificationRequest, error)
		GetVerificationRequests(ctx context.Context, status string, page, limit int) ([]*entities.VerificationRequest, int64, error)
		UpdateVerificationRequest(ctx context.Context, request *entities.VerificationRequest) error
	}

	verificationRepository struct {
		db *gorm.DB
	}
)

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) CreateVerificationRequest(ctx context.Context, request *entities.VerificationRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *verificationRepository) GetVerificationRequestByID(ctx context.Context, id uint) (*entities.VerificationRequest, error) {
	var request entities.VerificationRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *verificationRepository) GetVerificationRequests(ctx context.Context, status string, page, limit int) ([]*entities.VerificationRequest, int64, error) {
	var requests []*entities.VerificationRequest
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.VerificationRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("User").
		Order("submitted_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, count, nil
}

func (r *verificationRepository) UpdateVerificationRequest(ctx context.Context, request *entities.VerificationRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(request).Error
}
