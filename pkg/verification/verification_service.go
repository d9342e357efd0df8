package verification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/internal/utils/mailing"
	"foodbridge-backend/internal/utils/storage"
	"foodbridge-backend/pkg/user"
)

type (
	VerificationService interface {
		SubmitRequest(ctx context.Context, req domain.SubmitVerificationRequest, userID uint) (*domain.VerificationRequestResponse, error)
		GetRequests(ctx context.Context, status string, page, limit int) ([]*domain.VerificationRequestResponse, int64, error)
		ReviewRequest(ctx context.Context, id uint, req domain.ReviewVerificationRequest, adminID uint) (*domain.VerificationRequestResponse, error)
	}

	verificationService struct {
		verificationRepository VerificationRepository
		userRepository         user.UserRepository
		s3                     storage.AwsS3
	}
)

func NewVerificationService(verificationRepository VerificationRepository, userRepository user.UserRepository, s3 storage.AwsS3) VerificationService {
	return &verificationService{
		verificationRepository: verificationRepository,
		userRepository:         userRepository,
		s3:                     s3,
	}
}

func (s *verificationService) SubmitRequest(ctx context.Context, req domain.SubmitVerificationRequest, userID uint) (*domain.VerificationRequestResponse, error) {
	var documentURL string
	if req.Document != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("verification-%d-%s", userID, uuid.New().String()),
			req.Document,
			"verifications",
			storage.AllowDocument...,
		)
		if err != nil {
			return nil, err
		}
		documentURL = s.s3.GetPublicLinkKey(objectKey)
	}

	request := &entities.VerificationRequest{
		UserID:           userID,
		OrganizationName: req.OrganizationName,
		OrganizationType: req.OrganizationType,
		DocumentURL:      documentURL,
		Description:      req.Description,
		Status:           "pending",
		SubmittedAt:      time.Now().UTC(),
	}

	if err := s.verificationRepository.CreateVerificationRequest(ctx, request); err != nil {
		return nil, err
	}
	return toVerificationResponse(request), nil
}

func (s *verificationService) GetRequests(ctx context.Context, status string, page, limit int) ([]*domain.VerificationRequestResponse, int64, error) {
	requests, count, err := s.verificationRepository.GetVerificationRequests(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.VerificationRequestResponse, 0, len(requests))
	for _, request := range requests {
		result = append(result, toVerificationResponse(request))
	}
	return result, count, nil
}

func (s *verificationService) ReviewRequest(ctx context.Context, id uint, req domain.ReviewVerificationRequest, adminID uint) (*domain.VerificationRequestResponse, error) {
	if req.Status != "approved" && req.Status != "rejected" {
		return nil, domain.ErrInvalidVerificationStatus
	}

	request, err := s.verificationRepository.GetVerificationRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVerificationRequestNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	request.Status = req.Status
	request.AdminNotes = req.AdminNotes
	request.ReviewedAt = &now
	request.ReviewedBy = &adminID

	if err := s.verificationRepository.UpdateVerificationRequest(ctx, request); err != nil {
		return nil, err
	}

	if req.Status == "approved" {
		if err := s.userRepository.SetVerified(ctx, request.UserID, true); err != nil {
			return nil, err
		}
	}

	// Result mail is best-effort.
	if applicant, err := s.userRepository.GetUserByID(ctx, request.UserID); err == nil {
		go func(email, status string) {
			body := fmt.Sprintf("<p>Your organization verification request was %s.</p>", status)
			if err := mailing.SendMail(email, "Verification Review Result", body); err != nil {
				log.Printf("failed to send verification mail to %s: %v", email, err)
			}
		}(applicant.Email, req.Status)
	}

	return toVerificationResponse(request), nil
}

func toVerificationResponse(request *entities.VerificationRequest) *domain.VerificationRequestResponse {
	resp := &domain.VerificationRequestResponse{
		ID:               request.ID,
		UserID:           request.UserID,
		OrganizationName: request.OrganizationName,
		OrganizationType: request.OrganizationType,
		DocumentURL:      request.DocumentURL,
		Description:      request.Description,
		Status:           request.Status,
		AdminNotes:       request.AdminNotes,
		SubmittedAt:      request.SubmittedAt,
		ReviewedAt:       request.ReviewedAt,
		ReviewedBy:       request.ReviewedBy,
	}
	if request.User != nil {
		resp.UserName = request.User.Name
	}
	return resp
}
