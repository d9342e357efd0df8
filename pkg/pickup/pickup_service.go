package pickup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/pkg/notification"
	"foodbridge-backend/pkg/user"
)

type (
	PickupService interface {
		CreateRequest(ctx context.Context, actorID uint, actorRole string, req domain.CreatePickupRequest) (*domain.PickupRequestResponse, error)
		UpdateRequest(ctx context.Context, actorID uint, actorRole string, requestID uint, req domain.UpdatePickupRequest) (*domain.PickupRequestResponse, error)
		GetRequests(ctx context.Context, actorID uint, actorRole string, page, limit int) ([]*domain.PickupRequestResponse, int64, error)
	}

	pickupService struct {
		pickupRepository PickupRepository
		userRepository   user.UserRepository
	}
)

func NewPickupService(pickupRepository PickupRepository, userRepository user.UserRepository) PickupService {
	return &pickupService{
		pickupRepository: pickupRepository,
		userRepository:   userRepository,
	}
}

func (s *pickupService) CreateRequest(ctx context.Context, actorID uint, actorRole string, req domain.CreatePickupRequest) (*domain.PickupRequestResponse, error) {
	if actorRole != domain.RoleBeneficiary {
		return nil, domain.ErrUserNotAllowed
	}

	beneficiary, err := s.userRepository.GetUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	var request *entities.PickupRequest
	err = s.pickupRepository.Transact(ctx, func(tx PickupRepository) error {
		item, err := tx.GetFoodItemByID(ctx, req.FoodItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrFoodItemNotFound
			}
			return err
		}

		if item.Status != entities.FoodAvailable {
			return domain.ErrFoodItemNotAvailable
		}

		if _, err := tx.FindActiveRequest(ctx, item.ID, actorID); err == nil {
			return domain.ErrDuplicateRequest
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		request = &entities.PickupRequest{
			FoodItemID:    item.ID,
			BeneficiaryID: actorID,
			Status:        entities.RequestPending,
			Message:       req.Message,
			RequestedAt:   time.Now().UTC(),
		}
		if err := tx.CreatePickupRequest(ctx, request); err != nil {
			return err
		}
		// Conditional on available so a rival request that committed
		// between the read and this write surfaces as a conflict.
		rows, err := tx.UpdateFoodItemStatus(ctx, item.ID, entities.FoodAvailable, entities.FoodRequested)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrFoodItemNotAvailable
		}

		notify, err := notification.Build(item.DonorID,
			"New Pickup Request",
			fmt.Sprintf("%s requested pickup for %s", beneficiary.Name, item.Title),
			domain.PickupRequestPayload{
				RequestID:   request.ID,
				Beneficiary: beneficiary.Name,
			},
		)
		if err != nil {
			return err
		}
		return tx.CreateNotification(ctx, notify)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.pickupRepository.GetPickupRequestByID(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	return toPickupRequestResponse(created), nil
}

func (s *pickupService) UpdateRequest(ctx context.Context, actorID uint, actorRole string, requestID uint, req domain.UpdatePickupRequest) (*domain.PickupRequestResponse, error) {
	act, err := parseAction(req.Status)
	if err != nil {
		return nil, err
	}

	err = s.pickupRepository.Transact(ctx, func(tx PickupRepository) error {
		request, err := tx.GetPickupRequestByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPickupRequestNotFound
			}
			return err
		}
		item := request.FoodItem

		if err := authorize(act, actorID, actorRole, request, item); err != nil {
			return err
		}

		// The precondition is re-checked inside the transaction and the
		// writes below are conditional on the statuses read here, so a
		// rival transition that commits in between loses with a stale
		// conflict instead of silently overwriting.
		prior := request.Status
		priorFood := item.Status
		nextRequest, nextFood, err := transition(prior, act)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		request.Status = nextRequest
		switch act {
		case actionAccept, actionReject, actionCancel:
			request.RespondedAt = &now
		case actionPicked:
			request.PickedAt = &now
		case actionCompleted:
			request.CompletedAt = &now
		}

		rows, err := tx.UpdatePickupRequest(ctx, request, prior)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrStaleRequestStatus
		}
		rows, err = tx.UpdateFoodItemStatus(ctx, item.ID, priorFood, nextFood)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrStaleRequestStatus
		}

		notify, err := lifecycleNotification(act, actorID, request, item)
		if err != nil || notify == nil {
			return err
		}
		return tx.CreateNotification(ctx, notify)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.pickupRepository.GetPickupRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return toPickupRequestResponse(updated), nil
}

func (s *pickupService) GetRequests(ctx context.Context, actorID uint, actorRole string, page, limit int) ([]*domain.PickupRequestResponse, int64, error) {
	requests, count, err := s.pickupRepository.GetPickupRequests(ctx, actorID, actorRole, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.PickupRequestResponse, 0, len(requests))
	for _, request := range requests {
		result = append(result, toPickupRequestResponse(request))
	}
	return result, count, nil
}

// authorize is the capability check run before any transition: role first,
// then ownership of the record the role acts through.
func authorize(act action, actorID uint, actorRole string, request *entities.PickupRequest, item *entities.FoodItem) error {
	switch act {
	case actionAccept, actionReject:
		if actorRole != domain.RoleDonor {
			return domain.ErrUserNotAllowed
		}
		if item.DonorID != actorID {
			return domain.ErrUnauthorizedRequestAccess
		}
	case actionPicked, actionCompleted:
		if actorRole != domain.RoleDonor && actorRole != domain.RoleBeneficiary {
			return domain.ErrUserNotAllowed
		}
		if item.DonorID != actorID && request.BeneficiaryID != actorID {
			return domain.ErrUnauthorizedRequestAccess
		}
	case actionCancel:
		if actorRole != domain.RoleBeneficiary {
			return domain.ErrUserNotAllowed
		}
		if request.BeneficiaryID != actorID {
			return domain.ErrUnauthorizedRequestAccess
		}
	}
	return nil
}

// lifecycleNotification builds the notification committed with a transition.
// Accept/reject inform the beneficiary; completion informs the counterparty.
// Picked and cancel produce none.
func lifecycleNotification(act action, actorID uint, request *entities.PickupRequest, item *entities.FoodItem) (*entities.Notification, error) {
	switch act {
	case actionAccept:
		return notification.Build(request.BeneficiaryID,
			"Pickup Request Update",
			fmt.Sprintf("Your pickup request for %s was accepted", item.Title),
			domain.RequestDecisionPayload{RequestID: request.ID, Accepted: true},
		)
	case actionReject:
		return notification.Build(request.BeneficiaryID,
			"Pickup Request Update",
			fmt.Sprintf("Your pickup request for %s was rejected", item.Title),
			domain.RequestDecisionPayload{RequestID: request.ID},
		)
	case actionCompleted:
		recipient := item.DonorID
		if actorID == item.DonorID {
			recipient = request.BeneficiaryID
		}
		return notification.Build(recipient,
			"Pickup Completed",
			fmt.Sprintf("Pickup for %s was completed", item.Title),
			domain.PickupCompletedPayload{RequestID: request.ID, FoodItemID: item.ID},
		)
	}
	return nil, nil
}

func toPickupRequestResponse(request *entities.PickupRequest) *domain.PickupRequestResponse {
	resp := &domain.PickupRequestResponse{
		ID:            request.ID,
		FoodItemID:    request.FoodItemID,
		BeneficiaryID: request.BeneficiaryID,
		Status:        string(request.Status),
		Message:       request.Message,
		RequestedAt:   request.RequestedAt,
		RespondedAt:   request.RespondedAt,
		PickedAt:      request.PickedAt,
		CompletedAt:   request.CompletedAt,
	}
	if request.Beneficiary != nil {
		resp.BeneficiaryName = request.Beneficiary.Name
	}
	if request.FoodItem != nil {
		item := request.FoodItem
		resp.FoodItem = &domain.FoodItemResponse{
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
			CreatedAt:   item.CreatedAt,
		}
	}
	return resp
}
