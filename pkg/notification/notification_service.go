package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/pkg/geo"
	"foodbridge-backend/pkg/user"
)

// DefaultNearbyRadiusKm bounds the new-listing broadcast around a food item.
const DefaultNearbyRadiusKm = 10

type (
	NotificationService interface {
		Emit(ctx context.Context, userID uint, title, message string, payload domain.NotificationPayload) (*entities.Notification, error)
		NotifyNearbyBeneficiaries(ctx context.Context, foodItem *entities.FoodItem, radiusKm float64) int
		GetNotifications(ctx context.Context, userID uint, page, limit int) ([]*domain.NotificationResponse, int64, error)
		MarkAsRead(ctx context.Context, id, userID uint) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
		userRepository         user.UserRepository
	}
)

func NewNotificationService(notificationRepository NotificationRepository, userRepository user.UserRepository) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		userRepository:         userRepository,
	}
}

// Build assembles a notification record from a typed payload. Callers that
// need the record committed atomically with other writes insert it inside
// their own transaction; Emit commits immediately.
func Build(userID uint, title, message string, payload domain.NotificationPayload) (*entities.Notification, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &entities.Notification{
		UserID:  userID,
		Type:    payload.NotificationType(),
		Title:   title,
		Message: message,
		Payload: raw,
	}, nil
}

func (s *notificationService) Emit(ctx context.Context, userID uint, title, message string, payload domain.NotificationPayload) (*entities.Notification, error) {
	notification, err := Build(userID, title, message, payload)
	if err != nil {
		return nil, err
	}
	if err := s.notificationRepository.CreateNotification(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// NotifyNearbyBeneficiaries fans a new_listing notification out to every
// beneficiary with a known location within radiusKm of the food item. The
// broadcast is best-effort: a failure for one recipient is logged and the
// rest still receive theirs. Returns the number of notifications created.
func (s *notificationService) NotifyNearbyBeneficiaries(ctx context.Context, foodItem *entities.FoodItem, radiusKm float64) int {
	if foodItem.Latitude == nil || foodItem.Longitude == nil {
		return 0
	}
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}

	beneficiaries, err := s.userRepository.GetBeneficiariesWithLocation(ctx)
	if err != nil {
		log.Printf("nearby broadcast for food item %d: %v", foodItem.ID, err)
		return 0
	}

	sent := 0
	for _, beneficiary := range beneficiaries {
		distance := geo.DistanceKm(foodItem.Latitude, foodItem.Longitude, beneficiary.Latitude, beneficiary.Longitude)
		if distance > radiusKm {
			continue
		}

		_, err := s.Emit(ctx, beneficiary.ID,
			"New Food Available Nearby",
			fmt.Sprintf("%s available for pickup", foodItem.Title),
			domain.NewListingPayload{
				FoodItemID: foodItem.ID,
				Distance:   geo.RoundDistance(distance),
			},
		)
		if err != nil {
			log.Printf("notify beneficiary %d about food item %d: %v", beneficiary.ID, foodItem.ID, err)
			continue
		}
		sent++
	}
	return sent
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uint, page, limit int) ([]*domain.NotificationResponse, int64, error) {
	notifications, count, err := s.notificationRepository.GetUserNotifications(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, &domain.NotificationResponse{
			ID:        n.ID,
			UserID:    n.UserID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Payload:   n.Payload,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return result, count, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, userID uint) error {
	notification, err := s.notificationRepository.GetUserNotificationByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotificationNotFound
		}
		return err
	}
	return s.notificationRepository.MarkRead(ctx, notification.ID)
}
