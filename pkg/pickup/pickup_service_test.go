package pickup

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/pkg/user"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.FoodItem{},
		&entities.PickupRequest{},
		&entities.Notification{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) *entities.User {
	t.Helper()
	u := &entities.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedFoodItem(t *testing.T, db *gorm.DB, donorID uint, status entities.FoodStatus) *entities.FoodItem {
	t.Helper()
	now := time.Now().UTC()
	item := &entities.FoodItem{
		DonorID:     donorID,
		Title:       "Leftover Bread",
		Quantity:    5,
		Unit:        "servings",
		PickupStart: now,
		PickupEnd:   now.Add(4 * time.Hour),
		Status:      status,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func newTestService(db *gorm.DB) PickupService {
	return NewPickupService(NewPickupRepository(db), user.NewUserRepository(db))
}

func foodStatus(t *testing.T, db *gorm.DB, id uint) entities.FoodStatus {
	t.Helper()
	var item entities.FoodItem
	require.NoError(t, db.First(&item, id).Error)
	return item.Status
}

func notificationsFor(t *testing.T, db *gorm.DB, userID uint) []entities.Notification {
	t.Helper()
	var notifications []entities.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Find(&notifications).Error)
	return notifications
}

func TestCreateRequest(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)
	item := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)

	resp, err := service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{
		FoodItemID: item.ID,
		Message:    "can pick up this evening",
	})
	require.NoError(t, err)
	require.Equal(t, string(entities.RequestPending), resp.Status)
	require.Equal(t, item.ID, resp.FoodItemID)
	require.Equal(t, beneficiary.ID, resp.BeneficiaryID)
	require.Equal(t, "beneficiary", resp.BeneficiaryName)
	require.False(t, resp.RequestedAt.IsZero())

	require.Equal(t, entities.FoodRequested, foodStatus(t, db, item.ID))

	notifications := notificationsFor(t, db, donor.ID)
	require.Len(t, notifications, 1)
	require.Equal(t, entities.NotifyPickupRequest, notifications[0].Type)
}

func TestCreateRequestRequiresBeneficiaryRole(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	item := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)

	_, err := service.CreateRequest(context.Background(), donor.ID, domain.RoleDonor, domain.CreatePickupRequest{
		FoodItemID: item.ID,
	})
	require.ErrorIs(t, err, domain.ErrUserNotAllowed)
}

func TestCreateRequestItemNotAvailable(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	first := seedUser(t, db, "first", domain.RoleBeneficiary)
	second := seedUser(t, db, "second", domain.RoleBeneficiary)
	item := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)

	_, err := service.CreateRequest(ctx, first.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: item.ID})
	require.NoError(t, err)

	// The first pending request moves the item off the market.
	_, err = service.CreateRequest(ctx, second.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: item.ID})
	require.ErrorIs(t, err, domain.ErrFoodItemNotAvailable)
}

func TestCreateRequestDuplicateActive(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)
	item := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)

	_, err := service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: item.ID})
	require.NoError(t, err)

	// Even if the item reappears as available the beneficiary's own active
	// request still blocks a second one.
	require.NoError(t, db.Model(&entities.FoodItem{}).Where("id = ?", item.ID).
		Update("status", entities.FoodAvailable).Error)

	_, err = service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: item.ID})
	require.ErrorIs(t, err, domain.ErrDuplicateRequest)
}

func TestCreateRequestFoodItemNotFound(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)

	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)

	_, err := service.CreateRequest(context.Background(), beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{
		FoodItemID: 9999,
	})
	require.ErrorIs(t, err, domain.ErrFoodItemNotFound)
}

func TestAcceptRequest(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)
	item := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)

	created, err := service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: item.ID})
	require.NoError(t, err)

	resp, err := service.UpdateRequest(ctx, donor.ID, domain.RoleDonor, created.ID, domain.UpdatePickupRequest{Status: "accepted"})
	require.NoError(t, err)
	require.Equal(t, string(entities.RequestAccepted), resp.Status)
	require.NotNil(t, resp.RespondedAt)
	require.Equal(t, entities.FoodAccepted, foodStatus(t, db, item.ID))

	notifications := notificationsFor(t, db, beneficiary.ID)
	require.Len(t, notifications, 1)
	require.Equal(t, entities.NotifyRequestAccepted, notifications[0].Type)
}

func TestRejectRequestReleasesItem(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)
	item := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)

	created, err := service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: item.ID})
	require.NoError(t, err)

	resp, err := service.UpdateRequest(ctx, donor.ID, domain.RoleDonor, created.ID, domain.UpdatePickupRequest{Status: "rejected"})
	require.NoError(t, err)
	require.Equal(t, string(entities.RequestRejected), resp.Status)
	require.Equal(t, entities.FoodAvailable, foodStatus(t, db, item.ID))

	notifications := notificationsFor(t, db, beneficiary.ID)
	require.Len(t, notifications, 1)
	require.Equal(t, entities.NotifyRequestRejected, notifications[0].Type)
}

func TestAcceptRequiresOwningDonor(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	other := seedUser(t, db, "other", domain.RoleDonor)
	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)
	item := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)

	created, err := service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: item.ID})
	require.NoError(t, err)

	_, err = service.UpdateRequest(ctx, other.ID, domain.RoleDonor, created.ID, domain.UpdatePickupRequest{Status: "accepted"})
	require.ErrorIs(t, err, domain.ErrUnauthorizedRequestAccess)

	_, err = service.UpdateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, created.ID, domain.UpdatePickupRequest{Status: "accepted"})
	require.ErrorIs(t, err, domain.ErrUserNotAllowed)

	// Nothing moved.
	require.Equal(t, entities.FoodRequested, foodStatus(t, db, item.ID))
}

func TestPickedRequiresAcceptedRequest(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)
	item := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)

	created, err := service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: item.ID})
	require.NoError(t, err)

	_, err = service.UpdateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, created.ID, domain.UpdatePickupRequest{Status: "picked"})
	require.ErrorIs(t, err, domain.ErrRequestNotAccepted)
}

func TestCompleteLifecycle(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)
	item := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)

	created, err := service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: item.ID})
	require.NoError(t, err)

	_, err = service.UpdateRequest(ctx, donor.ID, domain.RoleDonor, created.ID, domain.UpdatePickupRequest{Status: "accepted"})
	require.NoError(t, err)

	picked, err := service.UpdateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, created.ID, domain.UpdatePickupRequest{Status: "picked"})
	require.NoError(t, err)
	require.Equal(t, string(entities.RequestPicked), picked.Status)
	require.NotNil(t, picked.PickedAt)
	require.Equal(t, entities.FoodPicked, foodStatus(t, db, item.ID))

	completed, err := service.UpdateRequest(ctx, donor.ID, domain.RoleDonor, created.ID, domain.UpdatePickupRequest{Status: "completed"})
	require.NoError(t, err)
	require.Equal(t, string(entities.RequestCompleted), completed.Status)
	require.NotNil(t, completed.CompletedAt)
	require.Equal(t, entities.FoodCompleted, foodStatus(t, db, item.ID))

	// Donor completed the handoff, so the beneficiary gets the notice on top
	// of the earlier acceptance one.
	notifications := notificationsFor(t, db, beneficiary.ID)
	require.Len(t, notifications, 2)
	require.Equal(t, entities.NotifyPickupCompleted, notifications[1].Type)
}

func TestCancelFromAccepted(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)
	item := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)

	created, err := service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: item.ID})
	require.NoError(t, err)

	_, err = service.UpdateRequest(ctx, donor.ID, domain.RoleDonor, created.ID, domain.UpdatePickupRequest{Status: "accepted"})
	require.NoError(t, err)

	resp, err := service.UpdateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, created.ID, domain.UpdatePickupRequest{Status: "cancelled"})
	require.NoError(t, err)
	require.Equal(t, string(entities.RequestCancelled), resp.Status)
	require.Equal(t, entities.FoodAvailable, foodStatus(t, db, item.ID))
}

func TestCancelAfterPickupConflicts(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)
	item := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)

	created, err := service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: item.ID})
	require.NoError(t, err)

	_, err = service.UpdateRequest(ctx, donor.ID, domain.RoleDonor, created.ID, domain.UpdatePickupRequest{Status: "accepted"})
	require.NoError(t, err)
	_, err = service.UpdateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, created.ID, domain.UpdatePickupRequest{Status: "picked"})
	require.NoError(t, err)

	_, err = service.UpdateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, created.ID, domain.UpdatePickupRequest{Status: "cancelled"})
	require.ErrorIs(t, err, domain.ErrRequestNotCancellable)
	require.Equal(t, entities.FoodPicked, foodStatus(t, db, item.ID))
}

func TestCancelRequiresOwningBeneficiary(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)
	other := seedUser(t, db, "other", domain.RoleBeneficiary)
	item := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)

	created, err := service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: item.ID})
	require.NoError(t, err)

	_, err = service.UpdateRequest(ctx, donor.ID, domain.RoleDonor, created.ID, domain.UpdatePickupRequest{Status: "cancelled"})
	require.ErrorIs(t, err, domain.ErrUserNotAllowed)

	_, err = service.UpdateRequest(ctx, other.ID, domain.RoleBeneficiary, created.ID, domain.UpdatePickupRequest{Status: "cancelled"})
	require.ErrorIs(t, err, domain.ErrUnauthorizedRequestAccess)
}

func TestConditionalStatusWrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewPickupRepository(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)
	item := seedFoodItem(t, db, donor.ID, entities.FoodRequested)

	// A write conditioned on a status the row no longer holds touches
	// nothing.
	rows, err := repo.UpdateFoodItemStatus(ctx, item.ID, entities.FoodAvailable, entities.FoodAccepted)
	require.NoError(t, err)
	require.Zero(t, rows)
	require.Equal(t, entities.FoodRequested, foodStatus(t, db, item.ID))

	rows, err = repo.UpdateFoodItemStatus(ctx, item.ID, entities.FoodRequested, entities.FoodAccepted)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)
	require.Equal(t, entities.FoodAccepted, foodStatus(t, db, item.ID))

	request := &entities.PickupRequest{
		FoodItemID:    item.ID,
		BeneficiaryID: beneficiary.ID,
		Status:        entities.RequestAccepted,
		RequestedAt:   time.Now().UTC(),
	}
	require.NoError(t, repo.CreatePickupRequest(ctx, request))

	request.Status = entities.RequestPicked
	rows, err = repo.UpdatePickupRequest(ctx, request, entities.RequestPending)
	require.NoError(t, err)
	require.Zero(t, rows)

	var stored entities.PickupRequest
	require.NoError(t, db.First(&stored, request.ID).Error)
	require.Equal(t, entities.RequestAccepted, stored.Status)

	rows, err = repo.UpdatePickupRequest(ctx, request, entities.RequestAccepted)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)
}

// staleReadRepository replays a read taken before a rival decision
// committed, which is what two racing updates observe under read committed
// isolation.
type staleReadRepository struct {
	PickupRepository
}

func (r *staleReadRepository) Transact(ctx context.Context, fn func(PickupRepository) error) error {
	return r.PickupRepository.Transact(ctx, func(tx PickupRepository) error {
		return fn(&staleReadRepository{PickupRepository: tx})
	})
}

func (r *staleReadRepository) GetPickupRequestByID(ctx context.Context, id uint) (*entities.PickupRequest, error) {
	request, err := r.PickupRepository.GetPickupRequestByID(ctx, id)
	if err == nil && request.Status == entities.RequestAccepted {
		request.Status = entities.RequestPending
		if request.FoodItem != nil {
			request.FoodItem.Status = entities.FoodRequested
		}
	}
	return request, err
}

func TestUpdateRequestStaleStatusConflicts(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)
	item := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)

	created, err := service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: item.ID})
	require.NoError(t, err)

	// The rival accept commits first.
	_, err = service.UpdateRequest(ctx, donor.ID, domain.RoleDonor, created.ID, domain.UpdatePickupRequest{Status: "accepted"})
	require.NoError(t, err)

	// A second accept working from the pre-decision snapshot must lose
	// with a conflict, not overwrite.
	stale := NewPickupService(
		&staleReadRepository{PickupRepository: NewPickupRepository(db)},
		user.NewUserRepository(db),
	)
	_, err = stale.UpdateRequest(ctx, donor.ID, domain.RoleDonor, created.ID, domain.UpdatePickupRequest{Status: "accepted"})
	require.ErrorIs(t, err, domain.ErrStaleRequestStatus)

	// Stored state is the winner's.
	require.Equal(t, entities.FoodAccepted, foodStatus(t, db, item.ID))
	var stored entities.PickupRequest
	require.NoError(t, db.First(&stored, created.ID).Error)
	require.Equal(t, entities.RequestAccepted, stored.Status)
}

func TestUpdateRequestInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)

	_, err := service.UpdateRequest(context.Background(), 1, domain.RoleDonor, 1, domain.UpdatePickupRequest{Status: "pending"})
	require.ErrorIs(t, err, domain.ErrInvalidRequestStatus)
}

func TestGetRequestsScopedByRole(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(db)
	ctx := context.Background()

	donor := seedUser(t, db, "donor", domain.RoleDonor)
	otherDonor := seedUser(t, db, "other-donor", domain.RoleDonor)
	beneficiary := seedUser(t, db, "beneficiary", domain.RoleBeneficiary)

	mine := seedFoodItem(t, db, donor.ID, entities.FoodAvailable)
	theirs := seedFoodItem(t, db, otherDonor.ID, entities.FoodAvailable)

	_, err := service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: mine.ID})
	require.NoError(t, err)
	_, err = service.CreateRequest(ctx, beneficiary.ID, domain.RoleBeneficiary, domain.CreatePickupRequest{FoodItemID: theirs.ID})
	require.NoError(t, err)

	donorView, total, err := service.GetRequests(ctx, donor.ID, domain.RoleDonor, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, donorView, 1)
	require.Equal(t, mine.ID, donorView[0].FoodItemID)

	beneficiaryView, total, err := service.GetRequests(ctx, beneficiary.ID, domain.RoleBeneficiary, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, beneficiaryView, 2)

	adminView, total, err := service.GetRequests(ctx, 0, domain.RoleAdmin, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, adminView, 2)
}
