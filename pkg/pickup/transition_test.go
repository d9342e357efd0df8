package pickup

import (
	"testing"

	"github.com/stretchr/testify/require"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
)

func TestParseAction(t *testing.T) {
	for _, status := range []string{"accepted", "rejected", "picked", "completed", "cancelled"} {
		act, err := parseAction(status)
		require.NoError(t, err)
		require.Equal(t, action(status), act)
	}

	_, err := parseAction("pending")
	require.ErrorIs(t, err, domain.ErrInvalidRequestStatus)
	_, err = parseAction("bogus")
	require.ErrorIs(t, err, domain.ErrInvalidRequestStatus)
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name        string
		current     entities.RequestStatus
		act         action
		wantRequest entities.RequestStatus
		wantFood    entities.FoodStatus
		wantErr     error
	}{
		{"accept pending", entities.RequestPending, actionAccept, entities.RequestAccepted, entities.FoodAccepted, nil},
		{"reject pending", entities.RequestPending, actionReject, entities.RequestRejected, entities.FoodAvailable, nil},
		{"pick accepted", entities.RequestAccepted, actionPicked, entities.RequestPicked, entities.FoodPicked, nil},
		{"complete picked", entities.RequestPicked, actionCompleted, entities.RequestCompleted, entities.FoodCompleted, nil},
		{"cancel pending", entities.RequestPending, actionCancel, entities.RequestCancelled, entities.FoodAvailable, nil},
		{"cancel accepted", entities.RequestAccepted, actionCancel, entities.RequestCancelled, entities.FoodAvailable, nil},

		{"accept accepted", entities.RequestAccepted, actionAccept, "", "", domain.ErrRequestNotPending},
		{"accept cancelled", entities.RequestCancelled, actionAccept, "", "", domain.ErrRequestNotPending},
		{"reject accepted", entities.RequestAccepted, actionReject, "", "", domain.ErrRequestNotPending},
		{"pick pending", entities.RequestPending, actionPicked, "", "", domain.ErrRequestNotAccepted},
		{"pick rejected", entities.RequestRejected, actionPicked, "", "", domain.ErrRequestNotAccepted},
		{"complete pending", entities.RequestPending, actionCompleted, "", "", domain.ErrRequestNotPicked},
		{"complete accepted", entities.RequestAccepted, actionCompleted, "", "", domain.ErrRequestNotPicked},
		{"cancel picked", entities.RequestPicked, actionCancel, "", "", domain.ErrRequestNotCancellable},
		{"cancel completed", entities.RequestCompleted, actionCancel, "", "", domain.ErrRequestNotCancellable},
		{"cancel rejected", entities.RequestRejected, actionCancel, "", "", domain.ErrRequestNotCancellable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotRequest, gotFood, err := transition(tt.current, tt.act)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantRequest, gotRequest)
			require.Equal(t, tt.wantFood, gotFood)
		})
	}
}
