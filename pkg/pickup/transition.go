package pickup

import (
	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
)

type action string

const (
	actionAccept    action = "accepted"
	actionReject    action = "rejected"
	actionPicked    action = "picked"
	actionCompleted action = "completed"
	actionCancel    action = "cancelled"
)

func parseAction(status string) (action, error) {
	switch action(status) {
	case actionAccept, actionReject, actionPicked, actionCompleted, actionCancel:
		return action(status), nil
	}
	return "", domain.ErrInvalidRequestStatus
}

// transition is the single authority over the paired lifecycle of a pickup
// request and its food item. Given the request's current status and the
// attempted action it returns the next status for both records, or a
// conflict error when the precondition does not hold.
//
//	accept/reject:  pending   -> accepted/rejected  (item: accepted/available)
//	picked:         accepted  -> picked             (item: picked)
//	completed:      picked    -> completed          (item: completed)
//	cancel:         pending|accepted -> cancelled   (item: available)
//
// A request must be accepted before it can be picked, and picked or
// completed requests are terminal for cancellation.
func transition(current entities.RequestStatus, act action) (entities.RequestStatus, entities.FoodStatus, error) {
	switch act {
	case actionAccept:
		if current != entities.RequestPending {
			return "", "", domain.ErrRequestNotPending
		}
		return entities.RequestAccepted, entities.FoodAccepted, nil
	case actionReject:
		if current != entities.RequestPending {
			return "", "", domain.ErrRequestNotPending
		}
		return entities.RequestRejected, entities.FoodAvailable, nil
	case actionPicked:
		if current != entities.RequestAccepted {
			return "", "", domain.ErrRequestNotAccepted
		}
		return entities.RequestPicked, entities.FoodPicked, nil
	case actionCompleted:
		if current != entities.RequestPicked {
			return "", "", domain.ErrRequestNotPicked
		}
		return entities.RequestCompleted, entities.FoodCompleted, nil
	case actionCancel:
		if current != entities.RequestPending && current != entities.RequestAccepted {
			return "", "", domain.ErrRequestNotCancellable
		}
		return entities.RequestCancelled, entities.FoodAvailable, nil
	}
	return "", "", domain.ErrInvalidRequestStatus
}
