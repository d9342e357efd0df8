package entities

// FoodStatus is the lifecycle state of a FoodItem. It moves in lockstep with
// the status of the item's active PickupRequest; the pickup package owns all
// transitions between the two.
type FoodStatus string

const (
	FoodAvailable FoodStatus = "available"
	FoodRequested FoodStatus = "requested"
	FoodAccepted  FoodStatus = "accepted"
	FoodPicked    FoodStatus = "picked"
	FoodCompleted FoodStatus = "completed"
	FoodCancelled FoodStatus = "cancelled"
)

func (s FoodStatus) Valid() bool {
	switch s {
	case FoodAvailable, FoodRequested, FoodAccepted, FoodPicked, FoodCompleted, FoodCancelled:
		return true
	}
	return false
}

// RequestStatus is the lifecycle state of a PickupRequest.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestPicked    RequestStatus = "picked"
	RequestCompleted RequestStatus = "completed"
	RequestCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected, RequestPicked, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

// Active reports whether the request still holds a claim on its food item.
// Rejected and cancelled requests are historical only.
func (s RequestStatus) Active() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestPicked:
		return true
	}
	return false
}

// NotificationType tags a notification record and selects its payload shape.
type NotificationType string

const (
	NotifyNewListing      NotificationType = "new_listing"
	NotifyPickupRequest   NotificationType = "pickup_request"
	NotifyRequestAccepted NotificationType = "request_accepted"
	NotifyRequestRejected NotificationType = "request_rejected"
	NotifyPickupCompleted NotificationType = "pickup_completed"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotifyNewListing, NotifyPickupRequest, NotifyRequestAccepted, NotifyRequestRejected, NotifyPickupCompleted:
		return true
	}
	return false
}
