package domain

import (
	"errors"
	"net/http"
	"os"
)

const (
	RoleDonor       = "donor"
	RoleBeneficiary = "beneficiary"
	RoleAdmin       = "admin"
)

func ValidRole(role string) bool {
	return role == RoleDonor || role == RoleBeneficiary || role == RoleAdmin
}

var (
	MessageUserNotAllowed       = "user not allowed"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	JwtSecret = os.Getenv("JWT_SECRET")

	ErrUserNotAllowed     = errors.New("user not allowed")
	ErrTokenNotFound      = errors.New("failed to token not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidID          = errors.New("invalid id")
)

var (
	notFoundErrs = []error{
		ErrUserNotFound, ErrFoodItemNotFound, ErrPickupRequestNotFound,
		ErrNotificationNotFound, ErrVerificationRequestNotFound,
	}
	permissionErrs = []error{
		ErrUserNotAllowed, ErrUnauthorizedFoodAccess, ErrUnauthorizedRequestAccess,
	}
	conflictErrs = []error{
		ErrFoodItemNotAvailable, ErrDuplicateRequest, ErrRequestNotPending,
		ErrRequestNotAccepted, ErrRequestNotPicked, ErrRequestNotCancellable,
		ErrStaleRequestStatus, ErrEmailRegistered,
	}
)

// ErrorStatus maps a domain error onto the HTTP status code the API reports
// it with. Anything unclassified is treated as a bad request.
func ErrorStatus(err error) int {
	for _, target := range notFoundErrs {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range permissionErrs {
		if errors.Is(err, target) {
			return http.StatusForbidden
		}
	}
	for _, target := range conflictErrs {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrTokenInvalid) {
		return http.StatusUnauthorized
	}
	return http.StatusBadRequest
}
