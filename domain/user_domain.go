package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister      = "user registered successfully"
	MessageSuccessLogin         = "login successful"
	MessageSuccessGetProfile    = "profile retrieved successfully"
	MessageSuccessUpdateProfile = "profile updated successfully"
	MessageSuccessGetUsers      = "users retrieved successfully"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedGetProfile    = "failed to retrieve profile"
	MessageFailedUpdateProfile = "failed to update profile"
	MessageFailedGetUsers      = "failed to retrieve users"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

type (
	RegisterRequest struct {
		Name      string   `json:"name" validate:"required,max=100"`
		Email     string   `json:"email" validate:"required,email"`
		Password  string   `json:"password" validate:"required,min=8"`
		Role      string   `json:"role" validate:"required,oneof=donor beneficiary admin"`
		Phone     string   `json:"phone" validate:"omitempty,max=20"`
		Latitude  *float64 `json:"latitude" validate:"omitempty"`
		Longitude *float64 `json:"longitude" validate:"omitempty"`
		Address   string   `json:"address" validate:"omitempty"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UpdateProfileRequest struct {
		Name      string   `json:"name" validate:"omitempty,max=100"`
		Phone     string   `json:"phone" validate:"omitempty,max=20"`
		Address   string   `json:"address" validate:"omitempty"`
		Latitude  *float64 `json:"latitude" validate:"omitempty"`
		Longitude *float64 `json:"longitude" validate:"omitempty"`
	}

	UserResponse struct {
		ID        uint      `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Role      string    `json:"role"`
		Phone     string    `json:"phone,omitempty"`
		Latitude  *float64  `json:"latitude,omitempty"`
		Longitude *float64  `json:"longitude,omitempty"`
		Address   string    `json:"address,omitempty"`
		Verified  bool      `json:"verified"`
		CreatedAt time.Time `json:"created_at"`
	}

	AuthResponse struct {
		AccessToken string       `json:"access_token"`
		User        UserResponse `json:"user"`
	}
)
