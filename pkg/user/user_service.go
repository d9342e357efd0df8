package user

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/internal/utils/mailing"
	"foodbridge-backend/pkg/geo"
	"foodbridge-backend/pkg/jwt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
		Me(ctx context.Context, userID uint) (*domain.UserResponse, error)
		UpdateProfile(ctx context.Context, userID uint, req domain.UpdateProfileRequest) (*domain.UserResponse, error)
		GetUsers(ctx context.Context, role string, page, limit int) ([]*domain.UserResponse, int64, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if !domain.ValidRole(req.Role) {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.Latitude != nil || req.Longitude != nil {
		if req.Latitude == nil || req.Longitude == nil || !geo.ValidateCoordinates(*req.Latitude, *req.Longitude) {
			return nil, domain.ErrInvalidCoordinates
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Phone:        req.Phone,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Address:      req.Address,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// Welcome mail is best-effort; registration succeeds without it.
	go func(name, email string) {
		body := fmt.Sprintf("<p>Hi %s, welcome to FoodBridge!</p>", name)
		if err := mailing.SendMail(email, "Welcome to FoodBridge", body); err != nil {
			log.Printf("failed to send welcome mail to %s: %v", email, err)
		}
	}(user.Name, user.Email)

	return &domain.AuthResponse{
		AccessToken: s.jwtService.GenerateTokenUser(user.ID, user.Role),
		User:        toUserResponse(user),
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.AuthResponse{
		AccessToken: s.jwtService.GenerateTokenUser(user.ID, user.Role),
		User:        toUserResponse(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID uint) (*domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, req domain.UpdateProfileRequest) (*domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Latitude != nil || req.Longitude != nil {
		if req.Latitude == nil || req.Longitude == nil || !geo.ValidateCoordinates(*req.Latitude, *req.Longitude) {
			return nil, domain.ErrInvalidCoordinates
		}
		user.Latitude = req.Latitude
		user.Longitude = req.Longitude
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) GetUsers(ctx context.Context, role string, page, limit int) ([]*domain.UserResponse, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, role, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.UserResponse, 0, len(users))
	for _, user := range users {
		resp := toUserResponse(user)
		result = append(result, &resp)
	}
	return result, count, nil
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Phone:     user.Phone,
		Latitude:  user.Latitude,
		Longitude: user.Longitude,
		Address:   user.Address,
		Verified:  user.Verified,
		CreatedAt: user.CreatedAt,
	}
}
