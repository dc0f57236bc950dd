package service

import (
	"context"
	"errors"

	"go-stock-management/internal/apperr"
	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"
	"go-stock-management/pkg/jwt"
	"go-stock-management/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrEmailTaken         = errors.New("user already exists")
)

type AuthService interface {
	Register(ctx context.Context, input *model.CreateUserInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Profile(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(ctx context.Context, input *model.CreateUserInput) (*model.User, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}

	if existing, _ := s.userRepo.FindByEmail(ctx, input.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	role := input.Role
	if role == "" {
		role = model.RoleStaff
	}

	user := &model.User{
		Email:    input.Email,
		Name:     input.Name,
		Role:     role,
		IsActive: true,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.NotFound("user", userID.String())
	}
	return user, nil
}
