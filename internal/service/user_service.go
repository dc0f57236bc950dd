package service

import (
	"context"

	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"
	"go-stock-management/pkg/validator"

	"github.com/google/uuid"
)

type UserService interface {
	Create(ctx context.Context, input *model.CreateUserInput, actor *model.ActingUser) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, input *model.UpdateUserInput, actor *model.ActingUser) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetAll(ctx context.Context, skip, limit int) ([]model.User, int64, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, input *model.CreateUserInput, actor *model.ActingUser) (*model.User, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}

	if existing, _ := s.userRepo.FindByEmail(ctx, input.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	user := &model.User{
		Email:    input.Email,
		Name:     input.Name,
		Role:     input.Role,
		IsActive: true,
	}
	user.CreatedBy = actor.AuditID()
	user.UpdatedBy = actor.AuditID()
	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input *model.UpdateUserInput, actor *model.ActingUser) (*model.User, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	user.UpdatedBy = actor.AuditID()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *userService) GetAll(ctx context.Context, skip, limit int) ([]model.User, int64, error) {
	return s.userRepo.FindAll(ctx, skip, limit)
}
