package service

import (
	"context"

	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"
	"go-stock-management/pkg/validator"

	"github.com/google/uuid"
)

type CategoryService interface {
	Create(ctx context.Context, category *model.Category, actor *model.ActingUser) error
	Update(ctx context.Context, id uuid.UUID, category *model.Category, actor *model.ActingUser) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	GetAll(ctx context.Context) ([]model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, category *model.Category, actor *model.ActingUser) error {
	if errs := validator.ValidateStruct(category); len(errs) > 0 {
		return firstValidationError(errs)
	}
	category.CreatedBy = actor.AuditID()
	category.UpdatedBy = actor.AuditID()
	return s.categoryRepo.Create(ctx, category)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *model.Category, actor *model.ActingUser) (*model.Category, error) {
	existing, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	existing.UpdatedBy = actor.AuditID()

	if err := s.categoryRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *categoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}
