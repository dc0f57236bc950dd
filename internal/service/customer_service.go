package service

import (
	"context"

	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"
	"go-stock-management/pkg/validator"

	"github.com/google/uuid"
)

type CustomerService interface {
	Create(ctx context.Context, customer *model.Customer, actor *model.ActingUser) error
	Update(ctx context.Context, id uuid.UUID, customer *model.Customer, actor *model.ActingUser) (*model.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	GetAll(ctx context.Context, skip, limit int) ([]model.Customer, int64, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(ctx context.Context, customer *model.Customer, actor *model.ActingUser) error {
	if errs := validator.ValidateStruct(customer); len(errs) > 0 {
		return firstValidationError(errs)
	}
	customer.CreatedBy = actor.AuditID()
	customer.UpdatedBy = actor.AuditID()
	return s.customerRepo.Create(ctx, customer)
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req *model.Customer, actor *model.ActingUser) (*model.Customer, error) {
	existing, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Phone != "" {
		existing.Phone = req.Phone
	}
	if req.Email != "" {
		existing.Email = req.Email
	}
	if req.Address != "" {
		existing.Address = req.Address
	}
	existing.UpdatedBy = actor.AuditID()

	if err := s.customerRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return s.customerRepo.FindByID(ctx, id)
}

func (s *customerService) GetAll(ctx context.Context, skip, limit int) ([]model.Customer, int64, error) {
	return s.customerRepo.FindAll(ctx, skip, limit)
}
