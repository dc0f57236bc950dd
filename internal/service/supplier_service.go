package service

import (
	"context"

	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"
	"go-stock-management/pkg/validator"

	"github.com/google/uuid"
)

type SupplierService interface {
	Create(ctx context.Context, supplier *model.Supplier, actor *model.ActingUser) error
	Update(ctx context.Context, id uuid.UUID, supplier *model.Supplier, actor *model.ActingUser) (*model.Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	GetAll(ctx context.Context, skip, limit int) ([]model.Supplier, int64, error)
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
}

func NewSupplierService(supplierRepo repository.SupplierRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo}
}

func (s *supplierService) Create(ctx context.Context, supplier *model.Supplier, actor *model.ActingUser) error {
	if errs := validator.ValidateStruct(supplier); len(errs) > 0 {
		return firstValidationError(errs)
	}
	supplier.CreatedBy = actor.AuditID()
	supplier.UpdatedBy = actor.AuditID()
	return s.supplierRepo.Create(ctx, supplier)
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req *model.Supplier, actor *model.ActingUser) (*model.Supplier, error) {
	existing, err := s.supplierRepo.FindByID(ctx, id)
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
	existing.UpdatedBy = actor.AuditID()

	if err := s.supplierRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.supplierRepo.Delete(ctx, id)
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	return s.supplierRepo.FindByID(ctx, id)
}

func (s *supplierService) GetAll(ctx context.Context, skip, limit int) ([]model.Supplier, int64, error) {
	return s.supplierRepo.FindAll(ctx, skip, limit)
}
