package service

import (
	"context"

	"go-stock-management/internal/apperr"
	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"
	"go-stock-management/pkg/validator"

	"github.com/google/uuid"
)

type ProductService interface {
	// Create writes the product and its stock record as one atomic unit.
	// When supplier_name is given without supplier_id, the supplier is
	// created inline in the same unit.
	Create(ctx context.Context, input *model.CreateProductInput, actor *model.ActingUser) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, input *model.UpdateProductInput, actor *model.ActingUser) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetAll(ctx context.Context, skip, limit int) ([]model.Product, int64, error)
}

type productService struct {
	store repository.Store
}

func NewProductService(store repository.Store) ProductService {
	return &productService{store: store}
}

func (s *productService) Create(ctx context.Context, input *model.CreateProductInput, actor *model.ActingUser) (*model.Product, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}

	// Initial stock quantity: ITEM products always hold a single unit.
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if input.Type == model.ProductItem {
		quantity = 1
	}

	var created *model.Product
	err := s.store.Atomic(ctx, func(st repository.Store) error {
		if _, err := st.Categories().FindByID(ctx, input.CategoryID); err != nil {
			return err
		}

		supplierID := input.SupplierID
		if supplierID == nil && input.SupplierName != "" {
			supplier := &model.Supplier{Name: input.SupplierName}
			supplier.CreatedBy = actor.AuditID()
			supplier.UpdatedBy = actor.AuditID()
			if err := st.Suppliers().Create(ctx, supplier); err != nil {
				return err
			}
			supplierID = &supplier.ID
		}

		product := &model.Product{
			CategoryID:   input.CategoryID,
			SupplierID:   supplierID,
			Name:         input.Name,
			Type:         input.Type,
			SerialNumber: input.SerialNumber,
			Warranty:     input.Warranty,
			Description:  input.Description,
			CostPrice:    input.CostPrice,
			SellingPrice: input.SellingPrice,
		}
		product.CreatedBy = actor.AuditID()
		product.UpdatedBy = actor.AuditID()

		if err := st.Products().Create(ctx, product); err != nil {
			return err
		}

		stock := &model.Stock{ProductID: product.ID, Quantity: quantity}
		stock.CreatedBy = actor.AuditID()
		stock.UpdatedBy = actor.AuditID()
		if err := st.Stocks().Create(ctx, stock); err != nil {
			return err
		}

		created = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.store.Products().FindByID(ctx, created.ID)
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, input *model.UpdateProductInput, actor *model.ActingUser) (*model.Product, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}

	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.SupplierID != nil {
		product.SupplierID = input.SupplierID
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Type != nil {
		product.Type = *input.Type
	}
	if input.SerialNumber != nil {
		product.SerialNumber = *input.SerialNumber
	}
	if input.Warranty != nil {
		product.Warranty = *input.Warranty
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.CostPrice != nil {
		product.CostPrice = input.CostPrice
	}
	if input.SellingPrice != nil {
		product.SellingPrice = input.SellingPrice
	}
	product.UpdatedBy = actor.AuditID()

	if err := s.store.Products().Update(ctx, product); err != nil {
		return nil, err
	}
	return s.store.Products().FindByID(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.Products().FindByID(ctx, id); err != nil {
		return err
	}
	return s.store.Atomic(ctx, func(st repository.Store) error {
		return st.Products().Delete(ctx, id)
	})
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product", id.String())
	}
	return product, nil
}

func (s *productService) GetAll(ctx context.Context, skip, limit int) ([]model.Product, int64, error) {
	return s.store.Products().FindAll(ctx, skip, limit)
}
