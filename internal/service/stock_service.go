package service

import (
	"context"
	"time"

	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"
	"go-stock-management/pkg/validator"

	"github.com/google/uuid"
)

// StockService covers the read/admin surface of the ledger. All
// transaction-driven mutation goes through the TransactionService.
type StockService interface {
	GetAll(ctx context.Context, skip, limit int, f repository.StockFilter) ([]model.Stock, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Stock, error)
	GetByProductID(ctx context.Context, productID uuid.UUID) (*model.Stock, error)
	// UpdateQuantity is the direct administrative override.
	UpdateQuantity(ctx context.Context, id uuid.UUID, input *model.UpdateStockInput, actor *model.ActingUser) (*model.Stock, error)
	// MarkTransactionReturned re-types a transaction to RETURNED, which
	// releases its reserved units back into stock.
	MarkTransactionReturned(ctx context.Context, transactionID uuid.UUID, returnDate time.Time, actor *model.ActingUser) (*model.Transaction, error)
}

type stockService struct {
	store        repository.Store
	transactions TransactionService
}

func NewStockService(store repository.Store, transactions TransactionService) StockService {
	return &stockService{store: store, transactions: transactions}
}

func (s *stockService) GetAll(ctx context.Context, skip, limit int, f repository.StockFilter) ([]model.Stock, int64, error) {
	return s.store.Stocks().FindAll(ctx, skip, limit, f)
}

func (s *stockService) GetByID(ctx context.Context, id uuid.UUID) (*model.Stock, error) {
	return s.store.Stocks().FindByID(ctx, id)
}

func (s *stockService) GetByProductID(ctx context.Context, productID uuid.UUID) (*model.Stock, error) {
	return s.store.Stocks().FindByProductID(ctx, productID)
}

func (s *stockService) UpdateQuantity(ctx context.Context, id uuid.UUID, input *model.UpdateStockInput, actor *model.ActingUser) (*model.Stock, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}

	stock, err := s.store.Stocks().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Quantity != nil {
		if err := s.store.Stocks().UpdateQuantity(ctx, stock.ID, *input.Quantity, actor.AuditID()); err != nil {
			return nil, err
		}
	}
	return s.store.Stocks().FindByID(ctx, id)
}

func (s *stockService) MarkTransactionReturned(ctx context.Context, transactionID uuid.UUID, returnDate time.Time, actor *model.ActingUser) (*model.Transaction, error) {
	returned := string(model.TxReturned)
	return s.transactions.Update(ctx, transactionID, &model.UpdateTransactionInput{
		Type:       &returned,
		ReturnDate: &returnDate,
	}, actor)
}
