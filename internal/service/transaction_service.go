package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-stock-management/internal/apperr"
	"go-stock-management/internal/messaging"
	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"
	"go-stock-management/internal/ws"
	"go-stock-management/pkg/validator"

	"github.com/google/uuid"
)

// TransactionService is the orchestrator: every stock mutation triggered by a
// transaction lifecycle event runs through here, inside one atomic unit.
type TransactionService interface {
	Create(ctx context.Context, input *model.CreateTransactionInput, actor *model.ActingUser) (*model.Transaction, error)
	Update(ctx context.Context, id uuid.UUID, input *model.UpdateTransactionInput, actor *model.ActingUser) (*model.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID, actor *model.ActingUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	GetAll(ctx context.Context, skip, limit int, f repository.TransactionFilter) ([]model.Transaction, int64, error)
	// CreateStockOut is the batch path: one customer, heterogeneous items.
	// SOLD aggregates everything into a single transaction; rentals fan out
	// one transaction per line item so each rented unit can be returned
	// independently.
	CreateStockOut(ctx context.Context, input *model.StockOutInput, actor *model.ActingUser) ([]*model.Transaction, error)
}

type transactionService struct {
	store    repository.Store
	hub      *ws.Hub
	producer messaging.StockEventProducer
}

func NewTransactionService(store repository.Store, hub *ws.Hub, producer messaging.StockEventProducer) TransactionService {
	if producer == nil {
		producer = messaging.NopProducer{}
	}
	return &transactionService{store: store, hub: hub, producer: producer}
}

func firstValidationError(errs []*validator.ErrorResponse) error {
	e := errs[0]
	return apperr.Validation("validation failed: field '%s' failed on tag '%s'", e.FailedField, e.Tag)
}

// loadProductsWithStock reads every referenced product and its stock record in
// one query and indexes them by id.
func loadProductsWithStock(ctx context.Context, s repository.Store, items []model.TransactionItemInput) (map[uuid.UUID]*model.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.Products().FindByIDsWithStock(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, id := range ids {
		if byID[id] == nil {
			return nil, apperr.NotFound("product", id.String())
		}
	}
	return byID, nil
}

// checkAvailability validates every line against the current stock snapshot
// and fails on the first shortfall. The conditional decrement in the ledger
// is the concurrency guard; this check exists to reject with a descriptive
// error before any write happens.
func checkAvailability(items []model.TransactionItem, byProduct map[uuid.UUID]*model.Product) error {
	for i := range items {
		product := byProduct[items[i].ProductID]
		if product.Stock == nil {
			return apperr.NotFound("stock for product", product.Name)
		}
		if product.Stock.Quantity < items[i].Quantity {
			return &apperr.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   items[i].Quantity,
				Available:   product.Stock.Quantity,
			}
		}
	}
	return nil
}

func (s *transactionService) Create(ctx context.Context, input *model.CreateTransactionInput, actor *model.ActingUser) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}

	txType, ok := model.NormalizeTransactionType(input.Type)
	if !ok {
		return nil, apperr.Validation("invalid transaction type: %s", input.Type)
	}
	if txType == model.TxRent && input.ExpectedReturnDate == nil {
		return nil, apperr.Validation("expected return date is required for rented items")
	}

	startDate := time.Now()
	if input.StartDate != nil {
		startDate = *input.StartDate
	}

	var created *model.Transaction
	err := s.store.Atomic(ctx, func(st repository.Store) error {
		byProduct, err := loadProductsWithStock(ctx, st, input.Items)
		if err != nil {
			return err
		}

		tx := &model.Transaction{
			CustomerID:         input.CustomerID,
			Type:               txType,
			StartDate:          startDate,
			ReturnDate:         input.ReturnDate,
			ExpectedReturnDate: input.ExpectedReturnDate,
		}
		tx.CreatedBy = actor.AuditID()
		tx.UpdatedBy = actor.AuditID()

		for i, in := range input.Items {
			product := byProduct[in.ProductID]
			if product.Type == model.ProductItem && in.Quantity != 1 {
				return apperr.Validation("quantity must be 1 for item-type product: %s", product.Name)
			}

			// Snapshot the cost at transaction time; never recomputed later.
			unitCost := product.CostPriceOrZero()
			if in.UnitCostPrice != nil {
				unitCost = *in.UnitCostPrice
			}

			item := model.TransactionItem{
				ProductID:     in.ProductID,
				LineNo:        i,
				Quantity:      in.Quantity,
				UnitPrice:     in.UnitPrice,
				UnitCostPrice: unitCost,
			}
			item.CreatedBy = actor.AuditID()
			item.UpdatedBy = actor.AuditID()
			tx.Items = append(tx.Items, item)
		}
		tx.ComputeTotals()

		if model.CreationEffect(txType) == model.StockEffectReserveAll {
			if err := checkAvailability(tx.Items, byProduct); err != nil {
				return err
			}
			for i := range tx.Items {
				if err := st.Stocks().Reserve(ctx, tx.Items[i].ProductID, tx.Items[i].Quantity); err != nil {
					return err
				}
			}
		}

		if err := st.Transactions().Create(ctx, tx); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	full, err := s.store.Transactions().FindByIDWithItems(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	if model.CreationEffect(txType) == model.StockEffectReserveAll {
		s.publishStockEvent("stock.reserved", full, -1, actor)
	}
	return full, nil
}

func (s *transactionService) Update(ctx context.Context, id uuid.UUID, input *model.UpdateTransactionInput, actor *model.ActingUser) (*model.Transaction, error) {
	var effect model.StockEffect
	err := s.store.Atomic(ctx, func(st repository.Store) error {
		existing, err := st.Transactions().FindByIDWithItems(ctx, id)
		if err != nil {
			return err
		}

		// New type defaults to the old one when omitted.
		newType := existing.Type
		if input.Type != nil {
			t, ok := model.NormalizeTransactionType(*input.Type)
			if !ok {
				return apperr.Validation("invalid transaction type: %s", *input.Type)
			}
			newType = t
		}

		effect = model.TransitionEffect(existing.Type, newType)
		switch effect {
		case model.StockEffectReleaseAll:
			// The goods come back: mark every original item available again.
			for i := range existing.Items {
				if err := st.Stocks().Release(ctx, existing.Items[i].ProductID, existing.Items[i].Quantity); err != nil {
					return err
				}
			}
		case model.StockEffectReserveAll:
			// Going back out the door: re-validate against the current
			// snapshot before reserving.
			inputs := make([]model.TransactionItemInput, len(existing.Items))
			for i := range existing.Items {
				inputs[i] = model.TransactionItemInput{ProductID: existing.Items[i].ProductID}
			}
			byProduct, err := loadProductsWithStock(ctx, st, inputs)
			if err != nil {
				return err
			}
			if err := checkAvailability(existing.Items, byProduct); err != nil {
				return err
			}
			for i := range existing.Items {
				if err := st.Stocks().Reserve(ctx, existing.Items[i].ProductID, existing.Items[i].Quantity); err != nil {
					return err
				}
			}
		}

		existing.Type = newType
		if input.CustomerID != nil {
			existing.CustomerID = input.CustomerID
		}
		if input.StartDate != nil {
			existing.StartDate = *input.StartDate
		}
		if input.ReturnDate != nil {
			existing.ReturnDate = input.ReturnDate
		}
		if input.ExpectedReturnDate != nil {
			existing.ExpectedReturnDate = input.ExpectedReturnDate
		}
		existing.UpdatedBy = actor.AuditID()

		return st.Transactions().Update(ctx, existing)
	})
	if err != nil {
		return nil, err
	}

	full, err := s.store.Transactions().FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, err
	}

	switch effect {
	case model.StockEffectReleaseAll:
		s.publishStockEvent("stock.released", full, +1, actor)
	case model.StockEffectReserveAll:
		s.publishStockEvent("stock.reserved", full, -1, actor)
	}
	return full, nil
}

func (s *transactionService) Delete(ctx context.Context, id uuid.UUID, actor *model.ActingUser) error {
	var deleted *model.Transaction
	err := s.store.Atomic(ctx, func(st repository.Store) error {
		existing, err := st.Transactions().FindByIDWithItems(ctx, id)
		if err != nil {
			return err
		}

		if model.DeletionEffect(existing.Type) == model.StockEffectReleaseAll {
			for i := range existing.Items {
				if err := st.Stocks().Release(ctx, existing.Items[i].ProductID, existing.Items[i].Quantity); err != nil {
					return err
				}
			}
		}

		deleted = existing
		return st.Transactions().Delete(ctx, id, actor.AuditID())
	})
	if err != nil {
		return err
	}

	if model.DeletionEffect(deleted.Type) == model.StockEffectReleaseAll {
		s.publishStockEvent("stock.released", deleted, +1, actor)
	}
	return nil
}

func (s *transactionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	return s.store.Transactions().FindByIDWithItems(ctx, id)
}

func (s *transactionService) GetAll(ctx context.Context, skip, limit int, f repository.TransactionFilter) ([]model.Transaction, int64, error) {
	return s.store.Transactions().FindAll(ctx, skip, limit, f)
}

func (s *transactionService) CreateStockOut(ctx context.Context, input *model.StockOutInput, actor *model.ActingUser) ([]*model.Transaction, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}

	txType, ok := model.NormalizeTransactionType(input.Type)
	if !ok || !txType.IsOutbound() {
		return nil, apperr.Validation("invalid stock out transaction type: %s", input.Type)
	}
	if txType == model.TxRent && input.ExpectedReturnDate == nil {
		return nil, apperr.Validation("expected return date is required for rented items")
	}

	if _, err := s.store.Customers().FindByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	// Pre-validate the whole batch before the first write so a shortfall on
	// line 3 does not leave lines 1 and 2 committed.
	byProduct, err := loadProductsWithStock(ctx, s.store, input.Items)
	if err != nil {
		return nil, err
	}
	for _, item := range input.Items {
		product := byProduct[item.ProductID]
		if product.Stock == nil {
			return nil, apperr.NotFound("stock for product", product.Name)
		}
		switch product.Type {
		case model.ProductItem:
			if item.Quantity != 1 {
				return nil, apperr.Validation("quantity must be 1 for item-type product: %s", product.Name)
			}
			if product.Stock.Quantity < 1 {
				return nil, &apperr.InsufficientStockError{
					ProductID: product.ID, ProductName: product.Name,
					Requested: 1, Available: product.Stock.Quantity,
				}
			}
		case model.ProductQuantity:
			if product.Stock.Quantity < item.Quantity {
				return nil, &apperr.InsufficientStockError{
					ProductID: product.ID, ProductName: product.Name,
					Requested: item.Quantity, Available: product.Stock.Quantity,
				}
			}
		}
	}

	startDate := input.TransactionDate
	customerID := input.CustomerID

	if txType == model.TxSold {
		created, err := s.Create(ctx, &model.CreateTransactionInput{
			CustomerID: &customerID,
			Type:       string(model.TxSold),
			StartDate:  &startDate,
			Items:      input.Items,
		}, actor)
		if err != nil {
			return nil, err
		}
		return []*model.Transaction{created}, nil
	}

	// Rentals: one transaction per line item so each rented unit is
	// independently trackable and returnable.
	created := make([]*model.Transaction, 0, len(input.Items))
	for _, item := range input.Items {
		tx, err := s.Create(ctx, &model.CreateTransactionInput{
			CustomerID:         &customerID,
			Type:               string(model.TxRent),
			StartDate:          &startDate,
			ExpectedReturnDate: input.ExpectedReturnDate,
			Items:              []model.TransactionItemInput{item},
		}, actor)
		if err != nil {
			return nil, err
		}
		created = append(created, tx)
	}
	return created, nil
}

// publishStockEvent mirrors a committed stock movement to the websocket hub
// and the Kafka topic. Best effort on both: a dropped event never fails the
// request that caused it.
func (s *transactionService) publishStockEvent(eventType string, tx *model.Transaction, sign int, actor *model.ActingUser) {
	deltas := make(map[string]int, len(tx.Items))
	for i := range tx.Items {
		deltas[tx.Items[i].ProductID.String()] += sign * tx.Items[i].Quantity
	}

	event := &messaging.StockEvent{
		Type:          eventType,
		TransactionID: tx.ID.String(),
		Deltas:        deltas,
		Actor:         actor.AuditID(),
		Timestamp:     time.Now(),
	}

	go func() {
		if s.hub != nil {
			s.hub.BroadcastJSON(map[string]interface{}{
				"type":        "stock_update",
				"action":      eventType,
				"transaction": tx,
				"deltas":      deltas,
				"actor":       actor.AuditID(),
			})
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.producer.PublishStockEvent(ctx, event); err != nil {
			log.Printf("Failed to publish stock event: %v", err)
		}
	}()
}
