package repository

import (
	"context"
	"errors"
	"time"

	"go-stock-management/internal/apperr"
	"go-stock-management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	Type      model.TransactionType // empty = all types
	StartDate *time.Time
	EndDate   *time.Time
	SearchKey string // free text over customer name and product name
}

type TransactionRepository interface {
	FindAll(ctx context.Context, skip, limit int, f TransactionFilter) ([]model.Transaction, int64, error)
	// FindByIDWithItems loads the full graph: customer, items in line order,
	// item products.
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	// Create writes the transaction together with its line items.
	Create(ctx context.Context, tx *model.Transaction) error
	// Update persists the transaction row only; line items are immutable.
	Update(ctx context.Context, tx *model.Transaction) error
	// Delete removes the transaction and its items.
	Delete(ctx context.Context, id uuid.UUID, deletedBy string) error
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("transaction_items.line_no ASC")
}

func (r *transactionRepo) FindAll(ctx context.Context, skip, limit int, f TransactionFilter) ([]model.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{})

	if f.Type != "" {
		q = q.Where("transactions.type = ?", f.Type)
	}
	if f.StartDate != nil {
		q = q.Where("transactions.start_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("transactions.start_date <= ?", *f.EndDate)
	}
	if f.SearchKey != "" {
		like := "%" + f.SearchKey + "%"
		q = q.Where(
			`transactions.customer_id IN (SELECT id FROM customers WHERE name ILIKE ? AND deleted_at IS NULL)
			 OR transactions.id IN (
				SELECT ti.transaction_id FROM transaction_items ti
				JOIN products p ON p.id = ti.product_id
				WHERE p.name ILIKE ? AND ti.deleted_at IS NULL)`,
			like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []model.Transaction
	err := q.
		Preload("Customer").
		Preload("Items", orderedItems).
		Preload("Items.Product").
		Order("transactions.created_at DESC").
		Offset(skip).Limit(limit).
		Find(&transactions).Error
	return transactions, total, err
}

func (r *transactionRepo) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var tx model.Transaction
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", orderedItems).
		Preload("Items.Product").
		First(&tx, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("transaction", id.String())
	}
	return &tx, err
}

func (r *transactionRepo) Create(ctx context.Context, tx *model.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepo) Update(ctx context.Context, tx *model.Transaction) error {
	// Omit associations so a field update can never rewrite line items.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(tx).Error
}

func (r *transactionRepo) Delete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	if deletedBy != "" {
		if err := r.db.WithContext(ctx).Model(&model.Transaction{}).
			Where("id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
	}
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", id).Delete(&model.TransactionItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.Transaction{}, "id = ?", id).Error
}
