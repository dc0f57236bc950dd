package repository

import (
	"context"
	"errors"
	"time"

	"go-stock-management/internal/apperr"
	"go-stock-management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockFilter narrows stock listings.
type StockFilter struct {
	SearchKey string // matches product name
	StartDate *time.Time
	EndDate   *time.Time
}

// StockRepository is the ledger: one quantity-on-hand record per product.
type StockRepository interface {
	FindAll(ctx context.Context, skip, limit int, f StockFilter) ([]model.Stock, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) (*model.Stock, error)
	Create(ctx context.Context, stock *model.Stock) error
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, updatedBy string) error

	// Reserve decrements quantity for a product. The decrement is
	// conditional ("quantity >= requested" inside the UPDATE itself), so two
	// racing outbound transactions cannot drive stock negative: the loser
	// gets an InsufficientStockError.
	Reserve(ctx context.Context, productID uuid.UUID, qty int) error
	// Release increments quantity back, unconditionally.
	Release(ctx context.Context, productID uuid.UUID, qty int) error
	// Peek reads the current quantity for a product.
	Peek(ctx context.Context, productID uuid.UUID) (int, error)
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db: db}
}

func (r *stockRepo) FindAll(ctx context.Context, skip, limit int, f StockFilter) ([]model.Stock, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Stock{})

	if f.SearchKey != "" {
		q = q.Where("product_id IN (SELECT id FROM products WHERE name ILIKE ? AND deleted_at IS NULL)", "%"+f.SearchKey+"%")
	}
	if f.StartDate != nil {
		q = q.Where("stocks.created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("stocks.created_at <= ?", *f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stocks []model.Stock
	err := q.
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Supplier").
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&stocks).Error
	return stocks, total, err
}

func (r *stockRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error) {
	var stock model.Stock
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Supplier").
		First(&stock, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("stock", id.String())
	}
	return &stock, err
}

func (r *stockRepo) FindByProductID(ctx context.Context, productID uuid.UUID) (*model.Stock, error) {
	var stock model.Stock
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category").
		Preload("Product.Supplier").
		First(&stock, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("stock for product", productID.String())
	}
	return &stock, err
}

func (r *stockRepo) Create(ctx context.Context, stock *model.Stock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

// UpdateQuantity is the direct administrative update path. Everything else
// goes through Reserve/Release.
func (r *stockRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.Stock{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("stock", id.String())
	}
	return nil
}

func (r *stockRepo) Reserve(ctx context.Context, productID uuid.UUID, qty int) error {
	res := r.db.WithContext(ctx).Model(&model.Stock{}).
		Where("product_id = ? AND quantity >= ?", productID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		available, err := r.Peek(ctx, productID)
		if err != nil {
			return err
		}
		return &apperr.InsufficientStockError{ProductID: productID, Requested: qty, Available: available}
	}
	return nil
}

func (r *stockRepo) Release(ctx context.Context, productID uuid.UUID, qty int) error {
	res := r.db.WithContext(ctx).Model(&model.Stock{}).
		Where("product_id = ?", productID).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("stock for product", productID.String())
	}
	return nil
}

func (r *stockRepo) Peek(ctx context.Context, productID uuid.UUID) (int, error) {
	var stock model.Stock
	err := r.db.WithContext(ctx).Select("quantity").First(&stock, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.NotFound("stock for product", productID.String())
	}
	return stock.Quantity, err
}
