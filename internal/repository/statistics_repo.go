package repository

import (
	"context"
	"time"

	"go-stock-management/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Aggregation rows scanned straight out of group-by queries.

type ProductMovement struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Units     int64           `json:"units"`
	InStock   int             `json:"in_stock"`
	Category  string          `json:"category"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type CategoryPerformance struct {
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	Sold       int64     `json:"sold"`
	Rented     int64     `json:"rented"`
}

type CategoryRevenue struct {
	CategoryID uuid.UUID       `json:"category_id"`
	Name       string          `json:"name"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// StatisticsRepository runs read-only group-by aggregates over committed
// transaction items. No caching; every call hits the store.
type StatisticsRepository interface {
	// SumUnits totals item quantities for transactions of the given types,
	// optionally restricted to a created-at window [from, to).
	SumUnits(ctx context.Context, types []model.TransactionType, from, to *time.Time) (int64, error)
	// SumRevenue totals transaction amounts for the given types.
	SumRevenue(ctx context.Context, types []model.TransactionType) (decimal.Decimal, error)
	// ProductMovers returns the top (or, with lowest=true, bottom) movers by
	// outbound unit volume.
	ProductMovers(ctx context.Context, limit int, lowest bool) ([]ProductMovement, error)
	// CategoryPerformance returns sold vs rented unit counts per category.
	CategoryPerformance(ctx context.Context) ([]CategoryPerformance, error)
	// RevenueByCategory sums unit_price*quantity of outbound items per category.
	RevenueByCategory(ctx context.Context) ([]CategoryRevenue, error)
}

type statisticsRepo struct {
	db *gorm.DB
}

func NewStatisticsRepo(db *gorm.DB) StatisticsRepository {
	return &statisticsRepo{db: db}
}

// itemsJoinedToTransactions filters soft-deleted rows on both sides of the
// join; GORM only handles the FROM table automatically.
func (r *statisticsRepo) itemsJoinedToTransactions(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.TransactionItem{}).
		Joins("JOIN transactions t ON t.id = transaction_items.transaction_id AND t.deleted_at IS NULL")
}

func (r *statisticsRepo) SumUnits(ctx context.Context, types []model.TransactionType, from, to *time.Time) (int64, error) {
	q := r.itemsJoinedToTransactions(ctx).Where("t.type IN ?", types)
	if from != nil {
		q = q.Where("t.created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("t.created_at < ?", *to)
	}

	var units int64
	err := q.Select("COALESCE(SUM(transaction_items.quantity), 0)").Scan(&units).Error
	return units, err
}

func (r *statisticsRepo) SumRevenue(ctx context.Context, types []model.TransactionType) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("type IN ?", types).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	return revenue, err
}

func (r *statisticsRepo) ProductMovers(ctx context.Context, limit int, lowest bool) ([]ProductMovement, error) {
	order := "units DESC"
	if lowest {
		order = "units ASC"
	}

	var movers []ProductMovement
	err := r.itemsJoinedToTransactions(ctx).
		Joins("JOIN products p ON p.id = transaction_items.product_id AND p.deleted_at IS NULL").
		Joins("LEFT JOIN categories c ON c.id = p.category_id AND c.deleted_at IS NULL").
		Joins("LEFT JOIN stocks s ON s.product_id = p.id AND s.deleted_at IS NULL").
		Where("t.type IN ?", []model.TransactionType{model.TxSold, model.TxRent}).
		Select(`transaction_items.product_id AS product_id,
			p.name AS name,
			COALESCE(SUM(transaction_items.quantity), 0) AS units,
			COALESCE(MAX(s.quantity), 0) AS in_stock,
			COALESCE(MAX(c.name), '') AS category,
			COALESCE(SUM(transaction_items.unit_price * transaction_items.quantity), 0) AS revenue`).
		Group("transaction_items.product_id, p.name").
		Order(order).
		Limit(limit).
		Scan(&movers).Error
	return movers, err
}

func (r *statisticsRepo) CategoryPerformance(ctx context.Context) ([]CategoryPerformance, error) {
	var rows []CategoryPerformance
	err := r.itemsJoinedToTransactions(ctx).
		Joins("JOIN products p ON p.id = transaction_items.product_id AND p.deleted_at IS NULL").
		Joins("JOIN categories c ON c.id = p.category_id AND c.deleted_at IS NULL").
		Where("t.type IN ?", []model.TransactionType{model.TxSold, model.TxRent}).
		Select(`c.id AS category_id,
			c.name AS name,
			COALESCE(SUM(CASE WHEN t.type = 'SOLD' THEN transaction_items.quantity ELSE 0 END), 0) AS sold,
			COALESCE(SUM(CASE WHEN t.type = 'RENT' THEN transaction_items.quantity ELSE 0 END), 0) AS rented`).
		Group("c.id, c.name").
		Order("c.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *statisticsRepo) RevenueByCategory(ctx context.Context) ([]CategoryRevenue, error) {
	var rows []CategoryRevenue
	err := r.itemsJoinedToTransactions(ctx).
		Joins("JOIN products p ON p.id = transaction_items.product_id AND p.deleted_at IS NULL").
		Joins("JOIN categories c ON c.id = p.category_id AND c.deleted_at IS NULL").
		Where("t.type IN ?", []model.TransactionType{model.TxSold, model.TxRent}).
		Select(`c.id AS category_id,
			c.name AS name,
			COALESCE(SUM(transaction_items.unit_price * transaction_items.quantity), 0) AS revenue`).
		Group("c.id, c.name").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}
