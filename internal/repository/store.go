package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories behind one handle so a service can run
// multi-repository work inside a single atomic unit. Atomic re-binds every
// repository to the transaction handle: all writes made through the inner
// Store commit together or not at all.
type Store interface {
	Products() ProductRepository
	Stocks() StockRepository
	Transactions() TransactionRepository
	Customers() CustomerRepository
	Categories() CategoryRepository
	Suppliers() SupplierRepository
	Users() UserRepository
	Statistics() StatisticsRepository

	Atomic(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Products() ProductRepository         { return &productRepo{db: s.db} }
func (s *gormStore) Stocks() StockRepository             { return &stockRepo{db: s.db} }
func (s *gormStore) Transactions() TransactionRepository { return &transactionRepo{db: s.db} }
func (s *gormStore) Customers() CustomerRepository       { return &customerRepo{db: s.db} }
func (s *gormStore) Categories() CategoryRepository      { return &categoryRepo{db: s.db} }
func (s *gormStore) Suppliers() SupplierRepository       { return &supplierRepo{db: s.db} }
func (s *gormStore) Users() UserRepository               { return &userRepo{db: s.db} }
func (s *gormStore) Statistics() StatisticsRepository    { return &statisticsRepo{db: s.db} }

func (s *gormStore) Atomic(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
