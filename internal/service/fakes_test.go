package service

import (
	"context"
	"sync"

	"go-stock-management/internal/apperr"
	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory Store. Atomic snapshots the mutable state and
// restores it when the unit of work fails, matching the rollback semantics
// the services rely on.
type fakeStore struct {
	mu           sync.Mutex
	products     map[uuid.UUID]model.Product
	stocks       map[uuid.UUID]model.Stock // keyed by product ID
	transactions map[uuid.UUID]model.Transaction
	customers    map[uuid.UUID]model.Customer
	categories   map[uuid.UUID]model.Category
	suppliers    map[uuid.UUID]model.Supplier
	users        map[uuid.UUID]model.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:     make(map[uuid.UUID]model.Product),
		stocks:       make(map[uuid.UUID]model.Stock),
		transactions: make(map[uuid.UUID]model.Transaction),
		customers:    make(map[uuid.UUID]model.Customer),
		categories:   make(map[uuid.UUID]model.Category),
		suppliers:    make(map[uuid.UUID]model.Supplier),
		users:        make(map[uuid.UUID]model.User),
	}
}

// seedProduct registers a product with an initial stock quantity and returns
// its id.
func (f *fakeStore) seedProduct(name string, ptype model.ProductType, qty int, cost, price string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	costDec := decimal.RequireFromString(cost)
	priceDec := decimal.RequireFromString(price)

	product := model.Product{
		Name:         name,
		Type:         ptype,
		CostPrice:    &costDec,
		SellingPrice: &priceDec,
	}
	product.ID = uuid.New()
	f.products[product.ID] = product

	stock := model.Stock{ProductID: product.ID, Quantity: qty}
	stock.ID = uuid.New()
	f.stocks[product.ID] = stock

	return product.ID
}

func (f *fakeStore) seedCustomer(name string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	customer := model.Customer{Name: name}
	customer.ID = uuid.New()
	f.customers[customer.ID] = customer
	return customer.ID
}

// quantity reads the current on-hand count for a product.
func (f *fakeStore) quantity(productID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stocks[productID].Quantity
}

func (f *fakeStore) transactionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.transactions)
}

func (f *fakeStore) Products() repository.ProductRepository         { return &fakeProductRepo{f} }
func (f *fakeStore) Stocks() repository.StockRepository             { return &fakeStockRepo{f} }
func (f *fakeStore) Transactions() repository.TransactionRepository { return &fakeTransactionRepo{f} }
func (f *fakeStore) Customers() repository.CustomerRepository       { return &fakeCustomerRepo{f} }
func (f *fakeStore) Categories() repository.CategoryRepository      { return &fakeCategoryRepo{f} }
func (f *fakeStore) Suppliers() repository.SupplierRepository       { return &fakeSupplierRepo{f} }
func (f *fakeStore) Users() repository.UserRepository               { return nil }
func (f *fakeStore) Statistics() repository.StatisticsRepository    { return nil }

func (f *fakeStore) Atomic(ctx context.Context, fn func(repository.Store) error) error {
	f.mu.Lock()
	stocksSnap := make(map[uuid.UUID]model.Stock, len(f.stocks))
	for k, v := range f.stocks {
		stocksSnap[k] = v
	}
	txSnap := make(map[uuid.UUID]model.Transaction, len(f.transactions))
	for k, v := range f.transactions {
		txSnap[k] = v
	}
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.stocks = stocksSnap
		f.transactions = txSnap
		f.mu.Unlock()
		return err
	}
	return nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(ctx context.Context, product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) FindAll(ctx context.Context, skip, limit int) ([]model.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	products := make([]model.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		products = append(products, p)
	}
	return products, int64(len(products)), nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, apperr.NotFound("product", id.String())
	}
	if stock, ok := r.s.stocks[id]; ok {
		p.Stock = &stock
	}
	return &p, nil
}

func (r *fakeProductRepo) FindByIDsWithStock(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	products := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := r.s.products[id]
		if !ok {
			continue
		}
		if stock, ok := r.s.stocks[id]; ok {
			p.Stock = &stock
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return apperr.NotFound("product", product.ID.String())
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	delete(r.s.stocks, id)
	return nil
}

type fakeStockRepo struct{ s *fakeStore }

func (r *fakeStockRepo) FindAll(ctx context.Context, skip, limit int, f repository.StockFilter) ([]model.Stock, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stocks := make([]model.Stock, 0, len(r.s.stocks))
	for _, s := range r.s.stocks {
		stocks = append(stocks, s)
	}
	return stocks, int64(len(stocks)), nil
}

func (r *fakeStockRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, s := range r.s.stocks {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, apperr.NotFound("stock", id.String())
}

func (r *fakeStockRepo) FindByProductID(ctx context.Context, productID uuid.UUID) (*model.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.stocks[productID]
	if !ok {
		return nil, apperr.NotFound("stock for product", productID.String())
	}
	return &s, nil
}

func (r *fakeStockRepo) Create(ctx context.Context, stock *model.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if stock.ID == uuid.Nil {
		stock.ID = uuid.New()
	}
	r.s.stocks[stock.ProductID] = *stock
	return nil
}

func (r *fakeStockRepo) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int, updatedBy string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for pid, s := range r.s.stocks {
		if s.ID == id {
			s.Quantity = quantity
			s.UpdatedBy = updatedBy
			r.s.stocks[pid] = s
			return nil
		}
	}
	return apperr.NotFound("stock", id.String())
}

func (r *fakeStockRepo) Reserve(ctx context.Context, productID uuid.UUID, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.stocks[productID]
	if !ok {
		return apperr.NotFound("stock for product", productID.String())
	}
	if s.Quantity < qty {
		return &apperr.InsufficientStockError{ProductID: productID, Requested: qty, Available: s.Quantity}
	}
	s.Quantity -= qty
	r.s.stocks[productID] = s
	return nil
}

func (r *fakeStockRepo) Release(ctx context.Context, productID uuid.UUID, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.stocks[productID]
	if !ok {
		return apperr.NotFound("stock for product", productID.String())
	}
	s.Quantity += qty
	r.s.stocks[productID] = s
	return nil
}

func (r *fakeStockRepo) Peek(ctx context.Context, productID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.stocks[productID]
	if !ok {
		return 0, apperr.NotFound("stock for product", productID.String())
	}
	return s.Quantity, nil
}

type fakeTransactionRepo struct{ s *fakeStore }

func (r *fakeTransactionRepo) FindAll(ctx context.Context, skip, limit int, f repository.TransactionFilter) ([]model.Transaction, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	transactions := make([]model.Transaction, 0, len(r.s.transactions))
	for _, tx := range r.s.transactions {
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, int64(len(transactions)), nil
}

func (r *fakeTransactionRepo) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx, ok := r.s.transactions[id]
	if !ok {
		return nil, apperr.NotFound("transaction", id.String())
	}
	tx.Items = append([]model.TransactionItem(nil), tx.Items...)
	return &tx, nil
}

func (r *fakeTransactionRepo) Create(ctx context.Context, tx *model.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	for i := range tx.Items {
		if tx.Items[i].ID == uuid.Nil {
			tx.Items[i].ID = uuid.New()
		}
		tx.Items[i].TransactionID = tx.ID
	}
	stored := *tx
	stored.Items = append([]model.TransactionItem(nil), tx.Items...)
	r.s.transactions[tx.ID] = stored
	return nil
}

func (r *fakeTransactionRepo) Update(ctx context.Context, tx *model.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions[tx.ID]; !ok {
		return apperr.NotFound("transaction", tx.ID.String())
	}
	stored := *tx
	stored.Items = append([]model.TransactionItem(nil), tx.Items...)
	r.s.transactions[tx.ID] = stored
	return nil
}

func (r *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions[id]; !ok {
		return apperr.NotFound("transaction", id.String())
	}
	delete(r.s.transactions, id)
	return nil
}

type fakeCustomerRepo struct{ s *fakeStore }

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) FindAll(ctx context.Context, skip, limit int) ([]model.Customer, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	customers := make([]model.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		customers = append(customers, c)
	}
	return customers, int64(len(customers)), nil
}

func (r *fakeCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, apperr.NotFound("customer", id.String())
	}
	return &c, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *model.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.customers, id)
	return nil
}

type fakeCategoryRepo struct{ s *fakeStore }

func (r *fakeCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) FindAll(ctx context.Context) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	categories := make([]model.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, apperr.NotFound("category", id.String())
	}
	return &c, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[category.ID] = *category
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.categories, id)
	return nil
}

type fakeSupplierRepo struct{ s *fakeStore }

func (r *fakeSupplierRepo) Create(ctx context.Context, supplier *model.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *fakeSupplierRepo) FindAll(ctx context.Context, skip, limit int) ([]model.Supplier, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	suppliers := make([]model.Supplier, 0, len(r.s.suppliers))
	for _, s := range r.s.suppliers {
		suppliers = append(suppliers, s)
	}
	return suppliers, int64(len(suppliers)), nil
}

func (r *fakeSupplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.suppliers[id]
	if !ok {
		return nil, apperr.NotFound("supplier", id.String())
	}
	return &s, nil
}

func (r *fakeSupplierRepo) Update(ctx context.Context, supplier *model.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *fakeSupplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.suppliers, id)
	return nil
}
