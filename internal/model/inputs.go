package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request payloads. Handlers parse JSON into these and services validate them.

type CreateProductInput struct {
	CategoryID   uuid.UUID        `json:"category_id" validate:"uuid_required"`
	SupplierID   *uuid.UUID       `json:"supplier_id,omitempty"`
	SupplierName string           `json:"supplier_name,omitempty"` // inline supplier creation
	Name         string           `json:"name" validate:"required"`
	Type         ProductType      `json:"type" validate:"required,oneof=ITEM QUANTITY"`
	Quantity     *int             `json:"quantity,omitempty" validate:"omitempty,gte=0"` // initial stock, default 1
	SerialNumber string           `json:"serial_number,omitempty"`
	Warranty     string           `json:"warranty,omitempty"`
	Description  string           `json:"description,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
}

type UpdateProductInput struct {
	CategoryID   *uuid.UUID       `json:"category_id,omitempty"`
	SupplierID   *uuid.UUID       `json:"supplier_id,omitempty"`
	Name         *string          `json:"name,omitempty"`
	Type         *ProductType     `json:"type,omitempty" validate:"omitempty,oneof=ITEM QUANTITY"`
	SerialNumber *string          `json:"serial_number,omitempty"`
	Warranty     *string          `json:"warranty,omitempty"`
	Description  *string          `json:"description,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
}

// TransactionItemInput is one line of a transaction request.
type TransactionItemInput struct {
	ProductID     uuid.UUID        `json:"product_id" validate:"uuid_required"`
	Quantity      int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	UnitCostPrice *decimal.Decimal `json:"unit_cost_price,omitempty"` // defaults to the product cost snapshot
}

type CreateTransactionInput struct {
	CustomerID         *uuid.UUID             `json:"customer_id,omitempty"`
	Type               string                 `json:"type" validate:"required"`
	StartDate          *time.Time             `json:"start_date,omitempty"`
	ReturnDate         *time.Time             `json:"return_date,omitempty"`
	ExpectedReturnDate *time.Time             `json:"expected_return_date,omitempty"`
	Items              []TransactionItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateTransactionInput carries only fields to change; nil means keep.
// Type changes trigger compensating stock adjustments.
type UpdateTransactionInput struct {
	CustomerID         *uuid.UUID `json:"customer_id,omitempty"`
	Type               *string    `json:"type,omitempty"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	ReturnDate         *time.Time `json:"return_date,omitempty"`
	ExpectedReturnDate *time.Time `json:"expected_return_date,omitempty"`
}

// StockOutInput is the batch "stock out" request: heterogeneous line items
// for one customer, sold or rented in one call.
type StockOutInput struct {
	CustomerID         uuid.UUID              `json:"customer_id" validate:"uuid_required"`
	Type               string                 `json:"type" validate:"required"` // SOLD, RENT or RENTED
	TransactionDate    time.Time              `json:"transaction_date" validate:"required"`
	ExpectedReturnDate *time.Time             `json:"expected_return_date,omitempty"`
	Items              []TransactionItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateStockInput struct {
	Quantity *int `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

type CreateUserInput struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Name     string   `json:"name" validate:"required"`
	Role     UserRole `json:"role" validate:"required,oneof=ADMIN MANAGER STAFF"`
}

type UpdateUserInput struct {
	Email    *string   `json:"email,omitempty" validate:"omitempty,email"`
	Name     *string   `json:"name,omitempty"`
	Role     *UserRole `json:"role,omitempty" validate:"omitempty,oneof=ADMIN MANAGER STAFF"`
	IsActive *bool     `json:"is_active,omitempty"`
}
