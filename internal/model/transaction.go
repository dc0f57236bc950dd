package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the commercial state of a transaction, not a lifecycle
// stage: the field is mutable and re-typing triggers compensating stock moves.
type TransactionType string

const (
	TxSold     TransactionType = "SOLD"
	TxReturned TransactionType = "RETURNED"
	TxRent     TransactionType = "RENT"
)

// NormalizeTransactionType maps a request value onto a known type.
// "RENTED" is accepted as an alias for RENT (legacy client payloads).
func NormalizeTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(s) {
	case TxSold, TxReturned, TxRent:
		return TransactionType(s), true
	}
	if s == "RENTED" {
		return TxRent, true
	}
	return "", false
}

// IsOutbound reports whether the type removes units from available stock.
func (t TransactionType) IsOutbound() bool {
	return t == TxSold || t == TxRent
}

type Transaction struct {
	BaseModel
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Type TransactionType `gorm:"type:varchar(10);not null;index" json:"type" validate:"required,oneof=SOLD RETURNED RENT"`

	// Derived monetary totals, snapshotted at creation. Never recomputed on
	// update, so re-pricing a product does not rewrite history.
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	TotalCost   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_cost"`
	ProfitLoss  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"profit_loss"`

	StartDate          time.Time  `gorm:"not null;index" json:"start_date"`
	ReturnDate         *time.Time `json:"return_date,omitempty"`
	ExpectedReturnDate *time.Time `json:"expected_return_date,omitempty"`

	// Line items in insertion order.
	Items []TransactionItem `gorm:"foreignKey:TransactionID" json:"items"`
}

type TransactionItem struct {
	BaseModel
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product       *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	// LineNo preserves the order items were submitted in.
	LineNo   int `gorm:"not null" json:"line_no"`
	Quantity int `gorm:"not null" json:"quantity" validate:"required,gt=0"`

	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	// Snapshot of the product cost at transaction time. Immutable once written.
	UnitCostPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost_price"`
}

// LineAmount is unitPrice * quantity for this line.
func (i *TransactionItem) LineAmount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LineCost is unitCostPrice * quantity for this line.
func (i *TransactionItem) LineCost() decimal.Decimal {
	return i.UnitCostPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ComputeTotals sums the line items into the transaction's monetary totals.
// Called once at creation time.
func (t *Transaction) ComputeTotals() {
	total := decimal.Zero
	cost := decimal.Zero
	for i := range t.Items {
		total = total.Add(t.Items[i].LineAmount())
		cost = cost.Add(t.Items[i].LineCost())
	}
	t.TotalAmount = total
	t.TotalCost = cost
	t.ProfitLoss = total.Sub(cost)
}
