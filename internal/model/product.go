package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductType decides how stock for a product is counted.
// ITEM products are unit goods (stock quantity is 0 or 1, line quantity
// is always 1). QUANTITY products are bulk goods.
type ProductType string

const (
	ProductItem     ProductType = "ITEM"
	ProductQuantity ProductType = "QUANTITY"
)

type Product struct {
	BaseModel
	CategoryID uuid.UUID  `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	Name         string           `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Type         ProductType      `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=ITEM QUANTITY"`
	SerialNumber string           `gorm:"type:varchar(100)" json:"serial_number"`
	Warranty     string           `gorm:"type:varchar(100)" json:"warranty"`
	Description  string           `gorm:"type:text" json:"description"`
	CostPrice    *decimal.Decimal `gorm:"type:decimal(12,2)" json:"cost_price,omitempty"`
	SellingPrice *decimal.Decimal `gorm:"type:decimal(12,2)" json:"selling_price,omitempty"`

	// Exactly one stock record, created together with the product.
	Stock *Stock `gorm:"foreignKey:ProductID" json:"stock,omitempty"`
}

// CostPriceOrZero returns the product cost snapshot used on transaction items.
func (p *Product) CostPriceOrZero() decimal.Decimal {
	if p.CostPrice == nil {
		return decimal.Zero
	}
	return *p.CostPrice
}
