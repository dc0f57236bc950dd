package model

import "github.com/google/uuid"

// Stock is the per-product quantity on hand. Quantity never goes negative:
// every outbound mutation runs through the ledger's conditional decrement.
type Stock struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
}
