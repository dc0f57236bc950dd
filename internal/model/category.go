package model

// Category groups products (many products to one category).
type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
