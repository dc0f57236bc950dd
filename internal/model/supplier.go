package model

type Supplier struct {
	BaseModel
	Name  string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone string `gorm:"type:varchar(30)" json:"phone"`
	Email string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`

	Products []Product `gorm:"foreignKey:SupplierID" json:"products,omitempty"`
}
