package parcel

import (
	"time"

	productModel "parcel-delivery/models/product"
)

// ParcelProduct is one line item of a parcel. Price is a snapshot taken
// when the item is added and does not follow the catalog price.
type ParcelProduct struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ParcelID uint   `gorm:"not null;index" json:"parcel_id"`
	Parcel   Parcel `gorm:"foreignKey:ParcelID" json:"-"`

	ProductID uint                 `gorm:"not null;index" json:"product_id"`
	Product   productModel.Product `gorm:"foreignKey:ProductID" json:"product"`

	Quantity int     `gorm:"not null" json:"quantity"`
	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TotalPrice is always derived, never stored.
func (pp *ParcelProduct) TotalPrice() float64 {
	return pp.Price * float64(pp.Quantity)
}
