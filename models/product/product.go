package product

import (
	"time"
)

// Product is a catalog entry that parcels reference through line items.
// The price here is the current catalog price; line items snapshot their own.
type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
