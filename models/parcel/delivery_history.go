package parcel

import (
	"time"
)

// DeliveryHistory is one append-only audit entry of a parcel's status
// trail. Entries are created on every status transition and never
// edited afterwards; the chronologically first entry of a parcel always
// carries StatusCreated.
type DeliveryHistory struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ParcelID uint   `gorm:"not null;index" json:"parcel_id"`
	Parcel   Parcel `gorm:"foreignKey:ParcelID" json:"-"`

	Status  ParcelStatus `gorm:"size:20;not null" json:"status"`
	Comment string       `gorm:"size:1000" json:"comment"`

	ChangedAt time.Time `gorm:"autoCreateTime;index" json:"changed_at"`
}

// TableName sets the table name for the DeliveryHistory model
func (DeliveryHistory) TableName() string {
	return "delivery_histories"
}
