package delivery_person

import (
	"time"

	zoneModel "parcel-delivery/models/zone"
)

// DeliveryPerson represents a courier who can be assigned parcels.
// UserID links the record to the identity provider's user uuid so a
// LIVREUR caller can be resolved to their registry row.
type DeliveryPerson struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"size:120;not null" json:"name"`
	Phone     string `gorm:"size:20;uniqueIndex" json:"phone"`
	Vehicle   string `gorm:"size:50" json:"vehicle"`
	Available bool   `gorm:"default:true" json:"available"`
	UserID    string `gorm:"size:64;index" json:"user_id"`

	ZoneID *uint           `gorm:"index" json:"zone_id"`
	Zone   *zoneModel.Zone `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
