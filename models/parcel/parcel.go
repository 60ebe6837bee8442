package parcel

import (
	"time"

	deliveryPersonModel "parcel-delivery/models/delivery_person"
	recipientModel "parcel-delivery/models/recipient"
	senderClientModel "parcel-delivery/models/sender_client"
	zoneModel "parcel-delivery/models/zone"
)

// Parcel is the root entity of the delivery lifecycle. Sender and
// recipient are fixed at creation; delivery person and zone are
// assignable and reassignable.
type Parcel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingCode string `gorm:"size:40;uniqueIndex" json:"tracking_code"`

	Description     string         `gorm:"size:255" json:"description"`
	Weight          float64        `gorm:"type:decimal(5,2);not null" json:"weight"`
	Priority        ParcelPriority `gorm:"size:20;not null" json:"priority"`
	Status          ParcelStatus   `gorm:"size:20;not null;index" json:"status"`
	DestinationCity string         `gorm:"size:100;not null" json:"destination_city"`

	SenderClientID uint                           `gorm:"not null;index" json:"sender_client_id"`
	SenderClient   senderClientModel.SenderClient `gorm:"foreignKey:SenderClientID" json:"sender_client"`
	RecipientID    uint                           `gorm:"not null;index" json:"recipient_id"`
	Recipient      recipientModel.Recipient       `gorm:"foreignKey:RecipientID" json:"recipient"`

	DeliveryPersonID *uint                               `gorm:"index" json:"delivery_person_id"`
	DeliveryPerson   *deliveryPersonModel.DeliveryPerson `gorm:"foreignKey:DeliveryPersonID" json:"delivery_person,omitempty"`
	ZoneID           *uint                               `gorm:"index" json:"zone_id"`
	Zone             *zoneModel.Zone                     `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`

	Products []ParcelProduct   `gorm:"foreignKey:ParcelID" json:"products,omitempty"`
	History  []DeliveryHistory `gorm:"foreignKey:ParcelID" json:"history,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TotalValue sums the snapshot value of every line item.
func (p *Parcel) TotalValue() float64 {
	var total float64
	for _, item := range p.Products {
		total += item.TotalPrice()
	}
	return total
}

// IsDelivered reports whether the parcel reached its terminal status.
func (p *Parcel) IsDelivered() bool {
	return p.Status == StatusDelivered
}
