package parcel

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	parcelModel "parcel-delivery/models/parcel"
)

var validate = validator.New()

// LineItemRequest is one product reference inside a parcel request.
// Price is the snapshot value to store; it is independent of the
// catalog price at read time.
type LineItemRequest struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// StoreParcelRequest represents the request payload for creating a parcel.
// Any status supplied by the caller is ignored; new parcels always start
// as CREATED.
type StoreParcelRequest struct {
	SenderClientID  uint                       `json:"sender_client_id" validate:"required"`
	RecipientID     uint                       `json:"recipient_id" validate:"required"`
	Weight          float64                    `json:"weight" validate:"required,gte=0.01,lte=999.99"`
	Priority        parcelModel.ParcelPriority `json:"priority" validate:"required"`
	DestinationCity string                     `json:"destination_city" validate:"required,max=100"`
	Description     string                     `json:"description" validate:"omitempty,max=255"`
	LineItems       []LineItemRequest          `json:"line_items" validate:"required,min=1,dive"`
}

func (r *StoreParcelRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if !r.Priority.IsValid() {
		return fmt.Errorf("priority must be one of NORMAL, HIGH, URGENT, EXPRESS")
	}
	return nil
}

// UpdateParcelRequest carries partial-update fields. Only fields present
// in the request body are applied; a nil pointer means "leave untouched",
// never "clear".
type UpdateParcelRequest struct {
	Description      *string                     `json:"description" validate:"omitempty,max=255"`
	Weight           *float64                    `json:"weight" validate:"omitempty,gte=0.01,lte=999.99"`
	Priority         *parcelModel.ParcelPriority `json:"priority"`
	Status           *parcelModel.ParcelStatus   `json:"status"`
	DestinationCity  *string                     `json:"destination_city" validate:"omitempty,max=100"`
	DeliveryPersonID *uint                       `json:"delivery_person_id"`
	ZoneID           *uint                       `json:"zone_id"`
}

func (r *UpdateParcelRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.DestinationCity != nil && *r.DestinationCity == "" {
		return fmt.Errorf("destination_city cannot be empty")
	}
	if r.Priority != nil && !r.Priority.IsValid() {
		return fmt.Errorf("priority must be one of NORMAL, HIGH, URGENT, EXPRESS")
	}
	if r.Status != nil && !r.Status.IsValid() {
		return fmt.Errorf("status must be one of CREATED, COLLECTED, IN_STOCK, IN_TRANSIT, DELIVERED")
	}
	return nil
}

// UpdateStatusRequest is the delivery-person-scoped status change payload.
type UpdateStatusRequest struct {
	Status parcelModel.ParcelStatus `json:"status" validate:"required"`
}

func (r *UpdateStatusRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("status must be one of CREATED, COLLECTED, IN_STOCK, IN_TRANSIT, DELIVERED")
	}
	return nil
}

// SearchFilter is the AND-combined multi-filter used by the search
// endpoint. Zero values impose no constraint.
type SearchFilter struct {
	Status           parcelModel.ParcelStatus
	Priority         parcelModel.ParcelPriority
	ZoneID           uint
	DestinationCity  string
	DeliveryPersonID uint
	SenderClientID   uint
	RecipientID      uint
	UnassignedOnly   bool
}

// ParcelResponse is the outward view of a parcel with computed fields.
type ParcelResponse struct {
	ID               uint                       `json:"id"`
	TrackingCode     string                     `json:"tracking_code"`
	Description      string                     `json:"description"`
	Weight           float64                    `json:"weight"`
	Priority         parcelModel.ParcelPriority `json:"priority"`
	Status           parcelModel.ParcelStatus   `json:"status"`
	DestinationCity  string                     `json:"destination_city"`
	SenderClientID   uint                       `json:"sender_client_id"`
	SenderClientName string                     `json:"sender_client_name"`
	RecipientID      uint                       `json:"recipient_id"`
	RecipientName    string                     `json:"recipient_name"`
	DeliveryPersonID *uint                      `json:"delivery_person_id"`
	ZoneID           *uint                      `json:"zone_id"`
	ProductCount     int                        `json:"product_count"`
	TotalValue       float64                    `json:"total_value"`
	IsHighPriority   bool                       `json:"is_high_priority"`
	IsDelivered      bool                       `json:"is_delivered"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

// ToResponse shapes a loaded parcel into its response view.
func ToResponse(p *parcelModel.Parcel) ParcelResponse {
	return ParcelResponse{
		ID:               p.ID,
		TrackingCode:     p.TrackingCode,
		Description:      p.Description,
		Weight:           p.Weight,
		Priority:         p.Priority,
		Status:           p.Status,
		DestinationCity:  p.DestinationCity,
		SenderClientID:   p.SenderClientID,
		SenderClientName: p.SenderClient.Name,
		RecipientID:      p.RecipientID,
		RecipientName:    p.Recipient.Name,
		DeliveryPersonID: p.DeliveryPersonID,
		ZoneID:           p.ZoneID,
		ProductCount:     len(p.Products),
		TotalValue:       p.TotalValue(),
		IsHighPriority:   p.Priority.IsHighPriority(),
		IsDelivered:      p.IsDelivered(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ToResponseList shapes a slice of parcels.
func ToResponseList(parcels []parcelModel.Parcel) []ParcelResponse {
	responses := make([]ParcelResponse, 0, len(parcels))
	for i := range parcels {
		responses = append(responses, ToResponse(&parcels[i]))
	}
	return responses
}
