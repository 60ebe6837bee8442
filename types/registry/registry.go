package registry

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// StoreZoneRequest creates a delivery zone.
type StoreZoneRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

func (r *StoreZoneRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateZoneRequest carries partial-update fields for a zone.
type UpdateZoneRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

func (r *UpdateZoneRequest) Validate() error {
	return validate.Struct(r)
}

// StoreProductRequest creates a catalog product.
type StoreProductRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"omitempty,max=255"`
	Price       float64 `json:"price" validate:"gte=0"`
}

func (r *StoreProductRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateProductRequest carries partial-update fields for a product.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=255"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

func (r *UpdateProductRequest) Validate() error {
	return validate.Struct(r)
}

// StoreSenderClientRequest creates a sender client record.
type StoreSenderClientRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Address string `json:"address" validate:"omitempty,max=255"`
	UserID  string `json:"user_id" validate:"omitempty,max=64"`
}

func (r *StoreSenderClientRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateSenderClientRequest carries partial-update fields for a sender client.
type UpdateSenderClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	UserID  *string `json:"user_id" validate:"omitempty,max=64"`
}

func (r *UpdateSenderClientRequest) Validate() error {
	return validate.Struct(r)
}

// StoreRecipientRequest creates a recipient record.
type StoreRecipientRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Address string `json:"address" validate:"omitempty,max=255"`
	City    string `json:"city" validate:"omitempty,max=100"`
}

func (r *StoreRecipientRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateRecipientRequest carries partial-update fields for a recipient.
type UpdateRecipientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	City    *string `json:"city" validate:"omitempty,max=100"`
}

func (r *UpdateRecipientRequest) Validate() error {
	return validate.Struct(r)
}

// StoreDeliveryPersonRequest creates a delivery person record.
type StoreDeliveryPersonRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,max=20"`
	Vehicle   string `json:"vehicle" validate:"omitempty,max=50"`
	Available *bool  `json:"available"`
	UserID    string `json:"user_id" validate:"omitempty,max=64"`
	ZoneID    *uint  `json:"zone_id"`
}

func (r *StoreDeliveryPersonRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateDeliveryPersonRequest carries partial-update fields for a delivery person.
type UpdateDeliveryPersonRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Vehicle   *string `json:"vehicle" validate:"omitempty,max=50"`
	Available *bool   `json:"available"`
	UserID    *string `json:"user_id" validate:"omitempty,max=64"`
	ZoneID    *uint   `json:"zone_id"`
}

func (r *UpdateDeliveryPersonRequest) Validate() error {
	return validate.Struct(r)
}
