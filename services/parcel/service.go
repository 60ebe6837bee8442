package parcel

import (
	"fmt"

	"parcel-delivery/constants"
	deliveryPersonModel "parcel-delivery/models/delivery_person"
	parcelModel "parcel-delivery/models/parcel"
	productModel "parcel-delivery/models/product"
	recipientModel "parcel-delivery/models/recipient"
	senderClientModel "parcel-delivery/models/sender_client"
	zoneModel "parcel-delivery/models/zone"
	"parcel-delivery/services"
	"parcel-delivery/services/delivery_history"
	parcelTypes "parcel-delivery/types/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the parcel lifecycle engine. Every write runs as one
// transaction: parcel state, line items and the history entry commit
// together or not at all.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Create persists a new parcel with its line items and the initial
// CREATED history entry. The status is always forced to CREATED; any
// caller-supplied status is ignored at the DTO layer.
func (s *Service) Create(req *parcelTypes.StoreParcelRequest) (*parcelModel.Parcel, error) {
	var sender senderClientModel.SenderClient
	if err := s.DB.First(&sender, req.SenderClientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, services.NotFound("sender client", req.SenderClientID)
		}
		return nil, err
	}

	var receiver recipientModel.Recipient
	if err := s.DB.First(&receiver, req.RecipientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, services.NotFound("recipient", req.RecipientID)
		}
		return nil, err
	}

	// Resolve every line-item product before writing anything so one
	// bad reference aborts the whole creation.
	for _, item := range req.LineItems {
		var count int64
		if err := s.DB.Model(&productModel.Product{}).Where("id = ?", item.ProductID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, services.NotFound("product", item.ProductID)
		}
	}

	newParcel := parcelModel.Parcel{
		TrackingCode:    uuid.NewString(),
		Description:     req.Description,
		Weight:          req.Weight,
		Priority:        req.Priority,
		Status:          parcelModel.StatusCreated,
		DestinationCity: req.DestinationCity,
		SenderClientID:  sender.ID,
		RecipientID:     receiver.ID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newParcel).Error; err != nil {
			return err
		}

		for _, item := range req.LineItems {
			lineItem := parcelModel.ParcelProduct{
				ParcelID:  newParcel.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			}
			if err := tx.Create(&lineItem).Error; err != nil {
				return err
			}
		}

		return delivery_history.Record(tx, newParcel.ID, parcelModel.StatusCreated, "Parcel created")
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(newParcel.ID)
}

// GetByID loads a parcel with all its relations.
func (s *Service) GetByID(id uint) (*parcelModel.Parcel, error) {
	var p parcelModel.Parcel
	if err := s.withRelations(s.DB).First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, services.NotFound("parcel", id)
		}
		return nil, err
	}
	return &p, nil
}

// List returns one page of parcels, default ordered by creation time
// descending.
func (s *Service) List(page, limit int, sort string) ([]parcelModel.Parcel, int64, error) {
	var total int64
	if err := s.DB.Model(&parcelModel.Parcel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var parcels []parcelModel.Parcel
	err := s.withRelations(s.DB).
		Order(parseSort(sort)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&parcels).Error
	return parcels, total, err
}

// Update applies a partial update. Only fields present in the request
// are written; a status change appends its own history entry, a status
// equal to the current one is a no-op and leaves the ledger untouched.
func (s *Service) Update(id uint, req *parcelTypes.UpdateParcelRequest) (*parcelModel.Parcel, error) {
	var p parcelModel.Parcel
	if err := s.DB.First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, services.NotFound("parcel", id)
		}
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}

		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Weight != nil {
			updates["weight"] = *req.Weight
		}
		if req.Priority != nil {
			updates["priority"] = *req.Priority
		}
		if req.DestinationCity != nil {
			updates["destination_city"] = *req.DestinationCity
		}

		if req.DeliveryPersonID != nil {
			var dp deliveryPersonModel.DeliveryPerson
			if err := tx.First(&dp, *req.DeliveryPersonID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return services.NotFound("delivery person", *req.DeliveryPersonID)
				}
				return err
			}
			updates["delivery_person_id"] = dp.ID
		}

		if req.ZoneID != nil {
			var z zoneModel.Zone
			if err := tx.First(&z, *req.ZoneID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return services.NotFound("zone", *req.ZoneID)
				}
				return err
			}
			updates["zone_id"] = z.ID
		}

		oldStatus := p.Status
		statusChanged := false
		if req.Status != nil && *req.Status != p.Status {
			if !parcelModel.CanTransition(p.Status, *req.Status) {
				return services.Invalid(fmt.Sprintf("status transition %s -> %s is not allowed", p.Status, *req.Status))
			}
			updates["status"] = *req.Status
			statusChanged = true
		}

		if len(updates) > 0 {
			if err := tx.Model(&p).Updates(updates).Error; err != nil {
				return err
			}
		}

		if statusChanged {
			comment := fmt.Sprintf("Status updated from %s to %s", oldStatus, *req.Status)
			return delivery_history.Record(tx, p.ID, *req.Status, comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(id)
}

// Delete hard-deletes a parcel and cascades to its line items and
// history entries.
func (s *Service) Delete(id uint) error {
	var p parcelModel.Parcel
	if err := s.DB.First(&p, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return services.NotFound("parcel", id)
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parcel_id = ?", id).Delete(&parcelModel.ParcelProduct{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parcel_id = ?", id).Delete(&parcelModel.DeliveryHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&parcelModel.Parcel{}, id).Error
	})
}

// UpdateStatusAsDeliveryPerson is the courier-scoped status change. The
// caller must be bound to a DeliveryPerson record and that record must
// be the one assigned to the parcel; unassigned parcels are never
// updatable through this path.
func (s *Service) UpdateStatusAsDeliveryPerson(parcelID uint, newStatus parcelModel.ParcelStatus, callerUserID string) (*parcelModel.Parcel, error) {
	dp, err := s.deliveryPersonByUserID(callerUserID)
	if err != nil {
		return nil, err
	}

	var p parcelModel.Parcel
	if err := s.DB.First(&p, parcelID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, services.NotFound("parcel", parcelID)
		}
		return nil, err
	}

	caller := Caller{Role: constants.RoleDeliveryPerson, RegistryID: dp.ID}
	if !CanMutate(caller, &p) {
		return nil, services.Forbidden("You can only update status for parcels assigned to you")
	}

	if newStatus == p.Status {
		return s.GetByID(parcelID)
	}
	if !parcelModel.CanTransition(p.Status, newStatus) {
		return nil, services.Invalid(fmt.Sprintf("status transition %s -> %s is not allowed", p.Status, newStatus))
	}

	oldStatus := p.Status
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&p).Update("status", newStatus).Error; err != nil {
			return err
		}
		comment := fmt.Sprintf("Status updated from %s to %s by delivery person", oldStatus, newStatus)
		return delivery_history.Record(tx, p.ID, newStatus, comment)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(parcelID)
}

// ListForDeliveryPerson returns the parcels assigned to the caller's
// bound DeliveryPerson record. An unbound caller is a provisioning
// inconsistency and surfaces as NotFound, not as an empty list.
func (s *Service) ListForDeliveryPerson(callerUserID string) ([]parcelModel.Parcel, error) {
	dp, err := s.deliveryPersonByUserID(callerUserID)
	if err != nil {
		return nil, err
	}

	var parcels []parcelModel.Parcel
	err = s.withRelations(s.DB).
		Where("delivery_person_id = ?", dp.ID).
		Order("created_at desc").
		Find(&parcels).Error
	return parcels, err
}

// ListForClient returns the parcels sent by the caller's bound
// SenderClient record.
func (s *Service) ListForClient(callerUserID string) ([]parcelModel.Parcel, error) {
	client, err := s.senderClientByUserID(callerUserID)
	if err != nil {
		return nil, err
	}

	var parcels []parcelModel.Parcel
	err = s.withRelations(s.DB).
		Where("sender_client_id = ?", client.ID).
		Order("created_at desc").
		Find(&parcels).Error
	return parcels, err
}

// IsOwnedByClient is a capability check, not a data lookup: it returns
// false for any unresolvable reference, ambiguous binding or mismatch
// and never leaks existence through an error.
func (s *Service) IsOwnedByClient(parcelID uint, callerUserID string) bool {
	var clients []senderClientModel.SenderClient
	if err := s.DB.Where("user_id = ?", callerUserID).Find(&clients).Error; err != nil || len(clients) != 1 {
		return false
	}

	var p parcelModel.Parcel
	if err := s.DB.First(&p, parcelID).Error; err != nil {
		return false
	}

	return CanMutate(Caller{Role: constants.RoleClient, RegistryID: clients[0].ID}, &p)
}

// IsAssignedToDeliveryPerson mirrors IsOwnedByClient for couriers.
func (s *Service) IsAssignedToDeliveryPerson(parcelID uint, callerUserID string) bool {
	var people []deliveryPersonModel.DeliveryPerson
	if err := s.DB.Where("user_id = ?", callerUserID).Find(&people).Error; err != nil || len(people) != 1 {
		return false
	}

	var p parcelModel.Parcel
	if err := s.DB.First(&p, parcelID).Error; err != nil {
		return false
	}

	return CanMutate(Caller{Role: constants.RoleDeliveryPerson, RegistryID: people[0].ID}, &p)
}

func (s *Service) deliveryPersonByUserID(userID string) (*deliveryPersonModel.DeliveryPerson, error) {
	var dp deliveryPersonModel.DeliveryPerson
	if err := s.DB.Where("user_id = ?", userID).First(&dp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, services.NotFound("delivery person", userID)
		}
		return nil, err
	}
	return &dp, nil
}

func (s *Service) senderClientByUserID(userID string) (*senderClientModel.SenderClient, error) {
	var client senderClientModel.SenderClient
	if err := s.DB.Where("user_id = ?", userID).First(&client).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, services.NotFound("sender client", userID)
		}
		return nil, err
	}
	return &client, nil
}

func (s *Service) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("SenderClient").
		Preload("Recipient").
		Preload("DeliveryPerson").
		Preload("Zone").
		Preload("Products").
		Preload("Products.Product")
}
