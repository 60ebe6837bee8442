package delivery_history

import (
	parcelModel "parcel-delivery/models/parcel"

	"gorm.io/gorm"
)

// Record appends one audit entry for a parcel inside the caller's
// transaction. Every applied status transition goes through here so a
// concurrent update can never coalesce two transitions into one entry.
func Record(tx *gorm.DB, parcelID uint, status parcelModel.ParcelStatus, comment string) error {
	entry := parcelModel.DeliveryHistory{
		ParcelID: parcelID,
		Status:   status,
		Comment:  comment,
	}
	return tx.Create(&entry).Error
}
