package delivery_history

import (
	"fmt"
	"math"
	"time"

	"parcel-delivery/logger"
	parcelModel "parcel-delivery/models/parcel"
	"parcel-delivery/services"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// Service exposes the read views over the delivery history ledger and
// the administrative delete escape hatch. All write traffic goes
// through Record instead.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// History returns the canonical chronological view, oldest first.
func (s *Service) History(parcelID uint) ([]parcelModel.DeliveryHistory, error) {
	if err := s.parcelExists(parcelID); err != nil {
		return nil, err
	}
	var entries []parcelModel.DeliveryHistory
	err := s.DB.Where("parcel_id = ?", parcelID).
		Order("changed_at asc, id asc").
		Find(&entries).Error
	return entries, err
}

// HistoryDesc returns the reverse-ordered convenience view, newest first.
func (s *Service) HistoryDesc(parcelID uint) ([]parcelModel.DeliveryHistory, error) {
	if err := s.parcelExists(parcelID); err != nil {
		return nil, err
	}
	var entries []parcelModel.DeliveryHistory
	err := s.DB.Where("parcel_id = ?", parcelID).
		Order("changed_at desc, id desc").
		Find(&entries).Error
	return entries, err
}

// Latest returns the most recent entry for a parcel. An empty ledger for
// an existing parcel breaks the creation invariant and surfaces as
// NotFound after a Warning log.
func (s *Service) Latest(parcelID uint) (*parcelModel.DeliveryHistory, error) {
	if err := s.parcelExists(parcelID); err != nil {
		return nil, err
	}
	var entry parcelModel.DeliveryHistory
	err := s.DB.Where("parcel_id = ?", parcelID).
		Order("changed_at desc, id desc").
		First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		logger.Warning(fmt.Sprintf("Parcel %d has no history entries; the creation invariant is broken", parcelID))
		return nil, services.NotFound("delivery history", parcelID)
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// WithComments returns every entry across all parcels that carries a
// non-empty comment, newest first.
func (s *Service) WithComments() ([]parcelModel.DeliveryHistory, error) {
	var entries []parcelModel.DeliveryHistory
	err := s.DB.Where("comment <> ''").
		Order("changed_at desc").
		Find(&entries).Error
	return entries, err
}

// DeliveredToday counts the DELIVERED entries recorded since midnight.
func (s *Service) DeliveredToday() (int64, error) {
	var count int64
	err := s.DB.Model(&parcelModel.DeliveryHistory{}).
		Where("status = ? AND changed_at BETWEEN ? AND ?",
			parcelModel.StatusDelivered, now.BeginningOfDay(), now.EndOfDay()).
		Count(&count).Error
	return count, err
}

// AverageDeliveryHours computes the mean time from the CREATED entry to
// the first DELIVERED entry across all parcels that have both, rounded
// to two decimals. Returns 0 when no parcel completed the cycle.
func (s *Service) AverageDeliveryHours() (float64, error) {
	var entries []parcelModel.DeliveryHistory
	err := s.DB.Where("status IN ?", []parcelModel.ParcelStatus{parcelModel.StatusCreated, parcelModel.StatusDelivered}).
		Order("changed_at asc, id asc").
		Find(&entries).Error
	if err != nil {
		return 0, err
	}

	createdAt := make(map[uint]time.Time)
	var total float64
	var completed int
	for _, entry := range entries {
		switch entry.Status {
		case parcelModel.StatusCreated:
			if _, seen := createdAt[entry.ParcelID]; !seen {
				createdAt[entry.ParcelID] = entry.ChangedAt
			}
		case parcelModel.StatusDelivered:
			start, seen := createdAt[entry.ParcelID]
			if !seen {
				continue
			}
			total += entry.ChangedAt.Sub(start).Hours()
			completed++
			delete(createdAt, entry.ParcelID)
		}
	}
	if completed == 0 {
		return 0, nil
	}
	return math.Round(total/float64(completed)*100) / 100, nil
}

// Delete removes a single ledger entry. This is an administrative escape
// hatch, not a lifecycle operation: it can leave a parcel without its
// CREATED entry, so it is separately gated and logged at Warning level.
func (s *Service) Delete(entryID uint) error {
	var entry parcelModel.DeliveryHistory
	if err := s.DB.First(&entry, entryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return services.NotFound("delivery history", entryID)
		}
		return err
	}

	logger.Warning(fmt.Sprintf(
		"Deleting delivery history entry %d (parcel %d, status %s); the parcel's audit trail is no longer complete",
		entry.ID, entry.ParcelID, entry.Status))

	return s.DB.Delete(&entry).Error
}

func (s *Service) parcelExists(parcelID uint) error {
	var count int64
	if err := s.DB.Model(&parcelModel.Parcel{}).Where("id = ?", parcelID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return services.NotFound("parcel", parcelID)
	}
	return nil
}
