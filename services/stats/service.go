package stats

import (
	"math"

	deliveryPersonModel "parcel-delivery/models/delivery_person"
	parcelModel "parcel-delivery/models/parcel"
	productModel "parcel-delivery/models/product"
	recipientModel "parcel-delivery/models/recipient"
	senderClientModel "parcel-delivery/models/sender_client"
	zoneModel "parcel-delivery/models/zone"
	"parcel-delivery/services"
	statsTypes "parcel-delivery/types/stats"

	"gorm.io/gorm"
)

// Service computes read-only aggregates over the parcel store. It holds
// no state and never writes.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// DeliveryPersonStats aggregates everything assigned to one courier.
// All derived values are zero-safe: a courier with no parcels gets
// zeroes, never a division error.
func (s *Service) DeliveryPersonStats(deliveryPersonID uint) (*statsTypes.DeliveryPersonStats, error) {
	var dp deliveryPersonModel.DeliveryPerson
	if err := s.DB.First(&dp, deliveryPersonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, services.NotFound("delivery person", deliveryPersonID)
		}
		return nil, err
	}

	var parcels []parcelModel.Parcel
	if err := s.DB.Where("delivery_person_id = ?", dp.ID).Find(&parcels).Error; err != nil {
		return nil, err
	}

	result := &statsTypes.DeliveryPersonStats{
		DeliveryPersonID: dp.ID,
		ByStatus:         emptyStatusCounts(),
	}
	fillParcelAggregates(parcels, &result.TotalParcels, &result.TotalWeight,
		&result.AverageWeight, &result.DeliveryRate, result.ByStatus, nil)
	return result, nil
}

// ZoneStats aggregates everything routed through one zone, including
// the per-priority breakdown.
func (s *Service) ZoneStats(zoneID uint) (*statsTypes.ZoneStats, error) {
	var z zoneModel.Zone
	if err := s.DB.First(&z, zoneID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, services.NotFound("zone", zoneID)
		}
		return nil, err
	}

	var parcels []parcelModel.Parcel
	if err := s.DB.Where("zone_id = ?", z.ID).Find(&parcels).Error; err != nil {
		return nil, err
	}

	result := &statsTypes.ZoneStats{
		ZoneID:     z.ID,
		ZoneName:   z.Name,
		ByStatus:   emptyStatusCounts(),
		ByPriority: emptyPriorityCounts(),
	}
	fillParcelAggregates(parcels, &result.TotalParcels, &result.TotalWeight,
		&result.AverageWeight, &result.DeliveryRate, result.ByStatus, result.ByPriority)
	return result, nil
}

// GlobalStats is the dashboard aggregate: every registry count plus the
// operational hot spots (unassigned and high-priority-pending parcels).
func (s *Service) GlobalStats() (*statsTypes.GlobalStats, error) {
	result := &statsTypes.GlobalStats{
		ByStatus: emptyStatusCounts(),
	}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&parcelModel.Parcel{}, &result.TotalParcels},
		{&senderClientModel.SenderClient{}, &result.TotalSenderClients},
		{&recipientModel.Recipient{}, &result.TotalRecipients},
		{&deliveryPersonModel.DeliveryPerson{}, &result.TotalDeliveryPeople},
		{&zoneModel.Zone{}, &result.TotalZones},
		{&productModel.Product{}, &result.TotalProducts},
	}
	for _, c := range counts {
		if err := s.DB.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	for _, status := range parcelModel.AllStatuses() {
		var count int64
		if err := s.DB.Model(&parcelModel.Parcel{}).Where("status = ?", status).Count(&count).Error; err != nil {
			return nil, err
		}
		result.ByStatus[status.String()] = count
	}

	if err := s.DB.Model(&parcelModel.Parcel{}).
		Where("delivery_person_id IS NULL").
		Count(&result.UnassignedParcels).Error; err != nil {
		return nil, err
	}

	err := s.DB.Model(&parcelModel.Parcel{}).
		Where("priority IN ? AND status <> ?",
			[]parcelModel.ParcelPriority{parcelModel.PriorityUrgent, parcelModel.PriorityExpress},
			parcelModel.StatusDelivered).
		Count(&result.HighPriorityPending).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func fillParcelAggregates(parcels []parcelModel.Parcel, total *int64, totalWeight, avgWeight, rate *float64, byStatus, byPriority map[string]int64) {
	*total = int64(len(parcels))

	var delivered int64
	for _, p := range parcels {
		*totalWeight += p.Weight
		byStatus[p.Status.String()]++
		if byPriority != nil {
			byPriority[p.Priority.String()]++
		}
		if p.Status == parcelModel.StatusDelivered {
			delivered++
		}
	}

	if *total > 0 {
		*avgWeight = round2(*totalWeight / float64(*total))
		*rate = round2(float64(delivered) / float64(*total) * 100)
	}
	*totalWeight = round2(*totalWeight)
}

func emptyStatusCounts() map[string]int64 {
	counts := make(map[string]int64, len(parcelModel.AllStatuses()))
	for _, status := range parcelModel.AllStatuses() {
		counts[status.String()] = 0
	}
	return counts
}

func emptyPriorityCounts() map[string]int64 {
	counts := make(map[string]int64, len(parcelModel.AllPriorities()))
	for _, priority := range parcelModel.AllPriorities() {
		counts[priority.String()] = 0
	}
	return counts
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
