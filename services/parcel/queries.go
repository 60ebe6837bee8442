package parcel

import (
	"strings"

	deliveryPersonModel "parcel-delivery/models/delivery_person"
	parcelModel "parcel-delivery/models/parcel"
	recipientModel "parcel-delivery/models/recipient"
	senderClientModel "parcel-delivery/models/sender_client"
	zoneModel "parcel-delivery/models/zone"
	"parcel-delivery/services"
	parcelTypes "parcel-delivery/types/parcel"
)

// sortColumns is the whitelist for user-supplied sort fields.
var sortColumns = map[string]bool{
	"created_at":       true,
	"weight":           true,
	"priority":         true,
	"status":           true,
	"destination_city": true,
}

// parseSort turns a "field,direction" query value into a safe ORDER BY
// clause, falling back to the default of newest first.
func parseSort(sort string) string {
	if sort == "" {
		return "created_at desc"
	}
	parts := strings.SplitN(sort, ",", 2)
	column := strings.TrimSpace(parts[0])
	if !sortColumns[column] {
		return "created_at desc"
	}
	direction := "asc"
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
		direction = "desc"
	}
	return column + " " + direction
}

// FindByStatus returns all parcels in the given status.
func (s *Service) FindByStatus(status parcelModel.ParcelStatus) ([]parcelModel.Parcel, error) {
	var parcels []parcelModel.Parcel
	err := s.withRelations(s.DB).
		Where("status = ?", status).
		Order("created_at desc").
		Find(&parcels).Error
	return parcels, err
}

// FindByPriority returns all parcels with the given priority.
func (s *Service) FindByPriority(priority parcelModel.ParcelPriority) ([]parcelModel.Parcel, error) {
	var parcels []parcelModel.Parcel
	err := s.withRelations(s.DB).
		Where("priority = ?", priority).
		Order("created_at desc").
		Find(&parcels).Error
	return parcels, err
}

// FindByStatusAndPriority returns parcels matching both axes.
func (s *Service) FindByStatusAndPriority(status parcelModel.ParcelStatus, priority parcelModel.ParcelPriority) ([]parcelModel.Parcel, error) {
	var parcels []parcelModel.Parcel
	err := s.withRelations(s.DB).
		Where("status = ? AND priority = ?", status, priority).
		Order("created_at desc").
		Find(&parcels).Error
	return parcels, err
}

// FindBySender returns a client's parcels. The scope id is validated
// first so an invalid sender is distinguishable from an empty result.
func (s *Service) FindBySender(senderClientID uint) ([]parcelModel.Parcel, error) {
	if err := s.scopeExists(&senderClientModel.SenderClient{}, "sender client", senderClientID); err != nil {
		return nil, err
	}
	var parcels []parcelModel.Parcel
	err := s.withRelations(s.DB).
		Where("sender_client_id = ?", senderClientID).
		Order("created_at desc").
		Find(&parcels).Error
	return parcels, err
}

// FindByRecipient returns the parcels addressed to one recipient.
func (s *Service) FindByRecipient(recipientID uint) ([]parcelModel.Parcel, error) {
	if err := s.scopeExists(&recipientModel.Recipient{}, "recipient", recipientID); err != nil {
		return nil, err
	}
	var parcels []parcelModel.Parcel
	err := s.withRelations(s.DB).
		Where("recipient_id = ?", recipientID).
		Order("created_at desc").
		Find(&parcels).Error
	return parcels, err
}

// FindByDeliveryPerson returns the parcels assigned to one courier.
func (s *Service) FindByDeliveryPerson(deliveryPersonID uint) ([]parcelModel.Parcel, error) {
	if err := s.scopeExists(&deliveryPersonModel.DeliveryPerson{}, "delivery person", deliveryPersonID); err != nil {
		return nil, err
	}
	var parcels []parcelModel.Parcel
	err := s.withRelations(s.DB).
		Where("delivery_person_id = ?", deliveryPersonID).
		Order("created_at desc").
		Find(&parcels).Error
	return parcels, err
}

// FindByZone returns the parcels routed through one zone.
func (s *Service) FindByZone(zoneID uint) ([]parcelModel.Parcel, error) {
	if err := s.scopeExists(&zoneModel.Zone{}, "zone", zoneID); err != nil {
		return nil, err
	}
	var parcels []parcelModel.Parcel
	err := s.withRelations(s.DB).
		Where("zone_id = ?", zoneID).
		Order("created_at desc").
		Find(&parcels).Error
	return parcels, err
}

// FindUnassigned returns parcels with no delivery person attached.
func (s *Service) FindUnassigned() ([]parcelModel.Parcel, error) {
	var parcels []parcelModel.Parcel
	err := s.withRelations(s.DB).
		Where("delivery_person_id IS NULL").
		Order("created_at desc").
		Find(&parcels).Error
	return parcels, err
}

// FindByDestinationCity does a case-insensitive substring match on the
// destination city.
func (s *Service) FindByDestinationCity(city string) ([]parcelModel.Parcel, error) {
	var parcels []parcelModel.Parcel
	err := s.withRelations(s.DB).
		Where("LOWER(destination_city) LIKE ?", "%"+strings.ToLower(city)+"%").
		Order("created_at desc").
		Find(&parcels).Error
	return parcels, err
}

// SearchDescription does a case-insensitive full-text-style match on
// the description.
func (s *Service) SearchDescription(query string) ([]parcelModel.Parcel, error) {
	var parcels []parcelModel.Parcel
	err := s.withRelations(s.DB).
		Where("LOWER(description) LIKE ?", "%"+strings.ToLower(query)+"%").
		Order("created_at desc").
		Find(&parcels).Error
	return parcels, err
}

// FindHighPriorityUndelivered returns URGENT/EXPRESS parcels still in
// flight. HIGH is a stored intermediate level and deliberately excluded.
func (s *Service) FindHighPriorityUndelivered() ([]parcelModel.Parcel, error) {
	var parcels []parcelModel.Parcel
	err := s.withRelations(s.DB).
		Where("priority IN ? AND status <> ?",
			[]parcelModel.ParcelPriority{parcelModel.PriorityUrgent, parcelModel.PriorityExpress},
			parcelModel.StatusDelivered).
		Order("created_at desc").
		Find(&parcels).Error
	return parcels, err
}

// Search applies the AND-combined multi-filter with pagination. Omitted
// filters impose no constraint; scope ids are validated up front so an
// invalid scope fails with NotFound instead of returning an empty page.
func (s *Service) Search(filter parcelTypes.SearchFilter, page, limit int, sort string) ([]parcelModel.Parcel, int64, error) {
	if filter.ZoneID != 0 {
		if err := s.scopeExists(&zoneModel.Zone{}, "zone", filter.ZoneID); err != nil {
			return nil, 0, err
		}
	}
	if filter.DeliveryPersonID != 0 {
		if err := s.scopeExists(&deliveryPersonModel.DeliveryPerson{}, "delivery person", filter.DeliveryPersonID); err != nil {
			return nil, 0, err
		}
	}
	if filter.SenderClientID != 0 {
		if err := s.scopeExists(&senderClientModel.SenderClient{}, "sender client", filter.SenderClientID); err != nil {
			return nil, 0, err
		}
	}
	if filter.RecipientID != 0 {
		if err := s.scopeExists(&recipientModel.Recipient{}, "recipient", filter.RecipientID); err != nil {
			return nil, 0, err
		}
	}

	query := s.DB.Model(&parcelModel.Parcel{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.ZoneID != 0 {
		query = query.Where("zone_id = ?", filter.ZoneID)
	}
	if filter.DestinationCity != "" {
		query = query.Where("LOWER(destination_city) LIKE ?", "%"+strings.ToLower(filter.DestinationCity)+"%")
	}
	if filter.DeliveryPersonID != 0 {
		query = query.Where("delivery_person_id = ?", filter.DeliveryPersonID)
	}
	if filter.SenderClientID != 0 {
		query = query.Where("sender_client_id = ?", filter.SenderClientID)
	}
	if filter.RecipientID != 0 {
		query = query.Where("recipient_id = ?", filter.RecipientID)
	}
	if filter.UnassignedOnly {
		query = query.Where("delivery_person_id IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var parcels []parcelModel.Parcel
	err := s.withRelations(query).
		Order(parseSort(sort)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&parcels).Error
	return parcels, total, err
}

type groupRow struct {
	Name  *string
	Count int64
}

// GroupByStatus counts the full parcel set per status.
func (s *Service) GroupByStatus() (map[string]int64, error) {
	var rows []groupRow
	err := s.DB.Model(&parcelModel.Parcel{}).
		Select("status as name, count(*) as count").
		Group("status").
		Scan(&rows).Error
	return bucketize(rows, "Unknown"), err
}

// GroupByPriority counts the full parcel set per priority.
func (s *Service) GroupByPriority() (map[string]int64, error) {
	var rows []groupRow
	err := s.DB.Model(&parcelModel.Parcel{}).
		Select("priority as name, count(*) as count").
		Group("priority").
		Scan(&rows).Error
	return bucketize(rows, "Unknown"), err
}

// GroupByZone counts the full parcel set per zone name; parcels without
// a zone land in the "Unassigned" bucket.
func (s *Service) GroupByZone() (map[string]int64, error) {
	var rows []groupRow
	err := s.DB.Model(&parcelModel.Parcel{}).
		Select("zones.name as name, count(*) as count").
		Joins("LEFT JOIN zones ON zones.id = parcels.zone_id").
		Group("zones.name").
		Scan(&rows).Error
	return bucketize(rows, "Unassigned"), err
}

// GroupByCity counts the full parcel set per destination city; parcels
// without one land in the "Unknown" bucket.
func (s *Service) GroupByCity() (map[string]int64, error) {
	var rows []groupRow
	err := s.DB.Model(&parcelModel.Parcel{}).
		Select("destination_city as name, count(*) as count").
		Group("destination_city").
		Scan(&rows).Error
	return bucketize(rows, "Unknown"), err
}

func bucketize(rows []groupRow, nullBucket string) map[string]int64 {
	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		name := nullBucket
		if row.Name != nil && *row.Name != "" {
			name = *row.Name
		}
		result[name] += row.Count
	}
	return result
}

func (s *Service) scopeExists(model interface{}, entity string, id uint) error {
	var count int64
	if err := s.DB.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return services.NotFound(entity, id)
	}
	return nil
}
