package stats

// DeliveryPersonStats aggregates the parcels assigned to one courier.
type DeliveryPersonStats struct {
	DeliveryPersonID uint             `json:"delivery_person_id"`
	TotalParcels     int64            `json:"total_parcels"`
	TotalWeight      float64          `json:"total_weight"`
	AverageWeight    float64          `json:"average_weight"`
	ByStatus         map[string]int64 `json:"by_status"`
	DeliveryRate     float64          `json:"delivery_rate"`
}

// ZoneStats aggregates the parcels routed through one zone.
type ZoneStats struct {
	ZoneID        uint             `json:"zone_id"`
	ZoneName      string           `json:"zone_name"`
	TotalParcels  int64            `json:"total_parcels"`
	TotalWeight   float64          `json:"total_weight"`
	AverageWeight float64          `json:"average_weight"`
	ByStatus      map[string]int64 `json:"by_status"`
	ByPriority    map[string]int64 `json:"by_priority"`
	DeliveryRate  float64          `json:"delivery_rate"`
}

// GlobalStats is the dashboard view over the whole store.
type GlobalStats struct {
	TotalParcels        int64            `json:"total_parcels"`
	TotalSenderClients  int64            `json:"total_sender_clients"`
	TotalRecipients     int64            `json:"total_recipients"`
	TotalDeliveryPeople int64            `json:"total_delivery_people"`
	TotalZones          int64            `json:"total_zones"`
	TotalProducts       int64            `json:"total_products"`
	ByStatus            map[string]int64 `json:"by_status"`
	UnassignedParcels   int64            `json:"unassigned_parcels"`
	HighPriorityPending int64            `json:"high_priority_pending"`
}
