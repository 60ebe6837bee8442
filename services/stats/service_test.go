package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	deliveryPersonModel "parcel-delivery/models/delivery_person"
	parcelModel "parcel-delivery/models/parcel"
	productModel "parcel-delivery/models/product"
	recipientModel "parcel-delivery/models/recipient"
	senderClientModel "parcel-delivery/models/sender_client"
	zoneModel "parcel-delivery/models/zone"
	"parcel-delivery/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&zoneModel.Zone{},
		&productModel.Product{},
		&senderClientModel.SenderClient{},
		&recipientModel.Recipient{},
		&deliveryPersonModel.DeliveryPerson{},
		&parcelModel.Parcel{},
		&parcelModel.ParcelProduct{},
		&parcelModel.DeliveryHistory{},
	))
	return db
}

type statsFixture struct {
	Sender    senderClientModel.SenderClient
	Recipient recipientModel.Recipient
	Zone      zoneModel.Zone
	Courier   deliveryPersonModel.DeliveryPerson
}

func seedStatsFixture(t *testing.T, db *gorm.DB) statsFixture {
	t.Helper()

	f := statsFixture{
		Sender:    senderClientModel.SenderClient{Name: "Acme Shipping", Email: "contact@acme.test"},
		Recipient: recipientModel.Recipient{Name: "Jean Dupont"},
		Zone:      zoneModel.Zone{Name: "Nord"},
		Courier:   deliveryPersonModel.DeliveryPerson{Name: "Marc Petit", Phone: "0611111111", Available: true},
	}
	require.NoError(t, db.Create(&f.Sender).Error)
	require.NoError(t, db.Create(&f.Recipient).Error)
	require.NoError(t, db.Create(&f.Zone).Error)
	require.NoError(t, db.Create(&f.Courier).Error)
	return f
}

var parcelSeq int

func seedStatParcel(t *testing.T, db *gorm.DB, f statsFixture, status parcelModel.ParcelStatus, priority parcelModel.ParcelPriority, weight float64, assign bool) {
	t.Helper()

	parcelSeq++
	p := parcelModel.Parcel{
		TrackingCode:    fmt.Sprintf("trk-%d", parcelSeq),
		Weight:          weight,
		Priority:        priority,
		Status:          status,
		DestinationCity: "Lyon",
		SenderClientID:  f.Sender.ID,
		RecipientID:     f.Recipient.ID,
		ZoneID:          &f.Zone.ID,
	}
	if assign {
		p.DeliveryPersonID = &f.Courier.ID
	}
	require.NoError(t, db.Create(&p).Error)
}

func TestDeliveryPersonStats(t *testing.T) {
	db := setupTestDB(t)
	f := seedStatsFixture(t, db)
	svc := NewService(db)

	seedStatParcel(t, db, f, parcelModel.StatusDelivered, parcelModel.PriorityNormal, 2.0, true)
	seedStatParcel(t, db, f, parcelModel.StatusDelivered, parcelModel.PriorityUrgent, 3.0, true)
	seedStatParcel(t, db, f, parcelModel.StatusInTransit, parcelModel.PriorityNormal, 4.0, true)
	// Unassigned parcels do not count toward the courier
	seedStatParcel(t, db, f, parcelModel.StatusCreated, parcelModel.PriorityNormal, 9.0, false)

	result, err := svc.DeliveryPersonStats(f.Courier.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 3, result.TotalParcels)
	assert.InDelta(t, 9.0, result.TotalWeight, 0.0001)
	assert.InDelta(t, 3.0, result.AverageWeight, 0.0001)
	assert.InDelta(t, 66.67, result.DeliveryRate, 0.0001)
	assert.EqualValues(t, 2, result.ByStatus["DELIVERED"])
	assert.EqualValues(t, 1, result.ByStatus["IN_TRANSIT"])
	// Pre-seeded buckets are present even when empty
	assert.EqualValues(t, 0, result.ByStatus["COLLECTED"])
}

func TestDeliveryPersonStatsNoParcels(t *testing.T) {
	db := setupTestDB(t)
	f := seedStatsFixture(t, db)
	svc := NewService(db)

	result, err := svc.DeliveryPersonStats(f.Courier.ID)
	require.NoError(t, err)

	assert.Zero(t, result.TotalParcels)
	assert.Zero(t, result.TotalWeight)
	assert.Zero(t, result.AverageWeight)
	assert.Zero(t, result.DeliveryRate)
	assert.Len(t, result.ByStatus, len(parcelModel.AllStatuses()))
}

func TestDeliveryPersonStatsUnknown(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.DeliveryPersonStats(9999)
	assert.True(t, services.IsNotFound(err))
}

func TestZoneStats(t *testing.T) {
	db := setupTestDB(t)
	f := seedStatsFixture(t, db)
	svc := NewService(db)

	seedStatParcel(t, db, f, parcelModel.StatusDelivered, parcelModel.PriorityExpress, 1.0, false)
	seedStatParcel(t, db, f, parcelModel.StatusCreated, parcelModel.PriorityNormal, 2.0, false)

	result, err := svc.ZoneStats(f.Zone.ID)
	require.NoError(t, err)

	assert.Equal(t, "Nord", result.ZoneName)
	assert.EqualValues(t, 2, result.TotalParcels)
	assert.InDelta(t, 3.0, result.TotalWeight, 0.0001)
	assert.InDelta(t, 1.5, result.AverageWeight, 0.0001)
	assert.InDelta(t, 50.0, result.DeliveryRate, 0.0001)
	assert.EqualValues(t, 1, result.ByPriority["EXPRESS"])
	assert.EqualValues(t, 1, result.ByPriority["NORMAL"])
	assert.EqualValues(t, 0, result.ByPriority["URGENT"])
	assert.Len(t, result.ByPriority, len(parcelModel.AllPriorities()))
}

func TestZoneStatsUnknown(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.ZoneStats(9999)
	assert.True(t, services.IsNotFound(err))
}

func TestGlobalStats(t *testing.T) {
	db := setupTestDB(t)
	f := seedStatsFixture(t, db)
	svc := NewService(db)

	require.NoError(t, db.Create(&productModel.Product{Name: "Laptop", Price: 999.99}).Error)

	seedStatParcel(t, db, f, parcelModel.StatusCreated, parcelModel.PriorityUrgent, 1.0, false)
	seedStatParcel(t, db, f, parcelModel.StatusDelivered, parcelModel.PriorityExpress, 2.0, true)
	seedStatParcel(t, db, f, parcelModel.StatusInTransit, parcelModel.PriorityNormal, 3.0, true)

	result, err := svc.GlobalStats()
	require.NoError(t, err)

	assert.EqualValues(t, 3, result.TotalParcels)
	assert.EqualValues(t, 1, result.TotalSenderClients)
	assert.EqualValues(t, 1, result.TotalRecipients)
	assert.EqualValues(t, 1, result.TotalDeliveryPeople)
	assert.EqualValues(t, 1, result.TotalZones)
	assert.EqualValues(t, 1, result.TotalProducts)
	assert.EqualValues(t, 1, result.ByStatus["CREATED"])
	assert.EqualValues(t, 1, result.ByStatus["DELIVERED"])
	assert.EqualValues(t, 1, result.UnassignedParcels)
	// Delivered EXPRESS does not count as pending; URGENT in CREATED does
	assert.EqualValues(t, 1, result.HighPriorityPending)
}

func TestGlobalStatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	result, err := svc.GlobalStats()
	require.NoError(t, err)

	assert.Zero(t, result.TotalParcels)
	assert.Zero(t, result.UnassignedParcels)
	assert.Zero(t, result.HighPriorityPending)
	assert.Len(t, result.ByStatus, len(parcelModel.AllStatuses()))
}
