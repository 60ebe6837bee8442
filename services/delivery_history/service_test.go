package delivery_history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	parcelModel "parcel-delivery/models/parcel"
	recipientModel "parcel-delivery/models/recipient"
	senderClientModel "parcel-delivery/models/sender_client"
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
		&senderClientModel.SenderClient{},
		&recipientModel.Recipient{},
		&parcelModel.Parcel{},
		&parcelModel.DeliveryHistory{},
	))
	return db
}

var trackingSeq int

func seedParcel(t *testing.T, db *gorm.DB) parcelModel.Parcel {
	t.Helper()

	trackingSeq++
	sender := senderClientModel.SenderClient{Name: "Acme Shipping", Email: fmt.Sprintf("contact%d@acme.test", trackingSeq)}
	require.NoError(t, db.Create(&sender).Error)
	recipient := recipientModel.Recipient{Name: "Jean Dupont"}
	require.NoError(t, db.Create(&recipient).Error)

	p := parcelModel.Parcel{
		TrackingCode:    fmt.Sprintf("trk-%d", trackingSeq),
		Weight:          1.5,
		Priority:        parcelModel.PriorityNormal,
		Status:          parcelModel.StatusCreated,
		DestinationCity: "Lyon",
		SenderClientID:  sender.ID,
		RecipientID:     recipient.ID,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func appendEntry(t *testing.T, db *gorm.DB, parcelID uint, status parcelModel.ParcelStatus, comment string, at time.Time) {
	t.Helper()
	entry := parcelModel.DeliveryHistory{
		ParcelID:  parcelID,
		Status:    status,
		Comment:   comment,
		ChangedAt: at,
	}
	require.NoError(t, db.Create(&entry).Error)
}

func TestRecord(t *testing.T) {
	db := setupTestDB(t)
	p := seedParcel(t, db)

	require.NoError(t, Record(db, p.ID, parcelModel.StatusCreated, "Parcel created"))

	var entries []parcelModel.DeliveryHistory
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, p.ID, entries[0].ParcelID)
	assert.Equal(t, parcelModel.StatusCreated, entries[0].Status)
	assert.Equal(t, "Parcel created", entries[0].Comment)
	assert.False(t, entries[0].ChangedAt.IsZero())
}

func TestHistoryOrdering(t *testing.T) {
	db := setupTestDB(t)
	p := seedParcel(t, db)
	svc := NewService(db)

	base := time.Now().Add(-3 * time.Hour)
	appendEntry(t, db, p.ID, parcelModel.StatusCreated, "Parcel created", base)
	appendEntry(t, db, p.ID, parcelModel.StatusCollected, "", base.Add(time.Hour))
	appendEntry(t, db, p.ID, parcelModel.StatusInTransit, "", base.Add(2*time.Hour))

	asc, err := svc.History(p.ID)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.Equal(t, parcelModel.StatusCreated, asc[0].Status)
	assert.Equal(t, parcelModel.StatusInTransit, asc[2].Status)

	desc, err := svc.HistoryDesc(p.ID)
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.Equal(t, parcelModel.StatusInTransit, desc[0].Status)
	assert.Equal(t, parcelModel.StatusCreated, desc[2].Status)
}

func TestHistoryUnknownParcel(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.History(9999)
	assert.True(t, services.IsNotFound(err))

	_, err = svc.Latest(9999)
	assert.True(t, services.IsNotFound(err))
}

func TestLatest(t *testing.T) {
	db := setupTestDB(t)
	p := seedParcel(t, db)
	svc := NewService(db)

	base := time.Now().Add(-2 * time.Hour)
	appendEntry(t, db, p.ID, parcelModel.StatusCreated, "Parcel created", base)
	appendEntry(t, db, p.ID, parcelModel.StatusCollected, "", base.Add(time.Hour))

	latest, err := svc.Latest(p.ID)
	require.NoError(t, err)
	assert.Equal(t, parcelModel.StatusCollected, latest.Status)
}

func TestLatestEmptyLedger(t *testing.T) {
	db := setupTestDB(t)
	p := seedParcel(t, db)
	svc := NewService(db)

	// An existing parcel without entries breaks the creation invariant
	_, err := svc.Latest(p.ID)
	assert.True(t, services.IsNotFound(err))
}

func TestWithComments(t *testing.T) {
	db := setupTestDB(t)
	p := seedParcel(t, db)
	other := seedParcel(t, db)
	svc := NewService(db)

	base := time.Now().Add(-2 * time.Hour)
	appendEntry(t, db, p.ID, parcelModel.StatusCreated, "Parcel created", base)
	appendEntry(t, db, p.ID, parcelModel.StatusCollected, "", base.Add(time.Hour))
	appendEntry(t, db, other.ID, parcelModel.StatusCreated, "Parcel created", base.Add(30*time.Minute))

	entries, err := svc.WithComments()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first
	assert.Equal(t, other.ID, entries[0].ParcelID)
	assert.Equal(t, p.ID, entries[1].ParcelID)
}

func TestDeliveredToday(t *testing.T) {
	db := setupTestDB(t)
	p := seedParcel(t, db)
	svc := NewService(db)

	appendEntry(t, db, p.ID, parcelModel.StatusDelivered, "", time.Now())
	appendEntry(t, db, p.ID, parcelModel.StatusDelivered, "", time.Now().AddDate(0, 0, -2))
	appendEntry(t, db, p.ID, parcelModel.StatusInTransit, "", time.Now())

	count, err := svc.DeliveredToday()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestAverageDeliveryHours(t *testing.T) {
	db := setupTestDB(t)
	first := seedParcel(t, db)
	second := seedParcel(t, db)
	incomplete := seedParcel(t, db)
	svc := NewService(db)

	base := time.Now().Add(-48 * time.Hour)

	// First parcel takes 10 hours, second takes 20
	appendEntry(t, db, first.ID, parcelModel.StatusCreated, "", base)
	appendEntry(t, db, first.ID, parcelModel.StatusDelivered, "", base.Add(10*time.Hour))
	appendEntry(t, db, second.ID, parcelModel.StatusCreated, "", base)
	appendEntry(t, db, second.ID, parcelModel.StatusDelivered, "", base.Add(20*time.Hour))

	// A parcel still in flight does not count
	appendEntry(t, db, incomplete.ID, parcelModel.StatusCreated, "", base)

	avg, err := svc.AverageDeliveryHours()
	require.NoError(t, err)
	assert.InDelta(t, 15.0, avg, 0.01)
}

func TestAverageDeliveryHoursEmpty(t *testing.T) {
	db := setupTestDB(t)
	seedParcel(t, db)
	svc := NewService(db)

	avg, err := svc.AverageDeliveryHours()
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestDeleteEntry(t *testing.T) {
	db := setupTestDB(t)
	p := seedParcel(t, db)
	svc := NewService(db)

	appendEntry(t, db, p.ID, parcelModel.StatusCreated, "Parcel created", time.Now())

	var entry parcelModel.DeliveryHistory
	require.NoError(t, db.First(&entry).Error)

	require.NoError(t, svc.Delete(entry.ID))

	var count int64
	require.NoError(t, db.Model(&parcelModel.DeliveryHistory{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.True(t, services.IsNotFound(svc.Delete(entry.ID)))
}
