package parcel

import (
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
	parcelTypes "parcel-delivery/types/parcel"
)

type fixture struct {
	Sender    senderClientModel.SenderClient
	Recipient recipientModel.Recipient
	Product   productModel.Product
	Zone      zoneModel.Zone
	Courier   deliveryPersonModel.DeliveryPerson
}

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

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	f := fixture{
		Sender:    senderClientModel.SenderClient{Name: "Acme Shipping", Email: "contact@acme.test", UserID: "client-uuid-1"},
		Recipient: recipientModel.Recipient{Name: "Jean Dupont", City: "Lyon"},
		Product:   productModel.Product{Name: "Laptop", Price: 999.99},
		Zone:      zoneModel.Zone{Name: "Centre-Ville"},
		Courier:   deliveryPersonModel.DeliveryPerson{Name: "Marc Petit", Phone: "0611111111", Available: true, UserID: "courier-uuid-1"},
	}
	require.NoError(t, db.Create(&f.Sender).Error)
	require.NoError(t, db.Create(&f.Recipient).Error)
	require.NoError(t, db.Create(&f.Product).Error)
	require.NoError(t, db.Create(&f.Zone).Error)
	require.NoError(t, db.Create(&f.Courier).Error)
	return f
}

func storeRequest(f fixture) *parcelTypes.StoreParcelRequest {
	return &parcelTypes.StoreParcelRequest{
		SenderClientID:  f.Sender.ID,
		RecipientID:     f.Recipient.ID,
		Weight:          2.5,
		Priority:        parcelModel.PriorityNormal,
		DestinationCity: "Lyon",
		Description:     "Electronics order",
		LineItems: []parcelTypes.LineItemRequest{
			{ProductID: f.Product.ID, Quantity: 2, Price: 950.0},
		},
	}
}

func TestCreateParcel(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	created, err := svc.Create(storeRequest(f))
	require.NoError(t, err)

	assert.Equal(t, parcelModel.StatusCreated, created.Status)
	assert.NotEmpty(t, created.TrackingCode)
	assert.Equal(t, f.Sender.ID, created.SenderClientID)
	assert.Len(t, created.Products, 1)
	assert.InDelta(t, 1900.0, created.TotalValue(), 0.0001)

	// The creation invariant: exactly one history entry, status CREATED
	var entries []parcelModel.DeliveryHistory
	require.NoError(t, db.Where("parcel_id = ?", created.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, parcelModel.StatusCreated, entries[0].Status)
	assert.Equal(t, "Parcel created", entries[0].Comment)
}

func TestCreateParcelSnapshotPrice(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	created, err := svc.Create(storeRequest(f))
	require.NoError(t, err)

	// The line item keeps the snapshot price, not the catalog price
	assert.InDelta(t, 950.0, created.Products[0].Price, 0.0001)

	require.NoError(t, db.Model(&f.Product).Update("price", 1.0).Error)
	reloaded, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 950.0, reloaded.Products[0].Price, 0.0001)
}

func TestCreateParcelUnknownReferences(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	req := storeRequest(f)
	req.SenderClientID = 9999
	_, err := svc.Create(req)
	assert.True(t, services.IsNotFound(err))

	req = storeRequest(f)
	req.LineItems[0].ProductID = 9999
	_, err = svc.Create(req)
	assert.True(t, services.IsNotFound(err))

	// Nothing was written
	var count int64
	require.NoError(t, db.Model(&parcelModel.Parcel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateParcelPartial(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	created, err := svc.Create(storeRequest(f))
	require.NoError(t, err)

	desc := "Updated description"
	updated, err := svc.Update(created.ID, &parcelTypes.UpdateParcelRequest{Description: &desc})
	require.NoError(t, err)

	// Only the supplied field changed
	assert.Equal(t, desc, updated.Description)
	assert.InDelta(t, created.Weight, updated.Weight, 0.0001)
	assert.Equal(t, created.DestinationCity, updated.DestinationCity)
	assert.Equal(t, parcelModel.StatusCreated, updated.Status)

	// Non-status updates never touch the ledger
	var entries int64
	require.NoError(t, db.Model(&parcelModel.DeliveryHistory{}).Where("parcel_id = ?", created.ID).Count(&entries).Error)
	assert.EqualValues(t, 1, entries)
}

func TestUpdateParcelStatusAppendsHistory(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	created, err := svc.Create(storeRequest(f))
	require.NoError(t, err)

	collected := parcelModel.StatusCollected
	updated, err := svc.Update(created.ID, &parcelTypes.UpdateParcelRequest{Status: &collected})
	require.NoError(t, err)
	assert.Equal(t, parcelModel.StatusCollected, updated.Status)

	var entries []parcelModel.DeliveryHistory
	require.NoError(t, db.Where("parcel_id = ?", created.ID).Order("id asc").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, parcelModel.StatusCollected, entries[1].Status)
	assert.Equal(t, "Status updated from CREATED to COLLECTED", entries[1].Comment)
}

func TestUpdateParcelStatusNoOp(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	created, err := svc.Create(storeRequest(f))
	require.NoError(t, err)

	same := parcelModel.StatusCreated
	_, err = svc.Update(created.ID, &parcelTypes.UpdateParcelRequest{Status: &same})
	require.NoError(t, err)

	// Restating the current status leaves the ledger untouched
	var entries int64
	require.NoError(t, db.Model(&parcelModel.DeliveryHistory{}).Where("parcel_id = ?", created.ID).Count(&entries).Error)
	assert.EqualValues(t, 1, entries)
}

func TestUpdateParcelAssignment(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	created, err := svc.Create(storeRequest(f))
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, &parcelTypes.UpdateParcelRequest{
		DeliveryPersonID: &f.Courier.ID,
		ZoneID:           &f.Zone.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DeliveryPersonID)
	assert.Equal(t, f.Courier.ID, *updated.DeliveryPersonID)
	require.NotNil(t, updated.ZoneID)
	assert.Equal(t, f.Zone.ID, *updated.ZoneID)

	// Unknown references abort the whole update
	badID := uint(9999)
	_, err = svc.Update(created.ID, &parcelTypes.UpdateParcelRequest{DeliveryPersonID: &badID})
	assert.True(t, services.IsNotFound(err))
}

func TestUpdateParcelNotFound(t *testing.T) {
	db := setupTestDB(t)
	seedFixture(t, db)
	svc := NewService(db)

	desc := "whatever"
	_, err := svc.Update(123, &parcelTypes.UpdateParcelRequest{Description: &desc})
	assert.True(t, services.IsNotFound(err))
}

func TestDeleteParcelCascades(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	created, err := svc.Create(storeRequest(f))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))

	var parcels, items, entries int64
	require.NoError(t, db.Model(&parcelModel.Parcel{}).Count(&parcels).Error)
	require.NoError(t, db.Model(&parcelModel.ParcelProduct{}).Count(&items).Error)
	require.NoError(t, db.Model(&parcelModel.DeliveryHistory{}).Count(&entries).Error)
	assert.Zero(t, parcels)
	assert.Zero(t, items)
	assert.Zero(t, entries)

	assert.True(t, services.IsNotFound(svc.Delete(created.ID)))
}

func TestUpdateStatusAsDeliveryPerson(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	created, err := svc.Create(storeRequest(f))
	require.NoError(t, err)

	// Unassigned parcel: forbidden even for a bound courier
	_, err = svc.UpdateStatusAsDeliveryPerson(created.ID, parcelModel.StatusCollected, f.Courier.UserID)
	require.Error(t, err)
	assert.True(t, services.IsForbidden(err))
	assert.Equal(t, "You can only update status for parcels assigned to you", err.Error())

	require.NoError(t, db.Model(&parcelModel.Parcel{}).Where("id = ?", created.ID).
		Update("delivery_person_id", f.Courier.ID).Error)

	updated, err := svc.UpdateStatusAsDeliveryPerson(created.ID, parcelModel.StatusCollected, f.Courier.UserID)
	require.NoError(t, err)
	assert.Equal(t, parcelModel.StatusCollected, updated.Status)

	var entries []parcelModel.DeliveryHistory
	require.NoError(t, db.Where("parcel_id = ?", created.ID).Order("id asc").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, "Status updated from CREATED to COLLECTED by delivery person", entries[1].Comment)

	// A no-op restatement adds nothing
	_, err = svc.UpdateStatusAsDeliveryPerson(created.ID, parcelModel.StatusCollected, f.Courier.UserID)
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&parcelModel.DeliveryHistory{}).Where("parcel_id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpdateStatusAsDeliveryPersonWrongCourier(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	other := deliveryPersonModel.DeliveryPerson{Name: "Lucie Blanc", Phone: "0622222222", Available: true, UserID: "courier-uuid-2"}
	require.NoError(t, db.Create(&other).Error)

	created, err := svc.Create(storeRequest(f))
	require.NoError(t, err)
	require.NoError(t, db.Model(&parcelModel.Parcel{}).Where("id = ?", created.ID).
		Update("delivery_person_id", f.Courier.ID).Error)

	_, err = svc.UpdateStatusAsDeliveryPerson(created.ID, parcelModel.StatusCollected, other.UserID)
	assert.True(t, services.IsForbidden(err))

	// A user with no courier binding is a provisioning problem
	_, err = svc.UpdateStatusAsDeliveryPerson(created.ID, parcelModel.StatusCollected, "nobody")
	assert.True(t, services.IsNotFound(err))
}

func TestListForClientAndDeliveryPerson(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	created, err := svc.Create(storeRequest(f))
	require.NoError(t, err)
	require.NoError(t, db.Model(&parcelModel.Parcel{}).Where("id = ?", created.ID).
		Update("delivery_person_id", f.Courier.ID).Error)

	mine, err := svc.ListForClient(f.Sender.UserID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assigned, err := svc.ListForDeliveryPerson(f.Courier.UserID)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	_, err = svc.ListForClient("unknown-user")
	assert.True(t, services.IsNotFound(err))

	_, err = svc.ListForDeliveryPerson("unknown-user")
	assert.True(t, services.IsNotFound(err))
}

func TestOwnershipPredicates(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	created, err := svc.Create(storeRequest(f))
	require.NoError(t, err)

	assert.True(t, svc.IsOwnedByClient(created.ID, f.Sender.UserID))
	assert.False(t, svc.IsOwnedByClient(created.ID, "unknown-user"))
	assert.False(t, svc.IsOwnedByClient(9999, f.Sender.UserID))

	assert.False(t, svc.IsAssignedToDeliveryPerson(created.ID, f.Courier.UserID))
	require.NoError(t, db.Model(&parcelModel.Parcel{}).Where("id = ?", created.ID).
		Update("delivery_person_id", f.Courier.ID).Error)
	assert.True(t, svc.IsAssignedToDeliveryPerson(created.ID, f.Courier.UserID))
}

func TestOwnershipPredicateAmbiguousBinding(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	created, err := svc.Create(storeRequest(f))
	require.NoError(t, err)

	// Two sender clients bound to the same user is ambiguous and denies
	dup := senderClientModel.SenderClient{Name: "Acme Twin", Email: "twin@acme.test", UserID: f.Sender.UserID}
	require.NoError(t, db.Create(&dup).Error)

	assert.False(t, svc.IsOwnedByClient(created.ID, f.Sender.UserID))
}

func TestListPagination(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	svc := NewService(db)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(storeRequest(f))
		require.NoError(t, err)
	}

	page, total, err := svc.List(1, 2, "")
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page, 2)

	last, _, err := svc.List(3, 2, "")
	require.NoError(t, err)
	assert.Len(t, last, 1)
}
