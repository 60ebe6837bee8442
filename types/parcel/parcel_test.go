package parcel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	parcelModel "parcel-delivery/models/parcel"
)

func validStoreRequest() StoreParcelRequest {
	return StoreParcelRequest{
		SenderClientID:  1,
		RecipientID:     2,
		Weight:          1.5,
		Priority:        parcelModel.PriorityNormal,
		DestinationCity: "Lyon",
		LineItems: []LineItemRequest{
			{ProductID: 1, Quantity: 1, Price: 10.0},
		},
	}
}

func TestStoreParcelRequestValidate(t *testing.T) {
	req := validStoreRequest()
	require.NoError(t, req.Validate())
}

func TestStoreParcelRequestWeightBounds(t *testing.T) {
	req := validStoreRequest()
	req.Weight = 0
	assert.Error(t, req.Validate())

	req = validStoreRequest()
	req.Weight = 1000
	assert.Error(t, req.Validate())

	req = validStoreRequest()
	req.Weight = 999.99
	assert.NoError(t, req.Validate())
}

func TestStoreParcelRequestRequiresLineItems(t *testing.T) {
	req := validStoreRequest()
	req.LineItems = nil
	assert.Error(t, req.Validate())

	req = validStoreRequest()
	req.LineItems = []LineItemRequest{}
	assert.Error(t, req.Validate())

	req = validStoreRequest()
	req.LineItems[0].Quantity = 0
	assert.Error(t, req.Validate())

	req = validStoreRequest()
	req.LineItems[0].Price = -1
	assert.Error(t, req.Validate())
}

func TestStoreParcelRequestPriority(t *testing.T) {
	req := validStoreRequest()
	req.Priority = parcelModel.ParcelPriority("RUSH")
	assert.Error(t, req.Validate())

	req = validStoreRequest()
	req.Priority = ""
	assert.Error(t, req.Validate())
}

func TestStoreParcelRequestDestinationCity(t *testing.T) {
	req := validStoreRequest()
	req.DestinationCity = ""
	assert.Error(t, req.Validate())
}

func TestUpdateParcelRequestValidate(t *testing.T) {
	empty := UpdateParcelRequest{}
	assert.NoError(t, empty.Validate())

	weight := 2.5
	partial := UpdateParcelRequest{Weight: &weight}
	assert.NoError(t, partial.Validate())

	badWeight := 0.005
	assert.Error(t, (&UpdateParcelRequest{Weight: &badWeight}).Validate())

	emptyCity := ""
	assert.Error(t, (&UpdateParcelRequest{DestinationCity: &emptyCity}).Validate())

	badStatus := parcelModel.ParcelStatus("LOST")
	assert.Error(t, (&UpdateParcelRequest{Status: &badStatus}).Validate())

	badPriority := parcelModel.ParcelPriority("RUSH")
	assert.Error(t, (&UpdateParcelRequest{Priority: &badPriority}).Validate())

	goodStatus := parcelModel.StatusInTransit
	assert.NoError(t, (&UpdateParcelRequest{Status: &goodStatus}).Validate())
}

func TestUpdateStatusRequestValidate(t *testing.T) {
	assert.NoError(t, (&UpdateStatusRequest{Status: parcelModel.StatusDelivered}).Validate())
	assert.Error(t, (&UpdateStatusRequest{}).Validate())
	assert.Error(t, (&UpdateStatusRequest{Status: "LOST"}).Validate())
}

func TestToResponseComputedFields(t *testing.T) {
	dpID := uint(4)
	p := parcelModel.Parcel{
		ID:               12,
		TrackingCode:     "trk-12",
		Weight:           2.5,
		Priority:         parcelModel.PriorityUrgent,
		Status:           parcelModel.StatusDelivered,
		DestinationCity:  "Lyon",
		SenderClientID:   1,
		RecipientID:      2,
		DeliveryPersonID: &dpID,
		Products: []parcelModel.ParcelProduct{
			{Quantity: 2, Price: 10.0},
			{Quantity: 1, Price: 5.0},
		},
	}

	resp := ToResponse(&p)
	assert.Equal(t, 2, resp.ProductCount)
	assert.InDelta(t, 25.0, resp.TotalValue, 0.0001)
	assert.True(t, resp.IsHighPriority)
	assert.True(t, resp.IsDelivered)
	assert.Equal(t, &dpID, resp.DeliveryPersonID)
}

func TestToResponseList(t *testing.T) {
	parcels := []parcelModel.Parcel{
		{ID: 1, Priority: parcelModel.PriorityNormal},
		{ID: 2, Priority: parcelModel.PriorityExpress},
	}

	responses := ToResponseList(parcels)
	require.Len(t, responses, 2)
	assert.False(t, responses[0].IsHighPriority)
	assert.True(t, responses[1].IsHighPriority)

	assert.Empty(t, ToResponseList(nil))
}
