package parcel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParcelStatusIsValid(t *testing.T) {
	for _, status := range AllStatuses() {
		assert.True(t, status.IsValid(), "expected %s to be valid", status)
	}

	assert.False(t, ParcelStatus("").IsValid())
	assert.False(t, ParcelStatus("SHIPPED").IsValid())
	assert.False(t, ParcelStatus("created").IsValid())
}

func TestParcelPriorityIsValid(t *testing.T) {
	for _, priority := range AllPriorities() {
		assert.True(t, priority.IsValid(), "expected %s to be valid", priority)
	}

	assert.False(t, ParcelPriority("").IsValid())
	assert.False(t, ParcelPriority("LOW").IsValid())
}

func TestCanTransition(t *testing.T) {
	// Any pair of valid statuses is allowed, including backwards moves
	// used for manual corrections.
	assert.True(t, CanTransition(StatusCreated, StatusCollected))
	assert.True(t, CanTransition(StatusInTransit, StatusDelivered))
	assert.True(t, CanTransition(StatusDelivered, StatusInStock))
	assert.True(t, CanTransition(StatusCreated, StatusDelivered))

	assert.False(t, CanTransition(StatusCreated, ParcelStatus("LOST")))
	assert.False(t, CanTransition(ParcelStatus(""), StatusDelivered))
}

func TestIsHighPriority(t *testing.T) {
	assert.True(t, PriorityUrgent.IsHighPriority())
	assert.True(t, PriorityExpress.IsHighPriority())

	// HIGH is a stored level but not part of the high priority class
	assert.False(t, PriorityHigh.IsHighPriority())
	assert.False(t, PriorityNormal.IsHighPriority())
}

func TestParcelTotalValue(t *testing.T) {
	p := Parcel{
		Products: []ParcelProduct{
			{Quantity: 2, Price: 10.5},
			{Quantity: 1, Price: 4.0},
		},
	}
	assert.InDelta(t, 25.0, p.TotalValue(), 0.0001)

	empty := Parcel{}
	assert.Zero(t, empty.TotalValue())
}

func TestParcelIsDelivered(t *testing.T) {
	delivered := Parcel{Status: StatusDelivered}
	inTransit := Parcel{Status: StatusInTransit}
	assert.True(t, delivered.IsDelivered())
	assert.False(t, inTransit.IsDelivered())
}
