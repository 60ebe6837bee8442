package parcel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"parcel-delivery/constants"
	parcelModel "parcel-delivery/models/parcel"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestCanMutateManagementRoles(t *testing.T) {
	p := &parcelModel.Parcel{SenderClientID: 7}

	assert.True(t, CanMutate(Caller{Role: constants.RoleAdmin}, p))
	assert.True(t, CanMutate(Caller{Role: constants.RoleManager}, p))

	// Management roles do not need a registry binding
	assert.True(t, CanMutate(Caller{Role: constants.RoleAdmin, RegistryID: 0}, p))
}

func TestCanMutateDeliveryPerson(t *testing.T) {
	assigned := &parcelModel.Parcel{DeliveryPersonID: uintPtr(3)}
	unassigned := &parcelModel.Parcel{}

	assert.True(t, CanMutate(Caller{Role: constants.RoleDeliveryPerson, RegistryID: 3}, assigned))
	assert.False(t, CanMutate(Caller{Role: constants.RoleDeliveryPerson, RegistryID: 4}, assigned))

	// An unassigned parcel matches nobody
	assert.False(t, CanMutate(Caller{Role: constants.RoleDeliveryPerson, RegistryID: 3}, unassigned))

	// An unbound courier can touch nothing
	assert.False(t, CanMutate(Caller{Role: constants.RoleDeliveryPerson, RegistryID: 0}, assigned))
}

func TestCanMutateClient(t *testing.T) {
	p := &parcelModel.Parcel{SenderClientID: 9}

	assert.True(t, CanMutate(Caller{Role: constants.RoleClient, RegistryID: 9}, p))
	assert.False(t, CanMutate(Caller{Role: constants.RoleClient, RegistryID: 8}, p))
	assert.False(t, CanMutate(Caller{Role: constants.RoleClient, RegistryID: 0}, p))
}

func TestCanMutateEdgeCases(t *testing.T) {
	p := &parcelModel.Parcel{SenderClientID: 1}

	assert.False(t, CanMutate(Caller{Role: "UNKNOWN", RegistryID: 1}, p))
	assert.False(t, CanMutate(Caller{Role: ""}, p))
	assert.False(t, CanMutate(Caller{Role: constants.RoleAdmin}, nil))
}
