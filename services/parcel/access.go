package parcel

import (
	"parcel-delivery/constants"
	parcelModel "parcel-delivery/models/parcel"
)

// Caller describes the capability of an authenticated caller: the role
// from the JWT claims plus the id of the bound registry record (the
// DeliveryPerson for LIVREUR, the SenderClient for CLIENT). RegistryID
// is zero when the caller has no binding.
type Caller struct {
	Role       string
	RegistryID uint
}

// CanMutate is the single gating predicate shared by every role-scoped
// call site. Managers and admins may touch any parcel; a courier only
// the parcel assigned to them (an unassigned parcel matches nobody); a
// client only their own shipments.
func CanMutate(caller Caller, p *parcelModel.Parcel) bool {
	if p == nil {
		return false
	}
	switch caller.Role {
	case constants.RoleAdmin, constants.RoleManager:
		return true
	case constants.RoleDeliveryPerson:
		return caller.RegistryID != 0 &&
			p.DeliveryPersonID != nil &&
			*p.DeliveryPersonID == caller.RegistryID
	case constants.RoleClient:
		return caller.RegistryID != 0 && p.SenderClientID == caller.RegistryID
	default:
		return false
	}
}
