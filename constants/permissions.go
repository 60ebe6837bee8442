package constants

// Roles carried in the identity provider's JWT claims.
const (
	RoleAdmin          = "ADMIN"
	RoleManager        = "MANAGER"
	RoleDeliveryPerson = "LIVREUR"
	RoleClient         = "CLIENT"
)

// Organization permissions
const (
	// Admin permissions
	PermSuperAdminFull = "parcel-delivery.super-admin.full-permit"
	PermManagerFull    = "parcel-delivery.manager.full-permit"

	// Role permissions
	PermDeliveryPersonFull = "parcel-delivery.livreur.full-permit"
	PermClientFull         = "parcel-delivery.client.full-permit"

	// The ledger delete breaks the audit trail; it gets its own permit
	// instead of riding on the manager permit.
	PermHistoryAdmin = "parcel-delivery.history.admin-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	ManagementPermissions = []string{
		PermSuperAdminFull,
		PermManagerFull,
	}
)
