package parcel

// ParcelStatus is the lifecycle state of a parcel.
type ParcelStatus string

const (
	StatusCreated   ParcelStatus = "CREATED"
	StatusCollected ParcelStatus = "COLLECTED"
	StatusInStock   ParcelStatus = "IN_STOCK"
	StatusInTransit ParcelStatus = "IN_TRANSIT"
	StatusDelivered ParcelStatus = "DELIVERED"
)

func (ps ParcelStatus) String() string {
	return string(ps)
}

func (ps ParcelStatus) IsValid() bool {
	switch ps {
	case StatusCreated, StatusCollected, StatusInStock, StatusInTransit, StatusDelivered:
		return true
	default:
		return false
	}
}

// AllStatuses returns every valid parcel status in lifecycle order.
func AllStatuses() []ParcelStatus {
	return []ParcelStatus{
		StatusCreated,
		StatusCollected,
		StatusInStock,
		StatusInTransit,
		StatusDelivered,
	}
}

// CanTransition is the single gate every status change goes through.
// Any transition between valid statuses is currently allowed so that
// manual corrections (e.g. DELIVERED back to IN_STOCK) stay possible.
// A strict forward-only state machine can be enforced here later
// without touching any call site.
func CanTransition(from, to ParcelStatus) bool {
	return from.IsValid() && to.IsValid()
}

// ParcelPriority is the stored priority level of a parcel.
type ParcelPriority string

const (
	PriorityNormal  ParcelPriority = "NORMAL"
	PriorityHigh    ParcelPriority = "HIGH"
	PriorityUrgent  ParcelPriority = "URGENT"
	PriorityExpress ParcelPriority = "EXPRESS"
)

func (pp ParcelPriority) String() string {
	return string(pp)
}

func (pp ParcelPriority) IsValid() bool {
	switch pp {
	case PriorityNormal, PriorityHigh, PriorityUrgent, PriorityExpress:
		return true
	default:
		return false
	}
}

// IsHighPriority reports whether the priority is classified as high in
// responses. HIGH is a stored intermediate level and deliberately not
// part of this classification; only URGENT and EXPRESS qualify.
func (pp ParcelPriority) IsHighPriority() bool {
	return pp == PriorityUrgent || pp == PriorityExpress
}

// AllPriorities returns every valid parcel priority.
func AllPriorities() []ParcelPriority {
	return []ParcelPriority{
		PriorityNormal,
		PriorityHigh,
		PriorityUrgent,
		PriorityExpress,
	}
}
