package purchase

// Status is the purchase lifecycle. purchased and approved hold one unit of
// slot capacity; the three terminal states never transition again.
type Status string

const (
	StatusPurchased Status = "purchased"
	StatusApproved  Status = "approved"
	StatusUsed      Status = "used"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPurchased, StatusApproved, StatusUsed, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusUsed, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

// HoldsCapacity reports whether a purchase in this status still owns a unit
// of its slot's capacity.
func (s Status) HoldsCapacity() bool {
	return s == StatusPurchased || s == StatusApproved
}

func (s Status) canTransitionTo(next Status) bool {
	switch s {
	case StatusPurchased:
		return next == StatusApproved || next == StatusCancelled
	case StatusApproved:
		return next == StatusUsed || next == StatusExpired
	default:
		return false
	}
}
