package domain

import "time"

// ChildAttachment child travelling inside a parent's placement without a separate bed
type ChildAttachment struct {
	ID                  int64
	PlacementID         int64
	ChildRegistrationID int64
	CreatedAt           time.Time
}

// ChildRegistration child declared in a festival registration.
// Owned by the registration subsystem; the allocator only keeps NeedsSeparateBed in sync.
type ChildRegistration struct {
	ID               int64
	RegistrationID   int64
	ChildUserID      int64 // пользователь-ребенок, он же occupant отдельного размещения
	NeedsSeparateBed bool
}
