package domain

import (
	"slices"
	"time"
)

// PlacementStatus represents the status of a placement
type PlacementStatus string

const (
	StatusBooked  PlacementStatus = "booked"
	StatusPaid    PlacementStatus = "paid"
	StatusSettled PlacementStatus = "settled"
	StatusSpecial PlacementStatus = "special"
	StatusChild   PlacementStatus = "child" // отдельная кровать ребенка
)

// IsValid returns true for a known status
func (s PlacementStatus) IsValid() bool {
	switch s {
	case StatusBooked, StatusPaid, StatusSettled, StatusSpecial, StatusChild:
		return true
	default:
		return false
	}
}

// Placement one occupant's claim on one bed slot in one room for an interval
type Placement struct {
	ID         int64
	RoomID     int64
	Slot       int
	ManagerID  int64
	OccupantID int64
	Status     PlacementStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	Note       string

	// Заполнены только у размещений со статусом child
	ParentPlacementID   *int64
	ChildRegistrationID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the period of stay
func (p *Placement) Interval() Interval {
	return Interval{From: p.DateFrom, To: p.DateTo}
}

// IsChild returns true for a child's separate-bed placement
func (p *Placement) IsChild() bool {
	return p.Status == StatusChild
}

// BelongsTo returns true if this child placement was created for the parent placement
func (p *Placement) BelongsTo(parentPlacementID int64) bool {
	return p.ParentPlacementID != nil && *p.ParentPlacementID == parentPlacementID
}

// Apply копирует в размещение только переданные поля
func (p *Placement) Apply(patch PlacementPatch) {
	if patch.RoomID != nil {
		p.RoomID = *patch.RoomID
	}
	if patch.Slot != nil {
		p.Slot = *patch.Slot
	}
	if patch.OccupantID != nil {
		p.OccupantID = *patch.OccupantID
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Note != nil {
		p.Note = *patch.Note
	}
	if patch.Interval != nil {
		p.DateFrom = patch.Interval.From
		p.DateTo = patch.Interval.To
	}
	if patch.ParentPlacementID != nil {
		p.ParentPlacementID = patch.ParentPlacementID
	}
}

// PlacementPatch частичное обновление размещения, nil - поле не меняется
type PlacementPatch struct {
	RoomID     *int64
	Slot       *int
	OccupantID *int64
	Status     *PlacementStatus
	Note       *string
	Interval   *Interval

	// Перепривязка детского размещения к другому размещению родителя
	ParentPlacementID *int64
}

// IsEmpty returns true if the patch changes nothing
func (p PlacementPatch) IsEmpty() bool {
	return p.RoomID == nil && p.Slot == nil && p.OccupantID == nil &&
		p.Status == nil && p.Note == nil && p.Interval == nil && p.ParentPlacementID == nil
}

// OverlapQuery запрос к индексу интервалов
// Slot == nil - все слоты комнаты
type OverlapQuery struct {
	RoomID     int64
	Slot       *int
	Interval   Interval
	ExcludeIDs []int64
}

// Matches applies the query to a single placement in memory
func (q OverlapQuery) Matches(p *Placement) bool {
	if p.RoomID != q.RoomID {
		return false
	}
	if q.Slot != nil && p.Slot != *q.Slot {
		return false
	}
	if slices.Contains(q.ExcludeIDs, p.ID) {
		return false
	}
	return p.Interval().Overlaps(q.Interval)
}

// PlacementFilter фильтр списка размещений
// Даты: обе заданы - пересечение интервалов; только DateFrom - размещения,
// которые начинаются или заканчиваются не раньше DateFrom; только DateTo - симметрично
type PlacementFilter struct {
	IDs                 []int64
	RoomIDs             []int64
	OccupantID          *int64
	Status              *PlacementStatus
	ExcludeStatus       *PlacementStatus
	ParentPlacementID   *int64
	ChildRegistrationID *int64
	DateFrom            *time.Time
	DateTo              *time.Time
}

// Matches applies the filter to a single placement in memory
func (f PlacementFilter) Matches(p *Placement) bool {
	if len(f.IDs) > 0 && !slices.Contains(f.IDs, p.ID) {
		return false
	}
	if len(f.RoomIDs) > 0 && !slices.Contains(f.RoomIDs, p.RoomID) {
		return false
	}
	if f.OccupantID != nil && p.OccupantID != *f.OccupantID {
		return false
	}
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.ExcludeStatus != nil && p.Status == *f.ExcludeStatus {
		return false
	}
	if f.ParentPlacementID != nil && !p.BelongsTo(*f.ParentPlacementID) {
		return false
	}
	if f.ChildRegistrationID != nil && (p.ChildRegistrationID == nil || *p.ChildRegistrationID != *f.ChildRegistrationID) {
		return false
	}

	switch {
	case f.DateFrom != nil && f.DateTo != nil:
		return p.Interval().Overlaps(Interval{From: f.DateFrom, To: f.DateTo})
	case f.DateFrom != nil:
		return notBefore(p.DateFrom, *f.DateFrom) || notBefore(p.DateTo, *f.DateFrom)
	case f.DateTo != nil:
		return notAfter(p.DateFrom, *f.DateTo) || notAfter(p.DateTo, *f.DateTo)
	}
	return true
}

func notBefore(t *time.Time, bound time.Time) bool {
	return t != nil && !t.Before(bound)
}

func notAfter(t *time.Time, bound time.Time) bool {
	return t != nil && !t.After(bound)
}
