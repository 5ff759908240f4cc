package domain

import "time"

// Interval period of stay [From, To], both bounds inclusive.
// A nil bound means the date is not specified.
type Interval struct {
	From *time.Time
	To   *time.Time
}

// NewInterval builds an interval from optional bounds
func NewInterval(from, to *time.Time) Interval {
	return Interval{From: from, To: to}
}

// IsBounded returns true if both bounds are set
func (i Interval) IsBounded() bool {
	return i.From != nil && i.To != nil
}

// IsValid returns false for a bounded interval that ends before it starts
func (i Interval) IsValid() bool {
	if !i.IsBounded() {
		return true
	}
	return !i.To.Before(*i.From)
}

// Overlaps reports whether two intervals share at least one day:
// a1 <= b2 AND b1 <= a2. An interval with a missing bound never overlaps
// anything, so such placements are left out of conflict detection.
//
// The SQL predicate in storage/placement mirrors this function.
func (i Interval) Overlaps(other Interval) bool {
	if !i.IsBounded() || !other.IsBounded() {
		return false
	}
	return !i.From.After(*other.To) && !other.From.After(*i.To)
}

// Equal compares bounds by date value
func (i Interval) Equal(other Interval) bool {
	return equalDate(i.From, other.From) && equalDate(i.To, other.To)
}

func equalDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
