package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestInterval_Overlaps(t *testing.T) {
	booked := NewInterval(day("2024-07-01"), day("2024-07-10"))

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{name: "inside", other: NewInterval(day("2024-07-05"), day("2024-07-08")), want: true},
		{name: "covers", other: NewInterval(day("2024-06-01"), day("2024-08-01")), want: true},
		{name: "touches end day", other: NewInterval(day("2024-07-10"), day("2024-07-12")), want: true},
		{name: "touches start day", other: NewInterval(day("2024-06-25"), day("2024-07-01")), want: true},
		{name: "after", other: NewInterval(day("2024-07-11"), day("2024-07-15")), want: false},
		{name: "before", other: NewInterval(day("2024-06-01"), day("2024-06-30")), want: false},
		{name: "open end", other: NewInterval(day("2024-07-05"), nil), want: false},
		{name: "open start", other: NewInterval(nil, day("2024-07-05")), want: false},
		{name: "unbounded", other: Interval{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booked.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(booked), "overlap must be symmetric")
		})
	}
}

func TestInterval_IsValid(t *testing.T) {
	assert.True(t, NewInterval(day("2024-07-01"), day("2024-07-01")).IsValid())
	assert.False(t, NewInterval(day("2024-07-02"), day("2024-07-01")).IsValid())
	assert.True(t, NewInterval(day("2024-07-02"), nil).IsValid())
}

func TestInterval_Equal(t *testing.T) {
	a := NewInterval(day("2024-07-01"), day("2024-07-10"))
	assert.True(t, a.Equal(NewInterval(day("2024-07-01"), day("2024-07-10"))))
	assert.False(t, a.Equal(NewInterval(day("2024-07-01"), nil)))
	assert.True(t, Interval{}.Equal(Interval{}))
}
