package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "date", value: "2024-07-01", want: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339 truncated", value: "2024-07-01T15:04:05Z", want: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", value: "01.07.2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestParseOptionalDate_Empty(t *testing.T) {
	empty := ""
	got, err := ParseOptionalDate(&empty)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptionalDate(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOptionalDate_UnmarshalJSON(t *testing.T) {
	var body struct {
		DateFrom OptionalDate `json:"dateFrom"`
		DateTo   OptionalDate `json:"dateTo"`
		Other    OptionalDate `json:"other"`
	}

	err := json.Unmarshal([]byte(`{"dateFrom": "2024-07-05", "dateTo": null}`), &body)
	require.NoError(t, err)

	assert.True(t, body.DateFrom.Set)
	require.NotNil(t, body.DateFrom.Value)
	assert.Equal(t, "2024-07-05", body.DateFrom.Value.Format(DateFormat))

	assert.True(t, body.DateTo.Set)
	assert.Nil(t, body.DateTo.Value)

	assert.False(t, body.Other.Set)
}

func TestOptionalDate_UnmarshalJSON_Invalid(t *testing.T) {
	var d OptionalDate
	assert.Error(t, json.Unmarshal([]byte(`"not a date"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}
