package types

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// DateFormat формат даты в API
const DateFormat = "2006-01-02"

// ErrInvalidDate неверный формат даты
var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// ParseDate разбирает YYYY-MM-DD или RFC3339 и отбрасывает время (UTC полночь)
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(DateFormat, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return TruncateDate(t), nil
}

// ParseOptionalDate пустая строка - нет даты
func ParseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TruncateDate приводит момент времени к дате в UTC
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate nil -> nil
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateFormat)
	return &s
}

// OptionalDate поле частичного обновления
// Set == false - поле не передано; Set == true && Value == nil - передан null
type OptionalDate struct {
	Set   bool
	Value *time.Time
}

func (d *OptionalDate) UnmarshalJSON(data []byte) error {
	d.Set = true

	if string(data) == "null" {
		d.Value = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrInvalidDate
	}

	value, err := ParseOptionalDate(&raw)
	if err != nil {
		return err
	}
	d.Value = value
	return nil
}
