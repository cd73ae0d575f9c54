package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeInMonths(t *testing.T) {
	asOf := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  string
		want int
	}{
		{"newborn same month", "2026-08-01", 0},
		{"six months", "2026-02-15", 6},
		{"one year", "2025-08-30", 12},
		{"day of month ignored", "2026-07-31", 1},
		{"toddler across year boundary", "2024-11-10", 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dob, err := ParseDate(tt.dob)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, AgeInMonths(dob, asOf))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2022-03-15")
	assert.NoError(t, err)
	assert.Equal(t, 2022, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())

	_, err = ParseDate("15-03-2022")
	assert.Error(t, err)

	_, err = ParseDate("2022-02-30")
	assert.Error(t, err)
}

func TestValidTimeOfDay(t *testing.T) {
	assert.True(t, ValidTimeOfDay("09:00"))
	assert.True(t, ValidTimeOfDay("23:59"))
	assert.False(t, ValidTimeOfDay("24:00"))
	assert.False(t, ValidTimeOfDay("9:00am"))
	assert.False(t, ValidTimeOfDay(""))
}
