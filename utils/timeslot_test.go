package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClock(t *testing.T) {
	t.Run("pads single digit hours", func(t *testing.T) {
		got, err := NormalizeClock("7:05")
		require.NoError(t, err)
		assert.Equal(t, "07:05", got)
	})

	t.Run("keeps padded values", func(t *testing.T) {
		got, err := NormalizeClock("19:30")
		require.NoError(t, err)
		assert.Equal(t, "19:30", got)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, v := range []string{"25:00", "12:61", "noon", "12", ""} {
			_, err := NormalizeClock(v)
			assert.Error(t, err, "value %q", v)
		}
	})
}

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-05", got)

	for _, v := range []string{"05/03/2026", "2026-13-01", "yesterday", ""} {
		_, err := NormalizeDate(v)
		assert.Error(t, err, "value %q", v)
	}
}

func TestValidateSlot(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantStart string
		wantEnd   string
		wantErr   string
	}{
		{name: "regular slot", start: "09:00", end: "10:30", wantStart: "09:00", wantEnd: "10:30"},
		{name: "normalizes padding", start: "9:00", end: "10:00", wantStart: "09:00", wantEnd: "10:00"},
		{name: "full operating day", start: "07:00", end: "22:00", wantStart: "07:00", wantEnd: "22:00"},
		{name: "start equals end", start: "10:00", end: "10:00", wantErr: "start time must be before end time"},
		{name: "start after end", start: "11:00", end: "10:00", wantErr: "start time must be before end time"},
		{name: "before opening", start: "06:59", end: "08:00", wantErr: "bookings must be between 07:00 and 22:00"},
		{name: "past closing", start: "21:00", end: "22:01", wantErr: "bookings must be between 07:00 and 22:00"},
		{name: "unparseable start", start: "soon", end: "10:00", wantErr: "invalid time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ValidateSlot(tt.start, tt.end)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
