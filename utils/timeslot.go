package utils

import (
	"errors"
	"fmt"
	"time"
)

// Operating hours for every room. Slots must fit inside [OpenTime, CloseTime].
const (
	OpenTime  = "07:00"
	CloseTime = "22:00"

	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// NormalizeClock parses a clock value and returns it zero-padded "HH:MM",
// so stored values compare lexicographically in chronological order.
func NormalizeClock(v string) (string, error) {
	t, err := time.Parse(ClockLayout, v)
	if err != nil {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", v)
	}
	return t.Format(ClockLayout), nil
}

// NormalizeDate parses a calendar date and returns it as "YYYY-MM-DD".
func NormalizeDate(v string) (string, error) {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v)
	}
	return t.Format(DateLayout), nil
}

// ValidateSlot checks a start/end pair: both parse, start < end, and the
// whole slot sits inside operating hours. Returns the normalized pair.
func ValidateSlot(start, end string) (string, string, error) {
	s, err := NormalizeClock(start)
	if err != nil {
		return "", "", err
	}
	e, err := NormalizeClock(end)
	if err != nil {
		return "", "", err
	}
	if s >= e {
		return "", "", errors.New("start time must be before end time")
	}
	if s < OpenTime || e > CloseTime {
		return "", "", fmt.Errorf("bookings must be between %s and %s", OpenTime, CloseTime)
	}
	return s, e, nil
}
