package utils

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ParseDate reads an HTML date input (YYYY-MM-DD); blank or malformed input
// yields nil.
func ParseDate(s string) *datatypes.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02-01-2006", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			d := datatypes.Date(t)
			return &d
		}
	}
	return nil
}

func ParseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !finite(f) {
		return 0
	}
	return f
}

func ParseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(f) {
		return nil
	}
	return &f
}

// NullableString trims s and returns nil for empty input.
func NullableString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
