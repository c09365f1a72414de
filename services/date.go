package services

import (
	"fmt"
	"time"
)

// ParseDate parses a date string in typical formats (YYYY-MM-DD or RFC 3339)
func ParseDate(dateStr string) (time.Time, error) {
	// Primary format: ISO 8601 (standard for HTML5 date inputs)
	layout := "2006-01-02"

	parsedTime, err := time.Parse(layout, dateStr)
	if err == nil {
		return parsedTime, nil
	}

	parsedTime, err = time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD or RFC 3339")
	}

	return parsedTime, nil
}

// DateRange bounds a query on created_at. Nil bounds are open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange parses optional start/end query values; empty strings leave the bound open
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if start != "" {
		t, err := ParseDate(start)
		if err != nil {
			return r, &ValidationError{Field: "start_date", Message: "start_date: " + err.Error()}
		}
		r.Start = &t
	}
	if end != "" {
		t, err := ParseDate(end)
		if err != nil {
			return r, &ValidationError{Field: "end_date", Message: "end_date: " + err.Error()}
		}
		r.End = &t
	}
	return r, nil
}

// Contains reports whether t falls inside the range (both bounds inclusive)
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}
