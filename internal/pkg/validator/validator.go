package validator

import (
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// deviceTimestampLayouts covers the formats attendance devices are known to
// emit. All are parsed as naive local time; the exports carry no zone.
var deviceTimestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDeviceTimestamp parses a device export timestamp. Returns false when
// no known layout matches.
func ParseDeviceTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range deviceTimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var clockEditLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"15:04:05",
	"15:04",
}

// ParseClockEdit parses a manual time edit: either a bare clock time (to be
// combined with the record's own date) or a full timestamp.
func ParseClockEdit(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range clockEditLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsClockOnly reports whether a manual edit value carries no date part.
func IsClockOnly(s string) bool {
	s = strings.TrimSpace(s)
	return !strings.Contains(s, "-") && !strings.Contains(s, "/")
}
