package punch

import (
	"strings"
	"time"
)

// Status is the check-in/check-out direction of a punch.
type Status string

const (
	StatusCheckIn  Status = "check_in"
	StatusCheckOut Status = "check_out"
)

// ParseStatus normalizes free-text status labels from device exports
// ("C/In", "OverTime Out", "Check In", ...) into a Status.
func ParseStatus(raw string) (Status, bool) {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "out"):
		return StatusCheckOut, true
	case strings.Contains(s, "in"):
		return StatusCheckIn, true
	}
	return "", false
}

// ShiftType classifies which shift a punch (or a working day) belongs to.
type ShiftType string

const (
	ShiftMorning ShiftType = "morning"
	ShiftEvening ShiftType = "evening"
	ShiftNight   ShiftType = "night"
	ShiftCanteen ShiftType = "canteen"
	ShiftUnknown ShiftType = "unknown"
	ShiftOffDay  ShiftType = "off_day"
)

// StandardHours are the display hours for a shift type. They are used for
// presentation and for synthesized manual-entry records; computed hours always
// come from real punch timestamps when those exist.
type StandardHours struct {
	Start   string
	End     string
	NextDay bool // end falls on the following calendar day
}

// StandardHoursFor returns the display hours for a shift. The canteen shift
// has an early and a late variant, disambiguated by the starting hour of the
// check-in (7 -> 07:00-16:00, anything else -> 08:00-17:00).
func StandardHoursFor(shift ShiftType, startHour int) StandardHours {
	switch shift {
	case ShiftMorning:
		return StandardHours{Start: "05:00", End: "14:00"}
	case ShiftEvening:
		return StandardHours{Start: "13:00", End: "22:00"}
	case ShiftNight:
		return StandardHours{Start: "21:00", End: "06:00", NextDay: true}
	case ShiftCanteen:
		if startHour == 7 {
			return StandardHours{Start: "07:00", End: "16:00"}
		}
		return StandardHours{Start: "08:00", End: "17:00"}
	}
	return StandardHours{}
}

// Punch is a single clock event as read from the attendance device export.
// Timestamps carry the device clock's local time; no timezone information is
// reliably available, so they are parsed into a fixed location and never
// converted. RawStatus is what the device recorded and may be wrong; the
// resolver writes its verdict into Status and flags Mislabeled when the two
// disagree.
type Punch struct {
	EmployeeNumber string
	EmployeeName   string
	Time           time.Time
	RawStatus      Status

	// Seq is the row's position in the source file. File order is the only
	// trustworthy tie-break when timestamps collide; device clocks are not.
	Seq int

	// Resolution output.
	Status     Status
	Shift      ShiftType
	Mislabeled bool
	// Suppressed punches are duplicate artifacts (double badge scans)
	// excluded from pairing but kept for the audit trail.
	Suppressed bool
	// Processed punches were claimed by a resolver rule; later, more general
	// rules must leave them alone.
	Processed bool
	// WorkDay is the canonical working-day key ("2006-01-02") the punch is
	// attributed to. For an overnight checkout it is the previous calendar
	// day. Assigned once during resolution and stable thereafter.
	WorkDay string
}

// DayKey formats a timestamp as a working-day key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// CalendarDay is the punch's own calendar date, which can differ from
// WorkDay for overnight checkouts.
func (p *Punch) CalendarDay() string {
	return DayKey(p.Time)
}
