package reconcile

import (
	"math"
	"time"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
)

// Calculator applies the payable-hours policy. It is the single place hours
// are computed; nothing else in the repo derives hours on its own.
type Calculator struct {
	rules Rules
}

func NewCalculator(rules Rules) *Calculator {
	return &Calculator{rules: rules}
}

// ComputeHours turns a check-in/check-out pair into payable hours.
// A negative raw difference means the pair crossed midnight with naive
// same-day arithmetic, so a day is added back. The deduction (lateness
// penalty, in minutes) comes off before the overtime policy runs.
func (c *Calculator) ComputeHours(checkIn, checkOut time.Time, shift punch.ShiftType, deductionMinutes int) float64 {
	mins := checkOut.Sub(checkIn).Minutes()
	if mins < 0 {
		mins += 24 * 60
	}

	mins -= float64(deductionMinutes)
	if mins < 0 {
		mins = 0
	}

	hours := mins / 60

	switch {
	case hours > c.rules.OvertimeCapHours:
		hours = c.rules.OvertimeCapHours
	case hours > c.rules.QuarterRoundAboveHours:
		hours = math.Round(hours*4) / 4
	case hours >= c.rules.FullShiftFloorHours:
		hours = c.rules.FullShiftHours
	case shift == punch.ShiftNight && c.isFullNightCheckout(checkOut):
		// A night checkout past 05:30 is a full shift even when the raw
		// span falls short of the floor.
		hours = c.rules.FullShiftHours
	}

	return math.Round(hours*100) / 100
}

// isFullNightCheckout reports whether a checkout clock time qualifies for the
// night full-shift credit. Only morning checkouts count; an evening clock
// value means the shift never crossed midnight.
func (c *Calculator) isFullNightCheckout(checkOut time.Time) bool {
	h, m := checkOut.Hour(), checkOut.Minute()
	if h >= 12 {
		return false
	}
	return h > c.rules.NightFullCheckoutHour ||
		(h == c.rules.NightFullCheckoutHour && m >= c.rules.NightFullCheckoutMinute)
}

// ExceedsCap reports whether the raw pair span trips the data-quality cap.
func (c *Calculator) ExceedsCap(checkIn, checkOut time.Time) bool {
	mins := checkOut.Sub(checkIn).Minutes()
	if mins < 0 {
		mins += 24 * 60
	}
	return mins/60 > c.rules.OvertimeCapHours
}

// LateMinutes returns how far past the standard shift start a check-in
// landed, and whether that exceeds the shift's grace.
func (c *Calculator) LateMinutes(checkIn time.Time, shift punch.ShiftType) (int, bool) {
	start, ok := shiftStartOn(checkIn, shift)
	if !ok {
		return 0, false
	}

	diff := int(checkIn.Sub(start).Minutes())
	if diff <= 0 {
		return 0, false
	}
	return diff, diff > c.rules.LateGraceMinutes[shift]
}

// IsEarlyLeave reports whether a checkout left before the standard shift end
// minus the grace window.
func (c *Calculator) IsEarlyLeave(checkOut time.Time, shift punch.ShiftType, startHour int) bool {
	end, ok := shiftEndOn(checkOut, shift, startHour)
	if !ok {
		return false
	}
	grace := time.Duration(c.rules.EarlyLeaveGraceMinutes) * time.Minute
	return checkOut.Before(end.Add(-grace))
}

// shiftStartOn places the shift's standard start clock on the check-in's
// working day. The canteen variant follows the check-in's starting hour; a
// night check-in after midnight anchors to the previous evening's start.
func shiftStartOn(checkIn time.Time, shift punch.ShiftType) (time.Time, bool) {
	std := punch.StandardHoursFor(shift, checkIn.Hour())
	if std.Start == "" {
		return time.Time{}, false
	}
	clock, err := time.Parse("15:04", std.Start)
	if err != nil {
		return time.Time{}, false
	}
	start := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(),
		clock.Hour(), clock.Minute(), 0, 0, checkIn.Location())
	if std.NextDay && checkIn.Hour() < 12 {
		start = start.AddDate(0, 0, -1)
	}
	return start, true
}

// shiftEndOn places the shift's standard end clock relative to the checkout.
// For a night shift the end lives on the checkout's own date when the
// checkout already crossed midnight.
func shiftEndOn(checkOut time.Time, shift punch.ShiftType, startHour int) (time.Time, bool) {
	std := punch.StandardHoursFor(shift, startHour)
	if std.End == "" {
		return time.Time{}, false
	}
	clock, err := time.Parse("15:04", std.End)
	if err != nil {
		return time.Time{}, false
	}
	end := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(),
		clock.Hour(), clock.Minute(), 0, 0, checkOut.Location())
	if std.NextDay && checkOut.Hour() >= 12 {
		// Checkout before midnight: the standard end is tomorrow morning.
		end = end.AddDate(0, 0, 1)
	}
	return end, true
}
