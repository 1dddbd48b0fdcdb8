package reconcile

import (
	"time"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
)

// Rules are the named pay and resolution thresholds. The grace minutes vary
// per deployment and are surfaced through configuration; the structural
// thresholds (duplicate window, plausible shift spans) are device-behavior
// constants.
type Rules struct {
	// DuplicateWindow is the max gap between two same-status punches for
	// them to count as one double badge scan.
	DuplicateWindow time.Duration
	// MinPlausibleShift guards duplicate handling: a punch is never flipped
	// to the opposite status if that would fabricate a shift shorter than
	// this. Suppressing it as a duplicate is always preferred.
	MinPlausibleShift time.Duration
	// FlipMinSpan/FlipMaxSpan bound the span that makes flipping a
	// two-punch day's statuses plausible.
	FlipMinSpan time.Duration
	FlipMaxSpan time.Duration
	// SegmentGap is the idle gap that splits a multi-punch day into
	// separate shift segments.
	SegmentGap time.Duration

	// OvertimeCapHours caps a single day as a data-quality guard.
	OvertimeCapHours float64
	// QuarterRoundAboveHours: above this, hours round to the nearest
	// quarter hour.
	QuarterRoundAboveHours float64
	// FullShiftFloorHours..: at or above the floor, the day normalizes to
	// the standard full-shift credit.
	FullShiftFloorHours float64
	FullShiftHours      float64
	// NightFullCheckoutClock: a night checkout at or after this local clock
	// time earns the full-shift credit even below the floor.
	NightFullCheckoutHour   int
	NightFullCheckoutMinute int

	// LateGraceMinutes is the per-shift lateness allowance past the
	// standard shift start.
	LateGraceMinutes map[punch.ShiftType]int
	// EarlyLeaveGraceMinutes before the standard shift end.
	EarlyLeaveGraceMinutes int
}

func DefaultRules() Rules {
	return Rules{
		DuplicateWindow:   60 * time.Minute,
		MinPlausibleShift: 6 * time.Hour,
		FlipMinSpan:       7 * time.Hour,
		FlipMaxSpan:       11 * time.Hour,
		SegmentGap:        90 * time.Minute,

		OvertimeCapHours:        15.0,
		QuarterRoundAboveHours:  9.5,
		FullShiftFloorHours:     8.5,
		FullShiftHours:          9.0,
		NightFullCheckoutHour:   5,
		NightFullCheckoutMinute: 30,

		LateGraceMinutes: map[punch.ShiftType]int{
			punch.ShiftMorning: 0,
			punch.ShiftEvening: 0,
			punch.ShiftNight:   30,
			punch.ShiftCanteen: 10,
		},
		EarlyLeaveGraceMinutes: 15,
	}
}
