package reconcile

import (
	"math"
	"time"

	"github.com/attendly/timeclock-backend-go/internal/domain/holiday"
	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
	"github.com/attendly/timeclock-backend-go/internal/domain/timecard"
)

// DoubleTimeSet builds the date lookup for the double-time rule from the
// externally managed holiday list.
func DoubleTimeSet(holidays []holiday.Holiday) map[string]bool {
	set := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		set[h.Date] = true
	}
	return set
}

// IsDoubleTime reports whether a working day pays 2x: Fridays and holidays.
func IsDoubleTime(dateKey string, holidays map[string]bool) bool {
	if holidays[dateKey] {
		return true
	}
	d, err := time.Parse("2006-01-02", dateKey)
	if err != nil {
		return false
	}
	return d.Weekday() == time.Friday
}

// Summarize rolls employee records up into per-period reporting summaries.
// PayableHours carries the double-time multiplier; the records' own
// HoursWorked stays raw so worked time remains auditable.
func Summarize(records []timecard.EmployeeRecord, holidays map[string]bool) []timecard.PeriodSummary {
	summaries := make([]timecard.PeriodSummary, 0, len(records))
	for _, emp := range records {
		s := timecard.PeriodSummary{
			EmployeeNumber: emp.EmployeeNumber,
			Name:           emp.Name,
			TotalDays:      emp.TotalDays,
		}
		for _, day := range emp.Days {
			if day.Shift == punch.ShiftOffDay {
				s.OffDays++
				continue
			}
			s.DaysWorked++
			s.TotalHours += day.HoursWorked

			payable := day.HoursWorked
			if IsDoubleTime(day.Date, holidays) {
				payable *= 2
				s.DoubleTimeDays++
			}
			s.PayableHours += payable

			if day.IsLate {
				s.LateDays++
			}
			if day.EarlyLeave {
				s.EarlyLeaveDays++
			}
			if day.CorrectedRecords {
				s.CorrectedDays++
			}
			if day.MissingCheckIn || day.MissingCheckOut {
				s.MissingPunchDay++
			}
		}
		s.TotalHours = round2(s.TotalHours)
		s.PayableHours = round2(s.PayableHours)
		summaries = append(summaries, s)
	}
	return summaries
}

// ExportRows flattens employee records into the reporting shape.
func ExportRows(records []timecard.EmployeeRecord) []timecard.ExportRow {
	var rows []timecard.ExportRow
	for _, emp := range records {
		for _, day := range emp.Days {
			row := timecard.ExportRow{
				EmployeeNumber: emp.EmployeeNumber,
				Name:           emp.Name,
				Date:           day.Date,
				HoursWorked:    day.HoursWorked,
				Shift:          string(day.Shift),
				Approved:       day.Approved,
				IsLate:         day.IsLate,
				EarlyLeave:     day.EarlyLeave,
				PenaltyMinutes: day.PenaltyMinutes,
				Notes:          day.Notes,
			}
			if day.FirstCheckIn != nil {
				row.CheckIn = day.FirstCheckIn.Format("2006-01-02 15:04:05")
			}
			if day.LastCheckOut != nil {
				row.CheckOut = day.LastCheckOut.Format("2006-01-02 15:04:05")
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
