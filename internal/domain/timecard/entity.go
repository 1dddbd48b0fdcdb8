package timecard

import (
	"time"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
)

// DailyRecord is the reconciled attendance outcome for one employee on one
// working day. Date is the working-day key: for a night shift it is the day
// the shift started, even though the checkout lands on the next calendar day.
type DailyRecord struct {
	ID             string
	EmployeeNumber string
	EmployeeName   string
	Date           string // working-day key, "2006-01-02"
	FirstCheckIn   *time.Time
	LastCheckOut   *time.Time
	Shift          punch.ShiftType

	HoursWorked       float64
	PenaltyMinutes    int
	IsLate            bool
	EarlyLeave        bool
	ExcessiveOvertime bool
	IsCrossDay        bool

	MissingCheckIn   bool
	MissingCheckOut  bool
	CorrectedRecords bool

	// Approved is owned by the approval workflow; reconciliation never sets
	// it and re-imports preserve it.
	Approved bool
	Notes    string

	// AllTimeRecords is the audit trail of every punch (including suppressed
	// duplicates) that was attributed to this working day.
	AllTimeRecords []punch.AuditEntry
}

// EmployeeRecord is the full reconciled sequence for one employee, days
// ascending with OFF-DAY fillers so the range has no gaps.
type EmployeeRecord struct {
	EmployeeNumber string
	Name           string
	Days           []DailyRecord
	TotalDays      int
}

// PeriodSummary aggregates an employee's days for reporting. PayableHours
// applies the double-time multiplier for Fridays and holidays; HoursWorked on
// the individual records stays raw so worked hours remain auditable.
type PeriodSummary struct {
	EmployeeNumber  string  `json:"employee_number"`
	Name            string  `json:"name"`
	TotalDays       int     `json:"total_days"`
	DaysWorked      int     `json:"days_worked"`
	OffDays         int     `json:"off_days"`
	TotalHours      float64 `json:"total_hours"`
	PayableHours    float64 `json:"payable_hours"`
	DoubleTimeDays  int     `json:"double_time_days"`
	LateDays        int     `json:"late_days"`
	EarlyLeaveDays  int     `json:"early_leave_days"`
	CorrectedDays   int     `json:"corrected_days"`
	MissingPunchDay int     `json:"missing_punch_days"`
}

// TimeRecordRow is the persisted form of a daily record: one check-in row and
// one check-out row, mirroring the device export shape so the store stays
// backend-agnostic about reconciliation.
type TimeRecordRow struct {
	ID             string
	EmployeeNumber string
	Date           string
	Timestamp      *time.Time
	Status         punch.Status
	Shift          punch.ShiftType
	HoursWorked    float64
	PenaltyMinutes int
	IsLate         bool
	EarlyLeave     bool
	Approved       bool
	Corrected      bool
	Notes          string
}

// FromRows reassembles a daily record from its persisted rows. The record's
// ID is the check-in row's id when present, the check-out row's otherwise.
func FromRows(rows []TimeRecordRow) DailyRecord {
	var d DailyRecord
	for i, row := range rows {
		if i == 0 {
			d.EmployeeNumber = row.EmployeeNumber
			d.Date = row.Date
			d.Shift = row.Shift
			d.HoursWorked = row.HoursWorked
			d.PenaltyMinutes = row.PenaltyMinutes
			d.IsLate = row.IsLate
			d.EarlyLeave = row.EarlyLeave
			d.Approved = row.Approved
			d.CorrectedRecords = row.Corrected
			d.Notes = row.Notes
			d.ID = row.ID
		}
		switch row.Status {
		case punch.StatusCheckIn:
			d.FirstCheckIn = row.Timestamp
			d.ID = row.ID
		case punch.StatusCheckOut:
			d.LastCheckOut = row.Timestamp
		}
	}

	d.MissingCheckIn = d.FirstCheckIn == nil
	d.MissingCheckOut = d.LastCheckOut == nil
	if d.FirstCheckIn != nil && d.LastCheckOut != nil {
		d.IsCrossDay = d.FirstCheckIn.Format("2006-01-02") != d.LastCheckOut.Format("2006-01-02")
	}
	return d
}

// DaysFromRows groups persisted rows into daily records. Rows are expected in
// store order (employee, date, status), which the grouping preserves.
func DaysFromRows(rows []TimeRecordRow) []DailyRecord {
	var days []DailyRecord
	var group []TimeRecordRow
	flush := func() {
		if len(group) == 0 {
			return
		}
		days = append(days, FromRows(group))
		group = nil
	}
	for _, row := range rows {
		if len(group) > 0 &&
			(group[0].EmployeeNumber != row.EmployeeNumber || group[0].Date != row.Date) {
			flush()
		}
		group = append(group, row)
	}
	flush()
	return days
}

// Rows flattens a daily record into its two persisted punch-like rows.
func (d *DailyRecord) Rows() []TimeRecordRow {
	base := TimeRecordRow{
		EmployeeNumber: d.EmployeeNumber,
		Date:           d.Date,
		Shift:          d.Shift,
		HoursWorked:    d.HoursWorked,
		PenaltyMinutes: d.PenaltyMinutes,
		IsLate:         d.IsLate,
		EarlyLeave:     d.EarlyLeave,
		Approved:       d.Approved,
		Corrected:      d.CorrectedRecords,
		Notes:          d.Notes,
	}

	in := base
	in.Status = punch.StatusCheckIn
	in.Timestamp = d.FirstCheckIn

	out := base
	out.Status = punch.StatusCheckOut
	out.Timestamp = d.LastCheckOut

	return []TimeRecordRow{in, out}
}
