package timecard

import (
	"time"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
	"github.com/attendly/timeclock-backend-go/internal/pkg/validator"
)

// ReconcileRequest carries raw punch rows for a dry-run reconciliation.
type ReconcileRequest struct {
	Rows []punch.ImportRow `json:"rows"`
}

func (r *ReconcileRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Rows) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: "at least one punch row is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReconcileResponse is the outcome of an import or dry run.
type ReconcileResponse struct {
	BatchID   string             `json:"batch_id,omitempty"`
	Employees []EmployeeResponse `json:"employees"`
	Summaries []PeriodSummary    `json:"summaries"`
	Report    punch.ImportReport `json:"import_report"`
}

type EmployeeResponse struct {
	EmployeeNumber string        `json:"employee_number"`
	Name           string        `json:"name"`
	TotalDays      int           `json:"total_days"`
	Days           []DayResponse `json:"days"`
}

type DayResponse struct {
	ID                string  `json:"id,omitempty"`
	Date              string  `json:"date"`
	Shift             string  `json:"shift"`
	CheckIn           *string `json:"check_in,omitempty"`
	CheckOut          *string `json:"check_out,omitempty"`
	HoursWorked       float64 `json:"hours_worked"`
	PenaltyMinutes    int     `json:"penalty_minutes"`
	IsLate            bool    `json:"is_late"`
	EarlyLeave        bool    `json:"early_leave"`
	ExcessiveOvertime bool    `json:"excessive_overtime"`
	IsCrossDay        bool    `json:"is_cross_day"`
	MissingCheckIn    bool    `json:"missing_check_in"`
	MissingCheckOut   bool    `json:"missing_check_out"`
	Corrected         bool    `json:"corrected"`
	Approved          bool    `json:"approved"`
	Notes             string  `json:"notes,omitempty"`
}

// EditDayRequest is a manual correction from the review UI. Times are either
// "15:04" / "15:04:05" on the record's own date or a full
// "2006-01-02 15:04:05" timestamp. SwapTimes exchanges check-in and
// check-out, for records where the device pair came through inverted.
type EditDayRequest struct {
	ID             string  `json:"-"`
	CheckIn        *string `json:"check_in,omitempty"`
	CheckOut       *string `json:"check_out,omitempty"`
	PenaltyMinutes *int    `json:"penalty_minutes,omitempty"`
	SwapTimes      bool    `json:"swap_times,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

func (r *EditDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "record id is required",
		})
	}

	if r.CheckIn != nil && *r.CheckIn != "" {
		if _, ok := validator.ParseClockEdit(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be HH:MM, HH:MM:SS or a full timestamp",
			})
		}
	}

	if r.CheckOut != nil && *r.CheckOut != "" {
		if _, ok := validator.ParseClockEdit(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be HH:MM, HH:MM:SS or a full timestamp",
			})
		}
	}

	if r.PenaltyMinutes != nil && *r.PenaltyMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "penalty_minutes",
			Message: "penalty_minutes cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApproveRequest marks a set of records approved in one pass.
type ApproveRequest struct {
	IDs []string `json:"ids"`
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.IDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "ids",
			Message: "at least one record id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordFilter narrows listing of persisted records.
type RecordFilter struct {
	EmployeeNumber *string
	StartDate      *string // YYYY-MM-DD
	EndDate        *string // YYYY-MM-DD
	ApprovedOnly   bool
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportRow is the flattened reporting shape consumed by the reporting
// collaborator.
type ExportRow struct {
	EmployeeNumber string  `json:"employee_number"`
	Name           string  `json:"name"`
	Date           string  `json:"date"`
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	HoursWorked    float64 `json:"hours_worked"`
	Shift          string  `json:"shift"`
	Approved       bool    `json:"approved"`
	IsLate         bool    `json:"is_late"`
	EarlyLeave     bool    `json:"early_leave"`
	PenaltyMinutes int     `json:"penalty_minutes"`
	Notes          string  `json:"notes"`
}

const clockFormat = "2006-01-02 15:04:05"

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(clockFormat)
	return &s
}

// ToDayResponse maps a daily record to its API shape.
func ToDayResponse(d DailyRecord) DayResponse {
	return DayResponse{
		ID:                d.ID,
		Date:              d.Date,
		Shift:             string(d.Shift),
		CheckIn:           formatClock(d.FirstCheckIn),
		CheckOut:          formatClock(d.LastCheckOut),
		HoursWorked:       d.HoursWorked,
		PenaltyMinutes:    d.PenaltyMinutes,
		IsLate:            d.IsLate,
		EarlyLeave:        d.EarlyLeave,
		ExcessiveOvertime: d.ExcessiveOvertime,
		IsCrossDay:        d.IsCrossDay,
		MissingCheckIn:    d.MissingCheckIn,
		MissingCheckOut:   d.MissingCheckOut,
		Corrected:         d.CorrectedRecords,
		Approved:          d.Approved,
		Notes:             d.Notes,
	}
}

// ToEmployeeResponse maps a reconciled employee to its API shape.
func ToEmployeeResponse(e EmployeeRecord) EmployeeResponse {
	days := make([]DayResponse, 0, len(e.Days))
	for _, d := range e.Days {
		days = append(days, ToDayResponse(d))
	}
	return EmployeeResponse{
		EmployeeNumber: e.EmployeeNumber,
		Name:           e.Name,
		TotalDays:      e.TotalDays,
		Days:           days,
	}
}
