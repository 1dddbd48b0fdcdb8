package timecard

import "context"

// TimecardRepository is the abstract record store. Reconciliation output is
// written delete-then-reinsert per employee/date range so a rerun is
// last-write-wins rather than a double insert.
type TimecardRepository interface {
	DeleteForEmployeeDateRange(ctx context.Context, employeeNumber, startDate, endDate string) error
	InsertTimeRecords(ctx context.Context, rows []TimeRecordRow) error
	List(ctx context.Context, filter RecordFilter) ([]TimeRecordRow, error)
	GetDay(ctx context.Context, id string) (DailyRecord, error)
	UpdateDay(ctx context.Context, day DailyRecord) error
	SetApproved(ctx context.Context, ids []string) (int64, error)
	// ApprovedDates returns the working-day keys already approved for an
	// employee, so a re-import does not reset reviewer decisions.
	ApprovedDates(ctx context.Context, employeeNumber string) (map[string]bool, error)
}
