package punch

import (
	"time"

	"github.com/attendly/timeclock-backend-go/internal/pkg/validator"
)

// ImportRow is one parsed row from the device export, before normalization.
type ImportRow struct {
	Timestamp      string `json:"timestamp"`
	EmployeeNumber string `json:"employee_number"`
	EmployeeName   string `json:"employee_name"`
	StatusText     string `json:"status_text"`
}

// SkippedRow records an import row that could not be parsed. The batch
// continues; skipped rows are reported, never silently dropped.
type SkippedRow struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
	Raw    ImportRow
}

// ImportReport summarizes a parse run over an import source.
type ImportReport struct {
	Imported int          `json:"imported"`
	Skipped  []SkippedRow `json:"skipped,omitempty"`
}

// FromRows converts import rows into punches, assigning Seq from row order.
// Unparseable rows go into the report instead of aborting the batch.
func FromRows(rows []ImportRow) ([]Punch, ImportReport) {
	punches := make([]Punch, 0, len(rows))
	report := ImportReport{}

	for i, row := range rows {
		p, reason := fromRow(row, i)
		if reason != "" {
			report.Skipped = append(report.Skipped, SkippedRow{Index: i, Reason: reason, Raw: row})
			continue
		}
		punches = append(punches, p)
	}
	report.Imported = len(punches)
	return punches, report
}

func fromRow(row ImportRow, seq int) (Punch, string) {
	if validator.IsEmpty(row.EmployeeNumber) {
		return Punch{}, "employee number is missing"
	}

	ts, ok := validator.ParseDeviceTimestamp(row.Timestamp)
	if !ok {
		return Punch{}, "unparseable timestamp: " + row.Timestamp
	}

	status, ok := ParseStatus(row.StatusText)
	if !ok {
		return Punch{}, "unrecognized status text: " + row.StatusText
	}

	return Punch{
		EmployeeNumber: row.EmployeeNumber,
		EmployeeName:   row.EmployeeName,
		Time:           ts,
		RawStatus:      status,
		Seq:            seq,
		Status:         status,
		Shift:          ShiftUnknown,
	}, ""
}

// AuditEntry is the per-punch audit trail absorbed into the owning daily
// record once resolution is complete.
type AuditEntry struct {
	Time           time.Time `json:"time"`
	OriginalStatus Status    `json:"original_status"`
	ResolvedStatus Status    `json:"resolved_status"`
	Mislabeled     bool      `json:"mislabeled"`
	Suppressed     bool      `json:"suppressed,omitempty"`
}
