package timecard

import (
	"context"
	"io"
)

// TimecardService defines business logic for punch reconciliation and the
// review workflow around its output.
type TimecardService interface {
	// ImportFile parses an xlsx device export, reconciles it and persists
	// the result (delete-then-reinsert per employee/date range).
	ImportFile(ctx context.Context, file io.Reader) (ReconcileResponse, error)

	// Reconcile runs the engine over raw rows without persisting anything.
	Reconcile(ctx context.Context, req ReconcileRequest) (ReconcileResponse, error)

	// ListRecords retrieves persisted daily records.
	ListRecords(ctx context.Context, filter RecordFilter) ([]DayResponse, error)

	// EditDay applies a manual correction and recomputes the day.
	EditDay(ctx context.Context, req EditDayRequest) (DayResponse, error)

	// Approve bulk-approves records by id.
	Approve(ctx context.Context, req ApproveRequest) (int64, error)

	// Export returns flattened report rows for a filter.
	Export(ctx context.Context, filter RecordFilter) ([]ExportRow, error)

	// ExportWorkbook renders the export rows into an xlsx artifact and
	// returns its download URL.
	ExportWorkbook(ctx context.Context, filter RecordFilter) (string, error)
}
