package holiday

import "context"

// HolidayRepository exposes the read-only holiday set consumed by the
// double-time pay rule.
type HolidayRepository interface {
	ListDates(ctx context.Context, startDate, endDate string) ([]Holiday, error)
}
