package postgresql

import (
	"context"
	"fmt"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
	"github.com/attendly/timeclock-backend-go/internal/domain/timecard"
	"github.com/attendly/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timecardRepository struct {
	db *database.DB
}

func NewTimecardRepository(db *database.DB) timecard.TimecardRepository {
	return &timecardRepository{db: db}
}

// DeleteForEmployeeDateRange implements timecard.TimecardRepository.
func (r *timecardRepository) DeleteForEmployeeDateRange(ctx context.Context, employeeNumber, startDate, endDate string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM time_records
		WHERE employee_number = $1
		  AND date >= $2
		  AND date <= $3
	`

	if _, err := q.Exec(ctx, query, employeeNumber, startDate, endDate); err != nil {
		return fmt.Errorf("failed to delete time records: %w", err)
	}
	return nil
}

// InsertTimeRecords implements timecard.TimecardRepository.
func (r *timecardRepository) InsertTimeRecords(ctx context.Context, rows []timecard.TimeRecordRow) error {
	if len(rows) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_records (
			id, employee_number, date, timestamp, status, shift,
			hours_worked, penalty_minutes, is_late, early_leave,
			approved, corrected, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	for _, row := range rows {
		_, err := q.Exec(ctx, query,
			row.ID,
			row.EmployeeNumber,
			row.Date,
			row.Timestamp,
			row.Status,
			row.Shift,
			row.HoursWorked,
			row.PenaltyMinutes,
			row.IsLate,
			row.EarlyLeave,
			row.Approved,
			row.Corrected,
			row.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert time record: %w", err)
		}
	}
	return nil
}

// List implements timecard.TimecardRepository.
func (r *timecardRepository) List(ctx context.Context, filter timecard.RecordFilter) ([]timecard.TimeRecordRow, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.EmployeeNumber != nil && *filter.EmployeeNumber != "" {
		whereClause += fmt.Sprintf(" AND employee_number = $%d", argIndex)
		args = append(args, *filter.EmployeeNumber)
		argIndex++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClause += fmt.Sprintf(" AND date >= $%d", argIndex)
		args = append(args, *filter.StartDate)
		argIndex++
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClause += fmt.Sprintf(" AND date <= $%d", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}

	if filter.ApprovedOnly {
		whereClause += " AND approved = true"
	}

	query := fmt.Sprintf(`
		SELECT id, employee_number, date, timestamp, status, shift,
			   hours_worked, penalty_minutes, is_late, early_leave,
			   approved, corrected, notes
		FROM time_records
		%s
		ORDER BY employee_number, date, status
	`, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time records: %w", err)
	}
	defer rows.Close()

	var records []timecard.TimeRecordRow
	for rows.Next() {
		row, err := scanTimeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, row)
	}
	return records, rows.Err()
}

// GetDay implements timecard.TimecardRepository. The id may belong to either
// the check-in or the check-out row; the returned record carries both.
func (r *timecardRepository) GetDay(ctx context.Context, id string) (timecard.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT tr.id, tr.employee_number, tr.date, tr.timestamp, tr.status, tr.shift,
			   tr.hours_worked, tr.penalty_minutes, tr.is_late, tr.early_leave,
			   tr.approved, tr.corrected, tr.notes
		FROM time_records tr
		WHERE (tr.employee_number, tr.date) IN (
			SELECT employee_number, date FROM time_records WHERE id = $1
		)
		ORDER BY tr.status
	`

	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return timecard.DailyRecord{}, fmt.Errorf("failed to get daily record: %w", err)
	}
	defer rows.Close()

	var pair []timecard.TimeRecordRow
	for rows.Next() {
		row, err := scanTimeRecord(rows)
		if err != nil {
			return timecard.DailyRecord{}, err
		}
		pair = append(pair, row)
	}
	if err := rows.Err(); err != nil {
		return timecard.DailyRecord{}, err
	}
	if len(pair) == 0 {
		return timecard.DailyRecord{}, timecard.ErrRecordNotFound
	}

	return timecard.FromRows(pair), nil
}

// UpdateDay implements timecard.TimecardRepository. Both persisted rows of
// the day are rewritten so they never drift apart.
func (r *timecardRepository) UpdateDay(ctx context.Context, day timecard.DailyRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_records
		SET timestamp = $1, shift = $2, hours_worked = $3, penalty_minutes = $4,
			is_late = $5, early_leave = $6, corrected = $7, notes = $8,
			updated_at = NOW()
		WHERE employee_number = $9 AND date = $10 AND status = $11
	`

	for _, row := range day.Rows() {
		tag, err := q.Exec(ctx, query,
			row.Timestamp,
			row.Shift,
			row.HoursWorked,
			row.PenaltyMinutes,
			row.IsLate,
			row.EarlyLeave,
			row.Corrected,
			row.Notes,
			day.EmployeeNumber,
			day.Date,
			row.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to update time record: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return timecard.ErrRecordNotFound
		}
	}
	return nil
}

// SetApproved implements timecard.TimecardRepository. Approval applies to the
// whole day, so sibling rows of any named id are approved with it.
func (r *timecardRepository) SetApproved(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_records
		SET approved = true, updated_at = NOW()
		WHERE (employee_number, date) IN (
			SELECT employee_number, date FROM time_records WHERE id = ANY($1)
		)
	`

	tag, err := q.Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to approve time records: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ApprovedDates implements timecard.TimecardRepository.
func (r *timecardRepository) ApprovedDates(ctx context.Context, employeeNumber string) (map[string]bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT date
		FROM time_records
		WHERE employee_number = $1
		  AND approved = true
	`

	rows, err := q.Query(ctx, query, employeeNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[string]bool)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates[date] = true
	}
	return dates, rows.Err()
}

func scanTimeRecord(rows pgx.Rows) (timecard.TimeRecordRow, error) {
	var row timecard.TimeRecordRow
	var status, shift string
	err := rows.Scan(
		&row.ID, &row.EmployeeNumber, &row.Date, &row.Timestamp, &status, &shift,
		&row.HoursWorked, &row.PenaltyMinutes, &row.IsLate, &row.EarlyLeave,
		&row.Approved, &row.Corrected, &row.Notes,
	)
	if err != nil {
		return timecard.TimeRecordRow{}, fmt.Errorf("failed to scan time record: %w", err)
	}
	row.Status = punch.Status(status)
	row.Shift = punch.ShiftType(shift)
	return row, nil
}
