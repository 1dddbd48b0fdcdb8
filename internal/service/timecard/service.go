package timecard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/attendly/timeclock-backend-go/internal/domain/employee"
	"github.com/attendly/timeclock-backend-go/internal/domain/holiday"
	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
	"github.com/attendly/timeclock-backend-go/internal/domain/timecard"
	"github.com/attendly/timeclock-backend-go/internal/pkg/database"
	"github.com/attendly/timeclock-backend-go/internal/repository/postgresql"
	"github.com/attendly/timeclock-backend-go/internal/service/exporter"
	"github.com/attendly/timeclock-backend-go/internal/service/file"
	"github.com/attendly/timeclock-backend-go/internal/service/importer"
	"github.com/attendly/timeclock-backend-go/internal/service/reconcile"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TimecardServiceImpl struct {
	db *database.DB
	timecard.TimecardRepository
	employee.EmployeeRepository
	holiday.HolidayRepository
	engine      *reconcile.Engine
	fileService file.FileService
}

func NewTimecardService(
	db *database.DB,
	timecardRepo timecard.TimecardRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	engine *reconcile.Engine,
	fileService file.FileService,
) timecard.TimecardService {
	return &TimecardServiceImpl{
		db:                 db,
		TimecardRepository: timecardRepo,
		EmployeeRepository: employeeRepo,
		HolidayRepository:  holidayRepo,
		engine:             engine,
		fileService:        fileService,
	}
}

// ImportFile implements timecard.TimecardService.
func (s *TimecardServiceImpl) ImportFile(ctx context.Context, fileReader io.Reader) (timecard.ReconcileResponse, error) {
	raw, err := io.ReadAll(fileReader)
	if err != nil {
		return timecard.ReconcileResponse{}, fmt.Errorf("failed to read upload: %w", err)
	}

	rows, err := importer.Parse(bytes.NewReader(raw))
	if err != nil {
		return timecard.ReconcileResponse{}, err
	}

	punches, report := punch.FromRows(rows)
	if len(punches) == 0 {
		return timecard.ReconcileResponse{}, punch.ErrEmptyImport
	}

	records := s.engine.Reconcile(punches)
	batchID := uuid.New().String()

	// The archive is best effort; a storage hiccup must not lose the
	// reconciliation itself.
	if _, err := s.fileService.SaveImportArchive(ctx, batchID, bytes.NewReader(raw), "import.xlsx"); err != nil {
		report.Skipped = append(report.Skipped, punch.SkippedRow{
			Index:  -1,
			Reason: "import archive not stored: " + err.Error(),
		})
	}

	if err := s.persist(ctx, records); err != nil {
		return timecard.ReconcileResponse{}, err
	}

	resp, err := s.buildResponse(ctx, records, report)
	if err != nil {
		return timecard.ReconcileResponse{}, err
	}
	resp.BatchID = batchID
	return resp, nil
}

// Reconcile implements timecard.TimecardService. Nothing is persisted; this
// is the dry-run surface the review UI uses for previews.
func (s *TimecardServiceImpl) Reconcile(ctx context.Context, req timecard.ReconcileRequest) (timecard.ReconcileResponse, error) {
	if err := req.Validate(); err != nil {
		return timecard.ReconcileResponse{}, err
	}

	punches, report := punch.FromRows(req.Rows)
	if len(punches) == 0 {
		return timecard.ReconcileResponse{}, punch.ErrEmptyImport
	}

	records := s.engine.Reconcile(punches)
	return s.buildResponse(ctx, records, report)
}

// persist writes reconciliation output delete-then-reinsert per employee and
// date range, inside one transaction. Approval decisions made on previous
// imports are carried over by date before the old rows go away.
func (s *TimecardServiceImpl) persist(ctx context.Context, records []timecard.EmployeeRecord) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, emp := range records {
			if len(emp.Days) == 0 {
				continue
			}

			if err := s.ensureEmployee(txCtx, emp); err != nil {
				return err
			}

			approved, err := s.TimecardRepository.ApprovedDates(txCtx, emp.EmployeeNumber)
			if err != nil {
				return err
			}

			startDate := emp.Days[0].Date
			endDate := emp.Days[len(emp.Days)-1].Date
			if err := s.TimecardRepository.DeleteForEmployeeDateRange(txCtx, emp.EmployeeNumber, startDate, endDate); err != nil {
				return err
			}

			var rows []timecard.TimeRecordRow
			for _, day := range emp.Days {
				if approved[day.Date] {
					day.Approved = true
				}
				for _, row := range day.Rows() {
					row.ID = uuid.New().String()
					rows = append(rows, row)
				}
			}
			if err := s.TimecardRepository.InsertTimeRecords(txCtx, rows); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *TimecardServiceImpl) ensureEmployee(ctx context.Context, emp timecard.EmployeeRecord) error {
	_, err := s.EmployeeRepository.FindByNumber(ctx, emp.EmployeeNumber)
	if err == nil {
		return nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return err
	}

	_, err = s.EmployeeRepository.Create(ctx, employee.Employee{
		EmployeeNumber: emp.EmployeeNumber,
		Name:           emp.Name,
	})
	if err != nil && !errors.Is(err, employee.ErrEmployeeNumberExists) {
		return err
	}
	return nil
}

func (s *TimecardServiceImpl) buildResponse(ctx context.Context, records []timecard.EmployeeRecord, report punch.ImportReport) (timecard.ReconcileResponse, error) {
	holidays, err := s.holidaySet(ctx, records)
	if err != nil {
		return timecard.ReconcileResponse{}, err
	}

	employees := make([]timecard.EmployeeResponse, 0, len(records))
	for _, emp := range records {
		employees = append(employees, timecard.ToEmployeeResponse(emp))
	}

	return timecard.ReconcileResponse{
		Employees: employees,
		Summaries: reconcile.Summarize(records, holidays),
		Report:    report,
	}, nil
}

// holidaySet loads the holiday dates overlapping the reconciled range.
func (s *TimecardServiceImpl) holidaySet(ctx context.Context, records []timecard.EmployeeRecord) (map[string]bool, error) {
	var start, end string
	for _, emp := range records {
		if len(emp.Days) == 0 {
			continue
		}
		if start == "" || emp.Days[0].Date < start {
			start = emp.Days[0].Date
		}
		if last := emp.Days[len(emp.Days)-1].Date; last > end {
			end = last
		}
	}
	if start == "" {
		return nil, nil
	}

	holidays, err := s.HolidayRepository.ListDates(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	return reconcile.DoubleTimeSet(holidays), nil
}

// ListRecords implements timecard.TimecardService.
func (s *TimecardServiceImpl) ListRecords(ctx context.Context, filter timecard.RecordFilter) ([]timecard.DayResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.TimecardRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	days := timecard.DaysFromRows(rows)
	out := make([]timecard.DayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, timecard.ToDayResponse(d))
	}
	return out, nil
}

// EditDay implements timecard.TimecardService.
func (s *TimecardServiceImpl) EditDay(ctx context.Context, req timecard.EditDayRequest) (timecard.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return timecard.DayResponse{}, err
	}

	day, err := s.TimecardRepository.GetDay(ctx, req.ID)
	if err != nil {
		return timecard.DayResponse{}, err
	}

	updated, err := s.engine.RecomputeDay(day, req)
	if err != nil {
		return timecard.DayResponse{}, err
	}
	// Manual intervention always counts as a correction.
	updated.CorrectedRecords = true

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		return s.TimecardRepository.UpdateDay(txCtx, updated)
	})
	if err != nil {
		return timecard.DayResponse{}, err
	}

	return timecard.ToDayResponse(updated), nil
}

// Approve implements timecard.TimecardService.
func (s *TimecardServiceImpl) Approve(ctx context.Context, req timecard.ApproveRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	var affected int64
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		n, err := s.TimecardRepository.SetApproved(txCtx, req.IDs)
		if err != nil {
			return err
		}
		affected = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, timecard.ErrNothingToApprove
	}
	return affected, nil
}

// Export implements timecard.TimecardService.
func (s *TimecardServiceImpl) Export(ctx context.Context, filter timecard.RecordFilter) ([]timecard.ExportRow, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.TimecardRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	names, err := s.employeeNames(ctx)
	if err != nil {
		return nil, err
	}

	records := groupDays(timecard.DaysFromRows(rows), names)
	return reconcile.ExportRows(records), nil
}

// ExportWorkbook implements timecard.TimecardService.
func (s *TimecardServiceImpl) ExportWorkbook(ctx context.Context, filter timecard.RecordFilter) (string, error) {
	rows, err := s.Export(ctx, filter)
	if err != nil {
		return "", err
	}

	buf, err := exporter.Workbook(rows)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("timecards-%s.xlsx", time.Now().Format("20060102-150405"))
	path, err := s.fileService.SaveExportWorkbook(ctx, buf, filename)
	if err != nil {
		return "", err
	}

	return s.fileService.GetFileURL(ctx, path, 24*time.Hour)
}

func (s *TimecardServiceImpl) employeeNames(ctx context.Context) (map[string]string, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(employees))
	for _, emp := range employees {
		names[emp.EmployeeNumber] = emp.Name
	}
	return names, nil
}

// groupDays folds store-ordered days back into per-employee records.
func groupDays(days []timecard.DailyRecord, names map[string]string) []timecard.EmployeeRecord {
	var records []timecard.EmployeeRecord
	for _, day := range days {
		if len(records) == 0 || records[len(records)-1].EmployeeNumber != day.EmployeeNumber {
			records = append(records, timecard.EmployeeRecord{
				EmployeeNumber: day.EmployeeNumber,
				Name:           names[day.EmployeeNumber],
			})
		}
		rec := &records[len(records)-1]
		rec.Days = append(rec.Days, day)
		rec.TotalDays++
	}
	return records
}
