package exporter

import (
	"bytes"
	"fmt"

	"github.com/attendly/timeclock-backend-go/internal/domain/timecard"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Timecards"

var headers = []string{
	"Employee No", "Name", "Date", "Check In", "Check Out",
	"Hours", "Shift", "Approved", "Late", "Early Leave",
	"Penalty (min)", "Notes",
}

// Workbook renders flattened report rows into an xlsx workbook.
func Workbook(rows []timecard.ExportRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		values := []interface{}{
			row.EmployeeNumber, row.Name, row.Date, row.CheckIn, row.CheckOut,
			row.HoursWorked, row.Shift, row.Approved, row.IsLate, row.EarlyLeave,
			row.PenaltyMinutes, row.Notes,
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
