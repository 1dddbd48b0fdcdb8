package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
	"github.com/xuri/excelize/v2"
)

// column indexes of the device export layout, used when the sheet has no
// recognizable header row.
const (
	colTimestamp = 0
	colNumber    = 1
	colName      = 2
	colStatus    = 3
)

// Parse reads an xlsx attendance device export into raw import rows. Every
// sheet is read; a header row is detected by name and otherwise the default
// column layout applies. Blank rows are skipped here, malformed rows later by
// punch.FromRows so they end up in the import report.
func Parse(file io.Reader) ([]punch.ImportRow, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var out []punch.ImportRow
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		out = append(out, parseSheet(rows)...)
	}

	if len(out) == 0 {
		return nil, punch.ErrEmptyImport
	}
	return out, nil
}

func parseSheet(rows [][]string) []punch.ImportRow {
	if len(rows) == 0 {
		return nil
	}

	cols, hasHeader := detectHeader(rows[0])
	start := 0
	if hasHeader {
		start = 1
	}

	var out []punch.ImportRow
	for _, row := range rows[start:] {
		if isBlank(row) {
			continue
		}
		out = append(out, punch.ImportRow{
			Timestamp:      cell(row, cols[colTimestamp]),
			EmployeeNumber: cell(row, cols[colNumber]),
			EmployeeName:   cell(row, cols[colName]),
			StatusText:     cell(row, cols[colStatus]),
		})
	}
	return out
}

// headerLabels is the vocabulary device exports use for each logical column.
// Matching is exact on the normalized label, so a data row whose cells merely
// contain a label substring is never mistaken for a header.
var headerLabels = map[string]int{
	"date":            colTimestamp,
	"time":            colTimestamp,
	"datetime":        colTimestamp,
	"date/time":       colTimestamp,
	"no":              colNumber,
	"no.":             colNumber,
	"number":          colNumber,
	"employee no":     colNumber,
	"employee number": colNumber,
	"id":              colNumber,
	"employee id":     colNumber,
	"name":            colName,
	"employee name":   colName,
	"status":          colStatus,
	"state":           colStatus,
	"punch state":     colStatus,
	"clock status":    colStatus,
}

// detectHeader maps logical columns to sheet columns from the header row's
// labels. Device exports vary in column order but not much in vocabulary.
func detectHeader(header []string) ([4]int, bool) {
	cols := [4]int{colTimestamp, colNumber, colName, colStatus}
	found := false

	for i, raw := range header {
		label := strings.ToLower(strings.TrimSpace(raw))
		if logical, ok := headerLabels[label]; ok {
			cols[logical] = i
			found = true
		}
	}
	return cols, found
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
