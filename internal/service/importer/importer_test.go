package importer

import (
	"strings"
	"testing"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, sheets map[string][][]interface{}) *strings.Reader {
	t.Helper()
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cellRef, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cellRef, &row))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return strings.NewReader(buf.String())
}

func TestParseDefaultLayout(t *testing.T) {
	src := workbook(t, map[string][][]interface{}{
		"Attendance": {
			{"2025-03-24 08:00:00", "1001", "Alice", "Check In"},
			{"2025-03-24 17:02:00", "1001", "Alice", "Check Out"},
		},
	})

	rows, err := Parse(src)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, punch.ImportRow{
		Timestamp:      "2025-03-24 08:00:00",
		EmployeeNumber: "1001",
		EmployeeName:   "Alice",
		StatusText:     "Check In",
	}, rows[0])
	assert.Equal(t, "Check Out", rows[1].StatusText)
}

func TestParseHeaderReordersColumns(t *testing.T) {
	src := workbook(t, map[string][][]interface{}{
		"Attendance": {
			{"Employee No", "Name", "Date/Time", "Status"},
			{"1001", "Alice", "2025-03-24 08:00:00", "Check In"},
		},
	})

	rows, err := Parse(src)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1001", rows[0].EmployeeNumber)
	assert.Equal(t, "Alice", rows[0].EmployeeName)
	assert.Equal(t, "2025-03-24 08:00:00", rows[0].Timestamp)
	assert.Equal(t, "Check In", rows[0].StatusText)
}

func TestParseHeaderIsNotConsumedAsData(t *testing.T) {
	src := workbook(t, map[string][][]interface{}{
		"Attendance": {
			{"DateTime", "Number", "Name", "State"},
			{"2025-03-24 08:00:00", "1001", "Alice", "Check In"},
		},
	})

	rows, err := Parse(src)

	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

// A data-only sheet whose name cell happens to equal a short header word must
// not be treated as a header row.
func TestParseNoFalseHeaderOnDataRow(t *testing.T) {
	src := workbook(t, map[string][][]interface{}{
		"Attendance": {
			{"2025-03-24 08:00:00", "1001", "Norah", "Check In"},
		},
	})

	rows, err := Parse(src)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Norah", rows[0].EmployeeName)
}

func TestParseSkipsBlankRows(t *testing.T) {
	src := workbook(t, map[string][][]interface{}{
		"Attendance": {
			{"2025-03-24 08:00:00", "1001", "Alice", "Check In"},
			{"", "", "", ""},
			{"2025-03-24 17:02:00", "1001", "Alice", "Check Out"},
		},
	})

	rows, err := Parse(src)

	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParseReadsEverySheet(t *testing.T) {
	src := workbook(t, map[string][][]interface{}{
		"March": {
			{"2025-03-24 08:00:00", "1001", "Alice", "Check In"},
		},
		"April": {
			{"2025-04-01 08:00:00", "2002", "Bob", "Check In"},
		},
	})

	rows, err := Parse(src)

	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParseEmptyWorkbook(t *testing.T) {
	src := workbook(t, map[string][][]interface{}{
		"Attendance": {},
	})

	_, err := Parse(src)

	assert.ErrorIs(t, err, punch.ErrEmptyImport)
}

func TestParseRejectsNonWorkbook(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not a spreadsheet"))

	assert.Error(t, err)
}
