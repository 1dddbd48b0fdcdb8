package reconcile

import (
	"testing"
	"time"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder() *Builder {
	return NewBuilder(NewCalculator(DefaultRules()))
}

// resolved builds a post-resolution punch with its working day already
// assigned, the way punches leave the resolver.
func resolved(seq int, ts time.Time, status punch.Status, shift punch.ShiftType) punch.Punch {
	return punch.Punch{
		EmployeeNumber: "1001",
		EmployeeName:   "Test Employee",
		Time:           ts,
		RawStatus:      status,
		Status:         status,
		Seq:            seq,
		Shift:          shift,
		WorkDay:        punch.DayKey(ts),
	}
}

func TestBuildPairsSimpleDay(t *testing.T) {
	b := newBuilder()

	days := b.Build("1001", "Test Employee", []punch.Punch{
		resolved(1, ts(24, 8, 0), punch.StatusCheckIn, punch.ShiftCanteen),
		resolved(2, ts(24, 17, 0), punch.StatusCheckOut, punch.ShiftCanteen),
	})
	require.Len(t, days, 1)

	d := days[0]
	assert.Equal(t, "2025-03-24", d.Date)
	assert.Equal(t, "1001", d.EmployeeNumber)
	assert.InDelta(t, 9.00, d.HoursWorked, 0.001)
	assert.False(t, d.MissingCheckIn)
	assert.False(t, d.MissingCheckOut)
	assert.False(t, d.IsCrossDay)
	assert.Len(t, d.AllTimeRecords, 2)
}

func TestBuildNightShiftSingleRecord(t *testing.T) {
	b := newBuilder()

	in := resolved(1, ts(24, 20, 57), punch.StatusCheckIn, punch.ShiftNight)
	out := resolved(2, ts(25, 5, 53), punch.StatusCheckOut, punch.ShiftNight)
	out.WorkDay = "2025-03-24" // the resolver attributes the checkout to the evening's day

	days := b.Build("1001", "Test Employee", []punch.Punch{in, out})
	require.Len(t, days, 1)

	d := days[0]
	assert.Equal(t, "2025-03-24", d.Date)
	assert.True(t, d.IsCrossDay)
	assert.InDelta(t, 9.00, d.HoursWorked, 0.001)
	assert.Contains(t, d.Notes, "Night shift")
}

func TestBuildFillsOffDayGaps(t *testing.T) {
	b := newBuilder()

	days := b.Build("1001", "Test Employee", []punch.Punch{
		resolved(1, ts(24, 8, 0), punch.StatusCheckIn, punch.ShiftCanteen),
		resolved(2, ts(24, 17, 0), punch.StatusCheckOut, punch.ShiftCanteen),
		resolved(3, ts(27, 8, 0), punch.StatusCheckIn, punch.ShiftCanteen),
		resolved(4, ts(27, 17, 0), punch.StatusCheckOut, punch.ShiftCanteen),
	})
	require.Len(t, days, 4)

	assert.Equal(t, "2025-03-24", days[0].Date)
	assert.Equal(t, "2025-03-25", days[1].Date)
	assert.Equal(t, punch.ShiftOffDay, days[1].Shift)
	assert.Equal(t, "OFF-DAY", days[1].Notes)
	assert.Zero(t, days[1].HoursWorked)
	assert.Equal(t, "2025-03-26", days[2].Date)
	assert.Equal(t, punch.ShiftOffDay, days[2].Shift)
	assert.Equal(t, "2025-03-27", days[3].Date)
	assert.InDelta(t, 9.00, days[3].HoursWorked, 0.001)
}

func TestBuildOrphanedPunches(t *testing.T) {
	b := newBuilder()

	// Day 24 has only a check-in, day 25 only a check-out.
	days := b.Build("1001", "Test Employee", []punch.Punch{
		resolved(1, ts(24, 8, 2), punch.StatusCheckIn, punch.ShiftCanteen),
		resolved(2, ts(25, 8, 5), punch.StatusCheckIn, punch.ShiftCanteen),
		resolved(3, ts(25, 17, 1), punch.StatusCheckOut, punch.ShiftCanteen),
	})
	require.Len(t, days, 2)

	assert.True(t, days[0].MissingCheckOut)
	assert.False(t, days[0].MissingCheckIn)
	assert.Zero(t, days[0].HoursWorked)
	assert.Contains(t, days[0].Notes, "needs review")

	assert.False(t, days[1].MissingCheckOut)
	assert.InDelta(t, 9.00, days[1].HoursWorked, 0.001)
}

func TestBuildLoneCheckOut(t *testing.T) {
	b := newBuilder()

	days := b.Build("1001", "Test Employee", []punch.Punch{
		resolved(1, ts(24, 17, 0), punch.StatusCheckOut, punch.ShiftCanteen),
	})
	require.Len(t, days, 1)

	assert.True(t, days[0].MissingCheckIn)
	assert.Zero(t, days[0].HoursWorked)
	assert.Contains(t, days[0].Notes, "needs review")
}

// An orphan check-out hours before an orphan check-in is not a shift: the
// merged day must keep zero hours and a review note, never a midnight
// wraparound.
func TestBuildOutOfOrderOrphansStayFlagged(t *testing.T) {
	b := newBuilder()

	days := b.Build("1001", "Test Employee", []punch.Punch{
		resolved(1, ts(24, 9, 0), punch.StatusCheckOut, punch.ShiftMorning),
		resolved(2, ts(24, 12, 0), punch.StatusCheckIn, punch.ShiftEvening),
	})
	require.Len(t, days, 1)

	d := days[0]
	assert.Zero(t, d.HoursWorked)
	assert.False(t, d.ExcessiveOvertime)
	assert.False(t, d.IsCrossDay)
	assert.False(t, d.IsLate)
	assert.False(t, d.EarlyLeave)
	assert.Contains(t, d.Notes, "needs review")
	assert.Len(t, d.AllTimeRecords, 2)
}

func TestBuildMergesSegmentsIntoOneRecord(t *testing.T) {
	b := newBuilder()

	// Two resolved segments on the same working day collapse into one
	// record spanning first in to last out.
	days := b.Build("1001", "Test Employee", []punch.Punch{
		resolved(1, ts(24, 6, 30), punch.StatusCheckIn, punch.ShiftMorning),
		resolved(2, ts(24, 10, 0), punch.StatusCheckOut, punch.ShiftMorning),
		resolved(3, ts(24, 12, 30), punch.StatusCheckIn, punch.ShiftEvening),
		resolved(4, ts(24, 16, 0), punch.StatusCheckOut, punch.ShiftEvening),
	})
	require.Len(t, days, 1)

	d := days[0]
	require.NotNil(t, d.FirstCheckIn)
	require.NotNil(t, d.LastCheckOut)
	assert.Equal(t, ts(24, 6, 30), *d.FirstCheckIn)
	assert.Equal(t, ts(24, 16, 0), *d.LastCheckOut)
	assert.Contains(t, d.Notes, "merged")
	assert.Len(t, d.AllTimeRecords, 4)
}

func TestBuildSkipsSuppressedPunches(t *testing.T) {
	b := newBuilder()

	dup := resolved(2, ts(24, 8, 15), punch.StatusCheckIn, punch.ShiftCanteen)
	dup.Suppressed = true
	dup.Mislabeled = true

	days := b.Build("1001", "Test Employee", []punch.Punch{
		resolved(1, ts(24, 8, 0), punch.StatusCheckIn, punch.ShiftCanteen),
		dup,
		resolved(3, ts(24, 17, 0), punch.StatusCheckOut, punch.ShiftCanteen),
	})
	require.Len(t, days, 1)

	d := days[0]
	require.NotNil(t, d.FirstCheckIn)
	assert.Equal(t, ts(24, 8, 0), *d.FirstCheckIn)
	// Suppressed punches stay visible in the audit trail.
	assert.Len(t, d.AllTimeRecords, 3)
}

func TestBuildFlagsCorrectedRecords(t *testing.T) {
	b := newBuilder()

	in := resolved(1, ts(24, 8, 55), punch.StatusCheckIn, punch.ShiftCanteen)
	in.RawStatus = punch.StatusCheckOut
	in.Mislabeled = true
	out := resolved(2, ts(24, 17, 40), punch.StatusCheckOut, punch.ShiftCanteen)
	out.RawStatus = punch.StatusCheckIn
	out.Mislabeled = true

	days := b.Build("1001", "Test Employee", []punch.Punch{in, out})
	require.Len(t, days, 1)
	assert.True(t, days[0].CorrectedRecords)
}

func TestBuildEmptyInput(t *testing.T) {
	b := newBuilder()
	assert.Empty(t, b.Build("1001", "Test Employee", nil))
}

func TestBuildExcessiveSpanFlagged(t *testing.T) {
	b := newBuilder()

	days := b.Build("1001", "Test Employee", []punch.Punch{
		resolved(1, ts(24, 5, 0), punch.StatusCheckIn, punch.ShiftMorning),
		resolved(2, ts(24, 21, 30), punch.StatusCheckOut, punch.ShiftMorning),
	})
	require.Len(t, days, 1)

	assert.True(t, days[0].ExcessiveOvertime)
	assert.InDelta(t, 15.00, days[0].HoursWorked, 0.001)
}

func TestBuildLatenessFlag(t *testing.T) {
	b := newBuilder()

	// Morning shift starts 05:00 with no grace.
	days := b.Build("1001", "Test Employee", []punch.Punch{
		resolved(1, ts(24, 5, 12), punch.StatusCheckIn, punch.ShiftMorning),
		resolved(2, ts(24, 14, 2), punch.StatusCheckOut, punch.ShiftMorning),
	})
	require.Len(t, days, 1)
	assert.True(t, days[0].IsLate)
	assert.False(t, days[0].EarlyLeave)
}

func TestBuildRecordsSortedAndGapFree(t *testing.T) {
	b := newBuilder()

	var in []punch.Punch
	seq := 1
	for _, day := range []int{28, 24, 26} {
		in = append(in,
			resolved(seq, ts(day, 8, 0), punch.StatusCheckIn, punch.ShiftCanteen),
			resolved(seq+1, ts(day, 17, 0), punch.StatusCheckOut, punch.ShiftCanteen),
		)
		seq += 2
	}

	days := b.Build("1001", "Test Employee", in)
	require.Len(t, days, 5)

	prev, err := time.Parse("2006-01-02", days[0].Date)
	require.NoError(t, err)
	for _, d := range days[1:] {
		cur, err := time.Parse("2006-01-02", d.Date)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 1), cur)
		prev = cur
	}
}
