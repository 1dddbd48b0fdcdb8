package reconcile

import (
	"testing"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
	"github.com/attendly/timeclock-backend-go/internal/domain/timecard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestReconcileEndToEnd(t *testing.T) {
	e := NewEngine(DefaultRules())

	punches := []punch.Punch{
		// 1001: a flipped day-shift pair followed by a clean day.
		mkPunch(1, ts(24, 8, 55), punch.StatusCheckOut),
		mkPunch(2, ts(24, 17, 40), punch.StatusCheckIn),
		mkPunch(3, ts(25, 8, 0), punch.StatusCheckIn),
		mkPunch(4, ts(25, 17, 0), punch.StatusCheckOut),
		// 2002: a night worker crossing midnight.
		{EmployeeNumber: "2002", EmployeeName: "Night Worker", Time: ts(24, 20, 57),
			RawStatus: punch.StatusCheckIn, Status: punch.StatusCheckIn, Seq: 5, Shift: punch.ShiftUnknown},
		{EmployeeNumber: "2002", EmployeeName: "Night Worker", Time: ts(25, 5, 53),
			RawStatus: punch.StatusCheckOut, Status: punch.StatusCheckOut, Seq: 6, Shift: punch.ShiftUnknown},
	}

	records := e.Reconcile(punches)
	require.Len(t, records, 2)

	// Employees come back in number order.
	assert.Equal(t, "1001", records[0].EmployeeNumber)
	assert.Equal(t, "2002", records[1].EmployeeNumber)

	first := records[0]
	require.Len(t, first.Days, 2)
	assert.Equal(t, 2, first.TotalDays)
	assert.True(t, first.Days[0].CorrectedRecords)
	assert.InDelta(t, 9.00, first.Days[0].HoursWorked, 0.001)
	assert.InDelta(t, 9.00, first.Days[1].HoursWorked, 0.001)

	night := records[1]
	require.Len(t, night.Days, 1)
	d := night.Days[0]
	assert.Equal(t, "2025-03-24", d.Date)
	assert.Equal(t, punch.ShiftNight, d.Shift)
	assert.True(t, d.IsCrossDay)
	assert.InDelta(t, 9.00, d.HoursWorked, 0.001)
}

func TestReconcileDeterministic(t *testing.T) {
	e := NewEngine(DefaultRules())

	punches := []punch.Punch{
		mkPunch(1, ts(24, 8, 55), punch.StatusCheckOut),
		mkPunch(2, ts(24, 17, 40), punch.StatusCheckIn),
		mkPunch(3, ts(25, 20, 57), punch.StatusCheckIn),
		mkPunch(4, ts(26, 5, 53), punch.StatusCheckOut),
		mkPunch(5, ts(27, 8, 0), punch.StatusCheckIn),
		mkPunch(6, ts(27, 8, 15), punch.StatusCheckIn),
		mkPunch(7, ts(27, 17, 5), punch.StatusCheckOut),
	}

	first := e.Reconcile(punches)
	second := e.Reconcile(punches)
	assert.Equal(t, first, second)
}

// A two-punch day the resolver cannot pair (check-out before check-in, span
// too short to flip) must come out flagged with no payable hours.
func TestReconcileOutOfOrderDayStaysFlagged(t *testing.T) {
	e := NewEngine(DefaultRules())

	records := e.Reconcile([]punch.Punch{
		mkPunch(1, ts(24, 9, 0), punch.StatusCheckOut),
		mkPunch(2, ts(24, 12, 0), punch.StatusCheckIn),
	})
	require.Len(t, records, 1)
	require.Len(t, records[0].Days, 1)

	d := records[0].Days[0]
	assert.Zero(t, d.HoursWorked)
	assert.False(t, d.ExcessiveOvertime)
	assert.False(t, d.MissingCheckIn)
	assert.False(t, d.MissingCheckOut)
	assert.Contains(t, d.Notes, "needs review")
}

func TestRecomputeDayClockEdit(t *testing.T) {
	e := NewEngine(DefaultRules())

	in := ts(24, 8, 0)
	out := ts(24, 16, 0)
	day := timecard.DailyRecord{
		Date:         "2025-03-24",
		Shift:        punch.ShiftCanteen,
		FirstCheckIn: &in,
		LastCheckOut: &out,
		HoursWorked:  8.0,
	}

	got, err := e.RecomputeDay(day, timecard.EditDayRequest{CheckOut: strptr("17:00")})
	require.NoError(t, err)

	require.NotNil(t, got.LastCheckOut)
	assert.Equal(t, ts(24, 17, 0), *got.LastCheckOut)
	assert.InDelta(t, 9.00, got.HoursWorked, 0.001)
}

func TestRecomputeDayNightClockEditLandsNextDay(t *testing.T) {
	e := NewEngine(DefaultRules())

	in := ts(24, 20, 57)
	out := ts(25, 5, 10)
	day := timecard.DailyRecord{
		Date:         "2025-03-24",
		Shift:        punch.ShiftNight,
		FirstCheckIn: &in,
		LastCheckOut: &out,
	}

	got, err := e.RecomputeDay(day, timecard.EditDayRequest{CheckOut: strptr("05:53")})
	require.NoError(t, err)

	// A bare early-morning clock on a night record means the next calendar day.
	assert.Equal(t, ts(25, 5, 53), *got.LastCheckOut)
	assert.True(t, got.IsCrossDay)
	assert.InDelta(t, 9.00, got.HoursWorked, 0.001)
}

func TestRecomputeDaySwapTimes(t *testing.T) {
	e := NewEngine(DefaultRules())

	in := ts(24, 17, 40)
	out := ts(24, 8, 55)
	day := timecard.DailyRecord{
		Date:         "2025-03-24",
		Shift:        punch.ShiftCanteen,
		FirstCheckIn: &in,
		LastCheckOut: &out,
	}

	got, err := e.RecomputeDay(day, timecard.EditDayRequest{SwapTimes: true})
	require.NoError(t, err)

	assert.Equal(t, ts(24, 8, 55), *got.FirstCheckIn)
	assert.Equal(t, ts(24, 17, 40), *got.LastCheckOut)
	assert.InDelta(t, 9.00, got.HoursWorked, 0.001)
}

func TestRecomputeDaySwapWithoutBothTimes(t *testing.T) {
	e := NewEngine(DefaultRules())

	in := ts(24, 8, 0)
	day := timecard.DailyRecord{Date: "2025-03-24", Shift: punch.ShiftCanteen, FirstCheckIn: &in}

	_, err := e.RecomputeDay(day, timecard.EditDayRequest{SwapTimes: true})
	assert.ErrorIs(t, err, timecard.ErrNoTimesToSwap)
}

func TestRecomputeDayRejectsInvertedPair(t *testing.T) {
	e := NewEngine(DefaultRules())

	in := ts(24, 8, 0)
	out := ts(24, 17, 0)
	day := timecard.DailyRecord{
		Date:         "2025-03-24",
		Shift:        punch.ShiftCanteen,
		FirstCheckIn: &in,
		LastCheckOut: &out,
	}

	_, err := e.RecomputeDay(day, timecard.EditDayRequest{CheckOut: strptr("07:30")})
	assert.ErrorIs(t, err, timecard.ErrCheckOutBeforeCheckIn)
}

func TestRecomputeDayPenalty(t *testing.T) {
	e := NewEngine(DefaultRules())

	in := ts(24, 8, 0)
	out := ts(24, 16, 15)
	day := timecard.DailyRecord{
		Date:         "2025-03-24",
		Shift:        punch.ShiftCanteen,
		FirstCheckIn: &in,
		LastCheckOut: &out,
	}

	got, err := e.RecomputeDay(day, timecard.EditDayRequest{PenaltyMinutes: intptr(30)})
	require.NoError(t, err)
	assert.Equal(t, 30, got.PenaltyMinutes)
	assert.InDelta(t, 7.75, got.HoursWorked, 0.001)

	_, err = e.RecomputeDay(day, timecard.EditDayRequest{PenaltyMinutes: intptr(-5)})
	assert.ErrorIs(t, err, timecard.ErrNegativePenalty)
}

func TestRecomputeDayFillsOffDay(t *testing.T) {
	e := NewEngine(DefaultRules())

	// Manual entry onto a synthesized OFF-DAY record.
	day := timecard.DailyRecord{Date: "2025-03-26", Shift: punch.ShiftOffDay, Notes: "OFF-DAY"}

	got, err := e.RecomputeDay(day, timecard.EditDayRequest{
		CheckIn:  strptr("08:00"),
		CheckOut: strptr("17:00"),
		Notes:    strptr("manual entry"),
	})
	require.NoError(t, err)

	assert.Equal(t, punch.ShiftCanteen, got.Shift)
	assert.False(t, got.MissingCheckIn)
	assert.False(t, got.MissingCheckOut)
	assert.InDelta(t, 9.00, got.HoursWorked, 0.001)
	assert.Equal(t, "manual entry", got.Notes)
}

func TestRecomputeDayUnparseableTime(t *testing.T) {
	e := NewEngine(DefaultRules())

	day := timecard.DailyRecord{Date: "2025-03-24", Shift: punch.ShiftCanteen}
	_, err := e.RecomputeDay(day, timecard.EditDayRequest{CheckIn: strptr("not a time")})
	assert.Error(t, err)
}
