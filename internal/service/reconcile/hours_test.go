package reconcile

import (
	"testing"
	"time"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
	"github.com/stretchr/testify/assert"
)

func TestComputeHours(t *testing.T) {
	calc := NewCalculator(DefaultRules())
	day := func(h, m int) time.Time {
		return time.Date(2025, 3, 24, h, m, 0, 0, time.UTC)
	}
	nextDay := func(h, m int) time.Time {
		return time.Date(2025, 3, 25, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name      string
		in        time.Time
		out       time.Time
		shift     punch.ShiftType
		deduction int
		expected  float64
	}{
		{
			name:     "Exact nine hour day credits nine",
			in:       day(8, 0),
			out:      day(17, 0),
			shift:    punch.ShiftCanteen,
			expected: 9.00,
		},
		{
			name:     "Slightly short full shift normalizes to nine",
			in:       day(8, 0),
			out:      day(16, 40),
			shift:    punch.ShiftCanteen,
			expected: 9.00,
		},
		{
			name:     "Below the full-shift floor stays raw",
			in:       day(8, 0),
			out:      day(16, 15),
			shift:    punch.ShiftCanteen,
			expected: 8.25,
		},
		{
			name:     "Overtime rounds to the nearest quarter hour",
			in:       day(8, 0),
			out:      day(18, 10), // 10.17h
			shift:    punch.ShiftCanteen,
			expected: 10.25,
		},
		{
			name:     "Raw span above fifteen hours is capped",
			in:       day(5, 0),
			out:      day(21, 30),
			shift:    punch.ShiftMorning,
			expected: 15.00,
		},
		{
			name:     "Night shift crossing midnight",
			in:       day(20, 57),
			out:      nextDay(5, 53), // 8.93h raw
			shift:    punch.ShiftNight,
			expected: 9.00,
		},
		{
			name:     "Short night shift with late-enough checkout still credits full",
			in:       day(22, 0),
			out:      nextDay(5, 45), // 7.75h raw but checkout past 05:30
			shift:    punch.ShiftNight,
			expected: 9.00,
		},
		{
			name:     "Short night shift with early checkout stays raw",
			in:       day(21, 0),
			out:      nextDay(4, 0),
			shift:    punch.ShiftNight,
			expected: 7.00,
		},
		{
			name:      "Deduction comes off before policy",
			in:        day(8, 0),
			out:       day(16, 15), // 495 raw minutes
			shift:     punch.ShiftCanteen,
			deduction: 30,
			expected:  7.75,
		},
		{
			name:      "Deduction larger than the span floors at zero",
			in:        day(8, 0),
			out:       day(8, 20),
			shift:     punch.ShiftCanteen,
			deduction: 60,
			expected:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.ComputeHours(tt.in, tt.out, tt.shift, tt.deduction)
			assert.InDelta(t, tt.expected, got, 0.001)
		})
	}
}

func TestComputeHoursNaiveCrossMidnight(t *testing.T) {
	// Same-date timestamps where the checkout clock reads before the
	// check-in: the negative span wraps by a day.
	calc := NewCalculator(DefaultRules())
	in := time.Date(2025, 3, 24, 21, 0, 0, 0, time.UTC)
	out := time.Date(2025, 3, 24, 6, 0, 0, 0, time.UTC)

	got := calc.ComputeHours(in, out, punch.ShiftNight, 0)
	assert.InDelta(t, 9.00, got, 0.001)
}

func TestLateMinutes(t *testing.T) {
	calc := NewCalculator(DefaultRules())

	// Morning shift starts 05:00, zero grace.
	mins, late := calc.LateMinutes(time.Date(2025, 3, 24, 5, 12, 0, 0, time.UTC), punch.ShiftMorning)
	assert.Equal(t, 12, mins)
	assert.True(t, late)

	// Canteen allows 10 minutes past the variant start.
	_, late = calc.LateMinutes(time.Date(2025, 3, 24, 8, 9, 0, 0, time.UTC), punch.ShiftCanteen)
	assert.False(t, late)

	mins, late = calc.LateMinutes(time.Date(2025, 3, 24, 7, 25, 0, 0, time.UTC), punch.ShiftCanteen)
	assert.Equal(t, 25, mins)
	assert.True(t, late)

	// Night allows 30 minutes past 21:00.
	_, late = calc.LateMinutes(time.Date(2025, 3, 24, 21, 20, 0, 0, time.UTC), punch.ShiftNight)
	assert.False(t, late)

	_, late = calc.LateMinutes(time.Date(2025, 3, 24, 21, 45, 0, 0, time.UTC), punch.ShiftNight)
	assert.True(t, late)

	// Early arrivals are never late.
	mins, late = calc.LateMinutes(time.Date(2025, 3, 24, 20, 57, 0, 0, time.UTC), punch.ShiftNight)
	assert.Equal(t, 0, mins)
	assert.False(t, late)

	// A night check-in after midnight measures from 21:00 the evening before.
	mins, late = calc.LateMinutes(time.Date(2025, 3, 25, 0, 30, 0, 0, time.UTC), punch.ShiftNight)
	assert.Equal(t, 210, mins)
	assert.True(t, late)
}

func TestIsEarlyLeave(t *testing.T) {
	calc := NewCalculator(DefaultRules())

	// Canteen late variant ends 17:00, grace 15 minutes.
	assert.False(t, calc.IsEarlyLeave(time.Date(2025, 3, 24, 16, 50, 0, 0, time.UTC), punch.ShiftCanteen, 8))
	assert.True(t, calc.IsEarlyLeave(time.Date(2025, 3, 24, 16, 30, 0, 0, time.UTC), punch.ShiftCanteen, 8))

	// Night ends 06:00 on the morning after; a 05:53 checkout is within grace.
	assert.False(t, calc.IsEarlyLeave(time.Date(2025, 3, 25, 5, 53, 0, 0, time.UTC), punch.ShiftNight, 20))
	assert.True(t, calc.IsEarlyLeave(time.Date(2025, 3, 25, 5, 30, 0, 0, time.UTC), punch.ShiftNight, 20))
}
