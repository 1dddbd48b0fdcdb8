package reconcile

import (
	"sort"
	"time"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
	"github.com/attendly/timeclock-backend-go/internal/domain/timecard"
	"github.com/attendly/timeclock-backend-go/internal/pkg/validator"
)

// Engine is the punch reconciliation pipeline: classify, resolve labels,
// build daily records, compute hours. It holds no I/O and no mutable state,
// so the same punch list always reconciles to the same output and
// per-employee runs are safe to parallelize.
type Engine struct {
	rules    Rules
	resolver *Resolver
	builder  *Builder
	calc     *Calculator
}

func NewEngine(rules Rules) *Engine {
	calc := NewCalculator(rules)
	return &Engine{
		rules:    rules,
		resolver: NewResolver(rules),
		builder:  NewBuilder(calc),
		calc:     calc,
	}
}

// Reconcile is the main entry point: an unordered bag of punches in,
// per-employee ordered day sequences out. The input slice is not mutated.
func (e *Engine) Reconcile(punches []punch.Punch) []timecard.EmployeeRecord {
	byEmployee := make(map[string][]punch.Punch)
	names := make(map[string]string)
	for _, p := range punches {
		byEmployee[p.EmployeeNumber] = append(byEmployee[p.EmployeeNumber], p)
		if names[p.EmployeeNumber] == "" && p.EmployeeName != "" {
			names[p.EmployeeNumber] = p.EmployeeName
		}
	}

	numbers := make([]string, 0, len(byEmployee))
	for n := range byEmployee {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)

	records := make([]timecard.EmployeeRecord, 0, len(numbers))
	for _, number := range numbers {
		resolved := e.resolver.Resolve(byEmployee[number])
		days := e.builder.Build(number, names[number], resolved)
		records = append(records, timecard.EmployeeRecord{
			EmployeeNumber: number,
			Name:           names[number],
			Days:           days,
			TotalDays:      len(days),
		})
	}
	return records
}

// RecomputeDay applies a manual edit to one daily record and rederives its
// hours and flags. The input record is not touched on validation failure.
func (e *Engine) RecomputeDay(day timecard.DailyRecord, edits timecard.EditDayRequest) (timecard.DailyRecord, error) {
	if err := applyTimeEdit(&day, edits.CheckIn, true); err != nil {
		return timecard.DailyRecord{}, err
	}
	if err := applyTimeEdit(&day, edits.CheckOut, false); err != nil {
		return timecard.DailyRecord{}, err
	}

	if edits.SwapTimes {
		if day.FirstCheckIn == nil || day.LastCheckOut == nil {
			return timecard.DailyRecord{}, timecard.ErrNoTimesToSwap
		}
		day.FirstCheckIn, day.LastCheckOut = day.LastCheckOut, day.FirstCheckIn
	}

	if edits.PenaltyMinutes != nil {
		if *edits.PenaltyMinutes < 0 {
			return timecard.DailyRecord{}, timecard.ErrNegativePenalty
		}
		day.PenaltyMinutes = *edits.PenaltyMinutes
	}

	if edits.Notes != nil {
		day.Notes = *edits.Notes
	}

	day.MissingCheckIn = day.FirstCheckIn == nil
	day.MissingCheckOut = day.LastCheckOut == nil

	if day.FirstCheckIn != nil && day.LastCheckOut != nil {
		in, out := *day.FirstCheckIn, *day.LastCheckOut
		// A checkout before the check-in on the same calendar day is only
		// legitimate for a night shift, where it means the pair crossed
		// midnight.
		if out.Before(in) && day.Shift != punch.ShiftNight {
			return timecard.DailyRecord{}, timecard.ErrCheckOutBeforeCheckIn
		}
		if day.Shift == punch.ShiftOffDay || day.Shift == punch.ShiftUnknown {
			day.Shift = Classify(in)
		}
		day.IsCrossDay = punch.DayKey(out) != punch.DayKey(in)
		day.HoursWorked = e.calc.ComputeHours(in, out, day.Shift, day.PenaltyMinutes)
		day.ExcessiveOvertime = e.calc.ExceedsCap(in, out)
		_, day.IsLate = e.calc.LateMinutes(in, day.Shift)
		day.EarlyLeave = e.calc.IsEarlyLeave(out, day.Shift, in.Hour())
	} else {
		day.HoursWorked = 0
	}

	return day, nil
}

// applyTimeEdit parses a manual clock edit onto the record. A bare clock
// value lands on the record's own date.
func applyTimeEdit(day *timecard.DailyRecord, value *string, isCheckIn bool) error {
	if value == nil || *value == "" {
		return nil
	}

	parsed, ok := validator.ParseClockEdit(*value)
	if !ok {
		return validator.ValidationErrors{{Field: editField(isCheckIn), Message: "unparseable time"}}
	}

	if validator.IsClockOnly(*value) {
		base, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			return err
		}
		parsed = time.Date(base.Year(), base.Month(), base.Day(),
			parsed.Hour(), parsed.Minute(), parsed.Second(), 0, base.Location())
		// A bare clock edit on a night checkout lands on the next calendar
		// day when it reads as an early-morning time.
		if !isCheckIn && day.Shift == punch.ShiftNight && parsed.Hour() < 12 {
			parsed = parsed.AddDate(0, 0, 1)
		}
	}

	if isCheckIn {
		day.FirstCheckIn = &parsed
	} else {
		day.LastCheckOut = &parsed
	}
	return nil
}

func editField(isCheckIn bool) string {
	if isCheckIn {
		return "check_in"
	}
	return "check_out"
}
