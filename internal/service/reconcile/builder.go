package reconcile

import (
	"sort"
	"strings"
	"time"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
	"github.com/attendly/timeclock-backend-go/internal/domain/timecard"
)

const (
	noteOffDay          = "OFF-DAY"
	noteNightShift      = "Night shift (spans to next day)"
	noteMissingCheckIn  = "Missing check-in; needs review"
	noteMissingCheckOut = "Missing check-out; needs review"
	noteMergedSegments  = "Multiple shift segments merged (first in, last out)"
	noteOutOfOrder      = "Check-out precedes check-in; needs review"
)

// Builder pairs one employee's resolved punches into daily records and fills
// the observed date range with OFF-DAY placeholders so the sequence has no
// gaps.
type Builder struct {
	calc *Calculator
}

func NewBuilder(calc *Calculator) *Builder {
	return &Builder{calc: calc}
}

// Build walks the resolved punches chronologically with a single open
// check-in slot. An unmatched check-in becomes a missing-checkout day, an
// unmatched check-out a missing-checkin day; a pair becomes a complete day
// keyed by the check-in's working day, cross-midnight allowed. Segments that
// land on the same working day merge first-in/last-out so exactly one record
// exists per (employee, working day).
func (b *Builder) Build(employeeNumber, name string, ps []punch.Punch) []timecard.DailyRecord {
	ordered := make([]*punch.Punch, 0, len(ps))
	audit := make(map[string][]punch.AuditEntry)
	for i := range ps {
		p := &ps[i]
		audit[p.WorkDay] = append(audit[p.WorkDay], punch.AuditEntry{
			Time:           p.Time,
			OriginalStatus: p.RawStatus,
			ResolvedStatus: p.Status,
			Mislabeled:     p.Mislabeled,
			Suppressed:     p.Suppressed,
		})
		if !p.Suppressed {
			ordered = append(ordered, p)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Time.Equal(ordered[j].Time) {
			return ordered[i].Time.Before(ordered[j].Time)
		}
		return ordered[i].Seq < ordered[j].Seq
	})

	records := make(map[string]*timecard.DailyRecord)

	var open *punch.Punch
	for _, p := range ordered {
		switch p.Status {
		case punch.StatusCheckIn:
			if open != nil {
				// orphaned check-in: the counterpart never arrived
				b.place(records, open.WorkDay, open, nil, open.Shift, false)
			}
			open = p
		case punch.StatusCheckOut:
			if open != nil {
				key := open.WorkDay
				corrected := open.Mislabeled || p.Mislabeled
				shift := open.Shift
				if shift == punch.ShiftUnknown {
					shift = Classify(open.Time)
				}
				b.place(records, key, open, p, shift, corrected)
				open = nil
			} else {
				b.place(records, p.WorkDay, nil, p, p.Shift, p.Mislabeled)
			}
		}
	}
	if open != nil {
		b.place(records, open.WorkDay, open, nil, open.Shift, false)
	}

	b.finalize(employeeNumber, name, records, audit)

	return fillGaps(employeeNumber, name, records)
}

// place creates or merges the record for a working day.
func (b *Builder) place(records map[string]*timecard.DailyRecord, key string, in, out *punch.Punch, shift punch.ShiftType, corrected bool) {
	rec, ok := records[key]
	if !ok {
		rec = &timecard.DailyRecord{Date: key, Shift: shift}
		records[key] = rec
	} else if (in != nil && rec.FirstCheckIn != nil) || (out != nil && rec.LastCheckOut != nil) {
		appendNote(rec, noteMergedSegments)
	}

	if in != nil {
		corrected = corrected || in.Mislabeled
		if rec.FirstCheckIn == nil || in.Time.Before(*rec.FirstCheckIn) {
			t := in.Time
			rec.FirstCheckIn = &t
			rec.Shift = shift
		}
	}
	if out != nil {
		corrected = corrected || out.Mislabeled
		if rec.LastCheckOut == nil || out.Time.After(*rec.LastCheckOut) {
			t := out.Time
			rec.LastCheckOut = &t
		}
	}
	rec.CorrectedRecords = rec.CorrectedRecords || corrected
}

// finalize computes hours and flags once per record, after all pairing and
// merging is done.
func (b *Builder) finalize(employeeNumber, name string, records map[string]*timecard.DailyRecord, audit map[string][]punch.AuditEntry) {
	for _, rec := range records {
		rec.EmployeeNumber = employeeNumber
		rec.EmployeeName = name
		rec.AllTimeRecords = audit[rec.Date]
		rec.MissingCheckIn = rec.FirstCheckIn == nil
		rec.MissingCheckOut = rec.LastCheckOut == nil

		if rec.Shift == punch.ShiftUnknown && rec.FirstCheckIn != nil {
			rec.Shift = Classify(*rec.FirstCheckIn)
		}

		switch {
		case rec.MissingCheckIn && rec.MissingCheckOut:
			// cannot happen from pairing; defensive zero record
		case rec.MissingCheckIn:
			appendNote(rec, noteMissingCheckIn)
		case rec.MissingCheckOut:
			appendNote(rec, noteMissingCheckOut)
		default:
			in, out := *rec.FirstCheckIn, *rec.LastCheckOut
			if out.Before(in) && rec.Shift != punch.ShiftNight {
				// An orphan check-out merged ahead of a later orphan
				// check-in is not a pair; the day keeps zero hours and
				// a review note instead of a midnight wraparound.
				appendNote(rec, noteOutOfOrder)
				continue
			}
			rec.IsCrossDay = punch.DayKey(out) != punch.DayKey(in)
			rec.HoursWorked = b.calc.ComputeHours(in, out, rec.Shift, rec.PenaltyMinutes)
			rec.ExcessiveOvertime = b.calc.ExceedsCap(in, out)
			_, rec.IsLate = b.calc.LateMinutes(in, rec.Shift)
			rec.EarlyLeave = b.calc.IsEarlyLeave(out, rec.Shift, in.Hour())
			if rec.Shift == punch.ShiftNight && rec.IsCrossDay {
				appendNote(rec, noteNightShift)
			}
		}
	}
}

// fillGaps emits the ordered day sequence from the employee's earliest to
// latest working day, synthesizing an OFF-DAY record for every date without
// one. Silence is filled, never left sparse.
func fillGaps(employeeNumber, name string, records map[string]*timecard.DailyRecord) []timecard.DailyRecord {
	if len(records) == 0 {
		return nil
	}

	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	first, err1 := time.Parse("2006-01-02", keys[0])
	last, err2 := time.Parse("2006-01-02", keys[len(keys)-1])
	if err1 != nil || err2 != nil {
		out := make([]timecard.DailyRecord, 0, len(keys))
		for _, k := range keys {
			out = append(out, *records[k])
		}
		return out
	}

	var out []timecard.DailyRecord
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if rec, ok := records[key]; ok {
			out = append(out, *rec)
			continue
		}
		out = append(out, timecard.DailyRecord{
			EmployeeNumber: employeeNumber,
			EmployeeName:   name,
			Date:           key,
			Shift:          punch.ShiftOffDay,
			Notes:          noteOffDay,
		})
	}
	return out
}

func appendNote(rec *timecard.DailyRecord, note string) {
	if strings.Contains(rec.Notes, note) {
		return
	}
	if rec.Notes == "" {
		rec.Notes = note
		return
	}
	rec.Notes += "; " + note
}
