package reconcile

import (
	"sort"
	"time"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
)

// Resolver corrects mislabeled check-in/check-out statuses for one
// employee's punches. It is an ordered cascade of heuristics; narrower rules
// run earlier and mark the punches they claim as processed so the general
// rules leave them alone. Resolution never alters a timestamp and never
// drops a punch: at worst a punch keeps its raw status and the built day is
// flagged for human review.
type Resolver struct {
	rules Rules
}

func NewResolver(rules Rules) *Resolver {
	return &Resolver{rules: rules}
}

// Resolve runs the cascade over one employee's punches, ordered by file
// sequence. It returns a new slice; the input is not mutated.
func (r *Resolver) Resolve(in []punch.Punch) []punch.Punch {
	out := make([]punch.Punch, len(in))
	copy(out, in)

	ps := make([]*punch.Punch, len(out))
	for i := range out {
		ps[i] = &out[i]
	}
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Seq < ps[j].Seq })

	days, keys := groupByDay(ps)

	for _, k := range keys {
		r.suppressDuplicates(days[k])
	}
	for _, k := range keys {
		r.claimTwoPunchDay(days[k])
	}
	if hasNightPattern(ps) {
		r.pairNightShifts(days, keys)
	}
	for _, k := range keys {
		r.segmentDay(k, days[k])
	}
	for _, k := range keys {
		r.sequenceFallback(days[k])
	}
	for _, k := range keys {
		r.normalizeDayShift(days[k])
	}

	for _, p := range ps {
		if p.WorkDay == "" {
			p.WorkDay = p.CalendarDay()
		}
		if p.Shift == punch.ShiftUnknown {
			p.Shift = Classify(p.Time)
		}
	}

	return out
}

// groupByDay buckets punches by calendar day, chronological within a day
// with file order as the tie-break. Keys come back sorted.
func groupByDay(ps []*punch.Punch) (map[string][]*punch.Punch, []string) {
	days := make(map[string][]*punch.Punch)
	for _, p := range ps {
		k := p.CalendarDay()
		days[k] = append(days[k], p)
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		group := days[k]
		sort.SliceStable(group, func(i, j int) bool {
			if !group[i].Time.Equal(group[j].Time) {
				return group[i].Time.Before(group[j].Time)
			}
			return group[i].Seq < group[j].Seq
		})
	}
	return days, keys
}

func unclaimed(group []*punch.Punch) []*punch.Punch {
	var out []*punch.Punch
	for _, p := range group {
		if !p.Suppressed && !p.Processed {
			out = append(out, p)
		}
	}
	return out
}

// suppressDuplicates removes double badge scans: two same-status punches
// within the duplicate window. The earliest check-in / latest check-out of
// the pair survives. The loser is suppressed, never flipped into the
// opposite status, since flipping would fabricate a shift far shorter than
// plausible.
func (r *Resolver) suppressDuplicates(group []*punch.Punch) {
	for i := 0; i < len(group); i++ {
		a := group[i]
		if a.Suppressed {
			continue
		}
		for j := i + 1; j < len(group); j++ {
			b := group[j]
			if b.Suppressed || a.Status != b.Status {
				continue
			}
			if b.Time.Sub(a.Time) > r.rules.DuplicateWindow {
				break
			}
			if a.Status == punch.StatusCheckIn {
				// keep the earliest check-in
				b.Suppressed = true
				b.Mislabeled = true
			} else {
				// keep the latest check-out
				a.Suppressed = true
				a.Mislabeled = true
			}
		}
	}
}

// claimTwoPunchDay handles days with exactly two usable punches. A pair that
// is not (check-in, check-out) in chronological order gets flipped when the
// span is a plausible shift length; an already-consistent plausible pair is
// claimed as-is. Either way the day's shift is stamped from the check-in.
func (r *Resolver) claimTwoPunchDay(group []*punch.Punch) {
	ps := unclaimed(group)
	if len(ps) != 2 {
		return
	}
	first, second := ps[0], ps[1]

	span := second.Time.Sub(first.Time)
	plausible := span >= r.rules.FlipMinSpan && span <= r.rules.FlipMaxSpan

	if first.Status == punch.StatusCheckIn && second.Status == punch.StatusCheckOut {
		if plausible {
			shift := Classify(first.Time)
			first.Shift, second.Shift = shift, shift
			first.Processed, second.Processed = true, true
		}
		return
	}

	if !plausible {
		return
	}

	relabel(first, punch.StatusCheckIn)
	relabel(second, punch.StatusCheckOut)
	shift := Classify(first.Time)
	first.Shift, second.Shift = shift, shift
	first.Processed, second.Processed = true, true
}

func relabel(p *punch.Punch, status punch.Status) {
	if p.Status != status {
		p.Status = status
		p.Mislabeled = true
	}
}

// hasNightPattern reports whether the employee's stream shows night-shift
// behavior: at least one late-evening punch and at least one early-morning
// punch. The cross-day pairing rule only arms for such employees, which is
// what keeps it from stealing ordinary evening checkouts.
func hasNightPattern(ps []*punch.Punch) bool {
	var evening, morning bool
	for _, p := range ps {
		h := p.Time.Hour()
		if h >= 20 {
			evening = true
		}
		if h >= 5 && h < 8 {
			morning = true
		}
	}
	return evening && morning
}

// pairNightShifts scans consecutive calendar days for an evening punch on
// day N and an early-morning punch on day N+1, relabels them as the
// check-in/check-out of one night shift and attributes both to day N's
// working-day key.
func (r *Resolver) pairNightShifts(days map[string][]*punch.Punch, keys []string) {
	for _, k := range keys {
		day, err := time.Parse("2006-01-02", k)
		if err != nil {
			continue
		}
		nextKey := day.AddDate(0, 0, 1).Format("2006-01-02")
		next, ok := days[nextKey]
		if !ok {
			continue
		}

		evening := firstInHourRange(unclaimed(days[k]), 20, 24)
		morning := lastInHourRange(unclaimed(next), 5, 8)
		if evening == nil || morning == nil {
			continue
		}

		relabel(evening, punch.StatusCheckIn)
		relabel(morning, punch.StatusCheckOut)
		evening.Shift, morning.Shift = punch.ShiftNight, punch.ShiftNight
		evening.WorkDay, morning.WorkDay = k, k
		evening.Processed, morning.Processed = true, true
	}
}

func firstInHourRange(ps []*punch.Punch, lo, hi int) *punch.Punch {
	for _, p := range ps {
		if h := p.Time.Hour(); h >= lo && h < hi {
			return p
		}
	}
	return nil
}

func lastInHourRange(ps []*punch.Punch, lo, hi int) *punch.Punch {
	for i := len(ps) - 1; i >= 0; i-- {
		if h := ps[i].Time.Hour(); h >= lo && h < hi {
			return ps[i]
		}
	}
	return nil
}

// segmentDay splits a day with three or more unclaimed punches at idle gaps
// into shift segments. Within a segment the first punch must be a check-in
// and the last a check-out; a lone punch's status is inferred from its hour.
func (r *Resolver) segmentDay(key string, group []*punch.Punch) {
	ps := unclaimed(group)
	if len(ps) < 3 {
		return
	}

	var segment []*punch.Punch
	flush := func() {
		if len(segment) == 0 {
			return
		}
		r.resolveSegment(segment)
		segment = nil
	}

	for i, p := range ps {
		if i > 0 && p.Time.Sub(ps[i-1].Time) >= r.rules.SegmentGap {
			flush()
		}
		segment = append(segment, p)
	}
	flush()
}

func (r *Resolver) resolveSegment(segment []*punch.Punch) {
	if len(segment) == 1 {
		p := segment[0]
		h := p.Time.Hour()
		switch {
		case h >= 5 && h < 12:
			relabel(p, punch.StatusCheckIn)
		case h >= 12 && h < 22:
			relabel(p, punch.StatusCheckOut)
		}
		// outside both windows the raw status stands
		p.Processed = true
		return
	}

	relabel(segment[0], punch.StatusCheckIn)
	relabel(segment[len(segment)-1], punch.StatusCheckOut)
	shift := Classify(segment[0].Time)
	for _, p := range segment {
		p.Shift = shift
		p.Processed = true
	}
}

// sequenceFallback is the last-resort ordering rule for days that still have
// more than two usable punches: the chronologically earliest must be a
// check-in and the latest a check-out, whatever the device said.
func (r *Resolver) sequenceFallback(group []*punch.Punch) {
	ps := activeForDay(group)
	if len(ps) <= 2 {
		return
	}
	if !ps[0].Processed {
		relabel(ps[0], punch.StatusCheckIn)
	}
	if !ps[len(ps)-1].Processed {
		relabel(ps[len(ps)-1], punch.StatusCheckOut)
	}
}

// normalizeDayShift tidies pure day-shift days (morning/evening hours only)
// with extra punches: earliest is the check-in, latest the check-out, and
// everything between is a duplicate artifact.
func (r *Resolver) normalizeDayShift(group []*punch.Punch) {
	ps := activeForDay(group)
	if len(ps) <= 2 {
		return
	}
	for _, p := range ps {
		switch Classify(p.Time) {
		case punch.ShiftMorning, punch.ShiftEvening:
		default:
			return
		}
	}

	if !ps[0].Processed {
		relabel(ps[0], punch.StatusCheckIn)
	}
	if !ps[len(ps)-1].Processed {
		relabel(ps[len(ps)-1], punch.StatusCheckOut)
	}
	for _, p := range ps[1 : len(ps)-1] {
		if p.Processed {
			continue
		}
		p.Suppressed = true
		p.Mislabeled = true
	}
}

// activeForDay returns the day's pairable punches, excluding ones a
// cross-day rule already attributed to a different working day.
func activeForDay(group []*punch.Punch) []*punch.Punch {
	var out []*punch.Punch
	for _, p := range group {
		if p.Suppressed {
			continue
		}
		if p.WorkDay != "" && p.WorkDay != p.CalendarDay() {
			continue
		}
		out = append(out, p)
	}
	return out
}
