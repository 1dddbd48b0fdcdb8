package reconcile

import (
	"time"

	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
)

// Classify maps a timestamp to its shift category by local hour of day.
// Hours 7 and 8 are the canteen shift start hours and win over the general
// morning window.
func Classify(t time.Time) punch.ShiftType {
	h := t.Hour()
	switch {
	case h >= 20 || h < 5:
		return punch.ShiftNight
	case h == 7 || h == 8:
		return punch.ShiftCanteen
	case h < 12:
		return punch.ShiftMorning
	default:
		return punch.ShiftEvening
	}
}
