package response

import (
	"errors"
	"net/http"

	"github.com/attendly/timeclock-backend-go/internal/domain/employee"
	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
	"github.com/attendly/timeclock-backend-go/internal/domain/timecard"
	"github.com/attendly/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Import errors
	case errors.Is(err, punch.ErrEmptyImport):
		BadRequest(w, "Import contains no parseable punch rows", nil)
	case errors.Is(err, punch.ErrNoStatusText):
		BadRequest(w, "Punch status text is not recognizable", nil)

	// Timecard domain errors
	case errors.Is(err, timecard.ErrRecordNotFound):
		NotFound(w, "Time record not found")
	case errors.Is(err, timecard.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out cannot be before check-in on a same-day record", nil)
	case errors.Is(err, timecard.ErrNoTimesToSwap):
		BadRequest(w, "Record needs both times before they can be swapped", nil)
	case errors.Is(err, timecard.ErrNegativePenalty):
		BadRequest(w, "Penalty minutes cannot be negative", nil)
	case errors.Is(err, timecard.ErrDuplicateRecord):
		Conflict(w, "A record already exists for this employee and date")
	case errors.Is(err, timecard.ErrNothingToApprove):
		NotFound(w, "No matching records to approve")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNumberExists):
		Conflict(w, "Employee number already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
