package http

import (
	"net/http"

	"github.com/attendly/timeclock-backend-go/internal/domain/holiday"
	"github.com/attendly/timeclock-backend-go/internal/handler/http/response"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayRepo holiday.HolidayRepository
}

func NewHolidayHandler(holidayRepo holiday.HolidayRepository) HolidayHandler {
	return &holidayHandlerImpl{
		holidayRepo: holidayRepo,
	}
}

// List implements HolidayHandler.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	holidays, err := h.holidayRepo.ListDates(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}
