package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendly/timeclock-backend-go/internal/domain/timecard"
	"github.com/attendly/timeclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimecardHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	EditDay(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type timecardHandlerImpl struct {
	timecardService timecard.TimecardService
}

func NewTimecardHandler(timecardService timecard.TimecardService) TimecardHandler {
	return &timecardHandlerImpl{
		timecardService: timecardService,
	}
}

// Import implements TimecardHandler. The device export comes in as a
// multipart upload under the 'file' field.
func (h *timecardHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 20MB)
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Device export file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	result, err := h.timecardService.ImportFile(r.Context(), file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Import reconciled", result)
}

// Reconcile implements TimecardHandler. Dry run: raw rows in, reconciled
// records out, nothing persisted.
func (h *timecardHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req timecard.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timecardService.Reconcile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements TimecardHandler.
func (h *timecardHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	result, err := h.timecardService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EditDay implements TimecardHandler.
func (h *timecardHandlerImpl) EditDay(w http.ResponseWriter, r *http.Request) {
	var req timecard.EditDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.timecardService.EditDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Record updated", result)
}

// Approve implements TimecardHandler.
func (h *timecardHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req timecard.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	affected, err := h.timecardService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Records approved", map[string]int64{"approved": affected})
}

// Export implements TimecardHandler. format=xlsx renders a workbook and
// returns its URL; the default is the flattened rows as JSON.
func (h *timecardHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	if r.URL.Query().Get("format") == "xlsx" {
		url, err := h.timecardService.ExportWorkbook(r.Context(), filter)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, map[string]string{"url": url})
		return
	}

	rows, err := h.timecardService.Export(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

func filterFromQuery(r *http.Request) timecard.RecordFilter {
	q := r.URL.Query()
	var filter timecard.RecordFilter

	if v := q.Get("employee_number"); v != "" {
		filter.EmployeeNumber = &v
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	filter.ApprovedOnly = q.Get("approved_only") == "true"

	return filter
}
