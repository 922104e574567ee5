package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// handleOpenWorkday handles POST /workdays/open.
func (s *Server) handleOpenWorkday(w http.ResponseWriter, r *http.Request) {
	workday, err := s.workdays.Open(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workday)
}

// handleCloseWorkday handles POST /workdays/close.
// Closing with nothing open is not an error; it returns 204.
func (s *Server) handleCloseWorkday(w http.ResponseWriter, r *http.Request) {
	workday, err := s.workdays.CloseActive(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if workday == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, workday)
}

// handleActiveWorkday handles GET /workdays/active.
func (s *Server) handleActiveWorkday(w http.ResponseWriter, r *http.Request) {
	workday, err := s.workdays.Active(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if workday == nil {
		writeError(w, http.StatusNotFound, "not_found", "no open workday")
		return
	}
	writeJSON(w, http.StatusOK, workday)
}

// handleWorkdayInfoForDate handles GET /workdays?date=YYYY-MM-DD.
// It reports the status of the workday that started on that date, without
// the "open workday captures today" shortcut.
func (s *Server) handleWorkdayInfoForDate(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	workday, err := s.workdays.InfoForDate(r.Context(), date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if workday == nil {
		writeError(w, http.StatusNotFound, "not_found", "no workday for that date")
		return
	}
	writeJSON(w, http.StatusOK, workday)
}

// handleTripsForWorkday handles GET /workdays/{id}/trips.
func (s *Server) handleTripsForWorkday(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	trips, err := s.trips.ForWorkday(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// handleSummaryForWorkday handles GET /workdays/{id}/summary.
func (s *Server) handleSummaryForWorkday(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	summary, err := s.trips.SummaryForWorkday(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// idParam parses the {id} route parameter, writing a 422 on failure.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "id must be an integer")
		return 0, false
	}
	return id, true
}

// dateParam parses the required ?date=YYYY-MM-DD query parameter, writing a
// 422 on failure.
func dateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "date query parameter is required")
		return time.Time{}, false
	}
	date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
