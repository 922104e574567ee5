package handler

import "net/http"

// handleSummaryToday handles GET /summary/today (workday-scoped).
func (s *Server) handleSummaryToday(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summaries.Today(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleSummaryWeek handles GET /summary/week (calendar-scoped).
func (s *Server) handleSummaryWeek(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summaries.Week(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleSummaryMonth handles GET /summary/month (calendar-scoped).
func (s *Server) handleSummaryMonth(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summaries.Month(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
