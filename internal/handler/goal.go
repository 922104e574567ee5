package handler

import (
	"encoding/json"
	"net/http"

	"github.com/taxilog/backend/internal/domain"
)

// handleGetGoals handles GET /goals. Unsaved goals read as zeros.
func (s *Server) handleGetGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

// handleSaveGoals handles PUT /goals, overwriting the record wholesale.
func (s *Server) handleSaveGoals(w http.ResponseWriter, r *http.Request) {
	var goals domain.Goals
	if err := json.NewDecoder(r.Body).Decode(&goals); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "malformed request body")
		return
	}

	if err := s.goals.Save(r.Context(), goals); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}
