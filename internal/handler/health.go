package handler

import "net/http"

// handleHealth handles GET /healthz. It reports process liveness only; it
// does not touch the database.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
