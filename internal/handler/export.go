package handler

import (
	"log/slog"
	"net/http"
)

// handleExportTrips handles GET /export/trips.csv, streaming the full trip
// history as a CSV download.
func (s *Server) handleExportTrips(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)

	if err := s.exports.WriteCSV(r.Context(), w); err != nil {
		// The status line and CSV bytes may already be on the wire, so an
		// error body would corrupt the download. Log and let the truncated
		// response signal the failure.
		slog.Error("export trips", "error", err)
	}
}
