package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/taxilog/backend/internal/geo"
)

// matchZonesRequest is the body of POST /zones/match: a position plus an
// optional timestamp (defaults to now).
type matchZonesRequest struct {
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Timestamp *time.Time `json:"timestamp"`
}

// matchZonesResponse lists every matching zone in catalog order, plus the
// first match (the priority winner), which is null when nothing matched.
type matchZonesResponse struct {
	Zones []geo.Zone `json:"zones"`
	First *geo.Zone  `json:"first"`
}

// handleListZones handles GET /zones, returning the catalog in priority order.
func (s *Server) handleListZones(w http.ResponseWriter, r *http.Request) {
	zones := s.zones.Zones()
	if zones == nil {
		zones = []geo.Zone{}
	}
	writeJSON(w, http.StatusOK, zones)
}

// handleMatchZones handles POST /zones/match.
func (s *Server) handleMatchZones(w http.ResponseWriter, r *http.Request) {
	var body matchZonesRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "malformed request body")
		return
	}
	if body.Latitude == nil || body.Longitude == nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "latitude and longitude are required")
		return
	}

	ctx := geo.Context{
		Point:     geo.Point{Latitude: *body.Latitude, Longitude: *body.Longitude},
		Timestamp: time.Now(),
	}
	if body.Timestamp != nil {
		ctx.Timestamp = *body.Timestamp
	}

	matched := s.zones.MatchingZones(ctx)
	if matched == nil {
		matched = []geo.Zone{}
	}

	writeJSON(w, http.StatusOK, matchZonesResponse{
		Zones: matched,
		First: s.zones.FirstMatchingZone(ctx),
	})
}
