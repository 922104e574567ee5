package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/taxilog/backend/internal/domain"
	"github.com/taxilog/backend/internal/service"
)

// finishTripRequest is the body of POST /trips/finish and
// POST /trips/finish-location.
type finishTripRequest struct {
	Amount        *float64 `json:"amount"`
	Payment       string   `json:"payment"`
	Source        string   `json:"source"`
	CustomSource  *string  `json:"customSource"`
	ChargedAmount *float64 `json:"chargedAmount"`
	CashTip       *float64 `json:"cashTip"`
}

// manualTripRequest is the body of POST /trips.
type manualTripRequest struct {
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Amount    *float64   `json:"amount"`
	Payment   string     `json:"payment"`
	Source    string     `json:"source"`
}

// updateTripRequest is the body of PUT /trips/{id}.
type updateTripRequest struct {
	Amount       *float64 `json:"amount"`
	Payment      string   `json:"payment"`
	Source       string   `json:"source"`
	CustomSource *string  `json:"customSource"`
}

// handleStartTrip handles POST /trips/start.
func (s *Server) handleStartTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Start(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// handleStartTripWithLocation handles POST /trips/start-location.
func (s *Server) handleStartTripWithLocation(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.StartWithLocation(r.Context())
	if err != nil {
		writeLocationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// handleFinishTrip handles POST /trips/finish.
// Finishing with no active trip returns 204 — a redundant tap is not an error.
func (s *Server) handleFinishTrip(w http.ResponseWriter, r *http.Request) {
	in, err := decodeFinishRequest(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	trip, err := s.trips.Finish(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if trip == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// handleFinishTripWithLocation handles POST /trips/finish-location.
func (s *Server) handleFinishTripWithLocation(w http.ResponseWriter, r *http.Request) {
	in, err := decodeFinishRequest(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	trip, err := s.trips.FinishWithLocation(r.Context(), in)
	if err != nil {
		writeLocationError(w, err)
		return
	}
	if trip == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// handleActiveTrip handles GET /trips/active.
func (s *Server) handleActiveTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Active(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if trip == nil {
		writeError(w, http.StatusNotFound, "not_found", "no active trip")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// handleTripsForDate handles GET /trips?date=YYYY-MM-DD.
func (s *Server) handleTripsForDate(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	trips, err := s.trips.ForDate(r.Context(), date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// handleCreateManualTrip handles POST /trips.
func (s *Server) handleCreateManualTrip(w http.ResponseWriter, r *http.Request) {
	var body manualTripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "malformed request body")
		return
	}
	if body.StartTime == nil || body.EndTime == nil || body.Amount == nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "startTime, endTime, and amount are required")
		return
	}

	trip, err := s.trips.CreateManual(r.Context(), service.ManualTripInput{
		StartTime: *body.StartTime,
		EndTime:   *body.EndTime,
		Amount:    *body.Amount,
		Payment:   domain.PaymentType(body.Payment),
		Source:    domain.TripSource(body.Source),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// handleUpdateTrip handles PUT /trips/{id}.
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var body updateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "malformed request body")
		return
	}
	if body.Amount == nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "amount is required")
		return
	}

	trip, err := s.trips.Update(r.Context(), id, service.UpdateTripInput{
		Amount:       *body.Amount,
		Payment:      domain.PaymentType(body.Payment),
		Source:       domain.TripSource(body.Source),
		CustomSource: body.CustomSource,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// handleDeleteTrip handles DELETE /trips/{id}.
func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTripSnapshots handles GET /trips/{id}/snapshots.
func (s *Server) handleTripSnapshots(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	snaps, err := s.trips.Snapshots(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snaps)
}

// decodeFinishRequest parses and minimally validates a finish body; full
// business validation happens in the service.
func decodeFinishRequest(r *http.Request) (service.FinishTripInput, error) {
	var body finishTripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return service.FinishTripInput{}, errors.New("malformed request body")
	}
	if body.Amount == nil {
		return service.FinishTripInput{}, errors.New("amount is required")
	}

	return service.FinishTripInput{
		Amount:        *body.Amount,
		Payment:       domain.PaymentType(body.Payment),
		Source:        domain.TripSource(body.Source),
		CustomSource:  body.CustomSource,
		ChargedAmount: body.ChargedAmount,
		CashTip:       body.CashTip,
	}, nil
}
