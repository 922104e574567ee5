package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taxilog/backend/internal/domain"
)

// errorDetail is the machine-readable error payload.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the envelope every error body uses.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON serializes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

// writeError writes a structured error body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service error onto an HTTP response.
// Unrecognized errors become a 500 with a generic body; the detail goes to
// the log, not to the client.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrNoOpenWorkday):
		writeError(w, http.StatusConflict, "no_open_workday", domain.ErrNoOpenWorkday.Error())
	case errors.Is(err, domain.ErrWorkdayOpen):
		writeError(w, http.StatusConflict, "workday_open", domain.ErrWorkdayOpen.Error())
	case errors.Is(err, domain.ErrNoWorkdayForDate):
		writeError(w, http.StatusConflict, "no_workday_for_date", domain.ErrNoWorkdayForDate.Error())
	case errors.Is(err, domain.ErrTripActive):
		writeError(w, http.StatusConflict, "trip_active", domain.ErrTripActive.Error())
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

// writeLocationError maps errors from the location-aware trip endpoints.
// Domain preconditions map as usual; everything else is assumed to be a fix
// acquisition failure and surfaces verbatim as 502 Bad Gateway, since the
// caller chose the GPS variant and there is no automatic fallback.
func writeLocationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNoOpenWorkday),
		errors.Is(err, domain.ErrTripActive):
		writeServiceError(w, err)
	default:
		writeError(w, http.StatusBadGateway, "location_unavailable", unwrapMessage(err))
	}
}

// unwrapMessage strips the "service.Type.Method: " wrapping prefixes so the
// client sees the human-readable part of the error, e.g.
// "service.TripService.Finish: validation error: unknown payment type" →
// "validation error: unknown payment type".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for {
		idx := strings.Index(msg, ": ")
		if idx < 0 {
			return msg
		}
		prefix := msg[:idx]
		if !strings.HasPrefix(prefix, "service.") && !strings.HasPrefix(prefix, "repo.") &&
			!strings.HasPrefix(prefix, "location.") {
			return msg
		}
		msg = msg[idx+2:]
	}
}
