package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing amount, unknown payment type).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNoOpenWorkday is returned when starting a trip while no workday is open.
// The caller must open a workday first. Handlers map this to HTTP 409.
var ErrNoOpenWorkday = errors.New("no open workday")

// ErrWorkdayOpen is returned when opening a workday while one is already
// open. Handlers map this to HTTP 409.
var ErrWorkdayOpen = errors.New("a workday is already open")

// ErrNoWorkdayForDate is returned when a manual trip's start time falls on a
// date with no workday record. Handlers map this to HTTP 409.
var ErrNoWorkdayForDate = errors.New("no workday for that date")

// ErrTripActive is returned when starting a trip while another trip is still
// in progress. Handlers map this to HTTP 409.
var ErrTripActive = errors.New("a trip is already active")
