// Package handler implements the HTTP handlers for the taxi logbook API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (workday.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"io"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taxilog/backend/internal/domain"
	"github.com/taxilog/backend/internal/geo"
	"github.com/taxilog/backend/internal/service"
)

// WorkdayServicer defines the workday operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type WorkdayServicer interface {
	Open(ctx context.Context) (domain.Workday, error)
	CloseActive(ctx context.Context) (*domain.Workday, error)
	Active(ctx context.Context) (*domain.Workday, error)
	InfoForDate(ctx context.Context, date time.Time) (*domain.Workday, error)
}

// TripServicer defines the trip operations the handlers depend on.
type TripServicer interface {
	Start(ctx context.Context) (domain.Trip, error)
	StartWithLocation(ctx context.Context) (domain.Trip, error)
	Finish(ctx context.Context, in service.FinishTripInput) (*domain.Trip, error)
	FinishWithLocation(ctx context.Context, in service.FinishTripInput) (*domain.Trip, error)
	Update(ctx context.Context, id int64, in service.UpdateTripInput) (domain.Trip, error)
	Delete(ctx context.Context, id int64) error
	CreateManual(ctx context.Context, in service.ManualTripInput) (domain.Trip, error)
	Active(ctx context.Context) (*domain.Trip, error)
	ForWorkday(ctx context.Context, workdayID int64) ([]domain.Trip, error)
	ForDate(ctx context.Context, date time.Time) ([]domain.Trip, error)
	SummaryForWorkday(ctx context.Context, workdayID int64) (domain.Summary, error)
	Snapshots(ctx context.Context, tripID int64) ([]domain.TripGeoSnapshot, error)
}

// SummaryServicer defines the rollup operations the handlers depend on.
type SummaryServicer interface {
	Today(ctx context.Context) (domain.Summary, error)
	Week(ctx context.Context) (domain.Summary, error)
	Month(ctx context.Context) (domain.Summary, error)
}

// GoalServicer defines the goals operations the handlers depend on.
type GoalServicer interface {
	Get(ctx context.Context) (domain.Goals, error)
	Save(ctx context.Context, goals domain.Goals) error
}

// ExportServicer defines the CSV export operation the handlers depend on.
type ExportServicer interface {
	WriteCSV(ctx context.Context, w io.Writer) error
}

// ZoneServicer defines the geofence operations the handlers depend on.
type ZoneServicer interface {
	Zones() []geo.Zone
	MatchingZones(ctx geo.Context) []geo.Zone
	FirstMatchingZone(ctx geo.Context) *geo.Zone
}

// Server holds all handler dependencies.
type Server struct {
	workdays  WorkdayServicer
	trips     TripServicer
	summaries SummaryServicer
	goals     GoalServicer
	exports   ExportServicer
	zones     ZoneServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(workdays WorkdayServicer, trips TripServicer, summaries SummaryServicer,
	goals GoalServicer, exports ExportServicer, zones ZoneServicer) *Server {
	return &Server{
		workdays:  workdays,
		trips:     trips,
		summaries: summaries,
		goals:     goals,
		exports:   exports,
		zones:     zones,
	}
}

// Routes mounts every endpoint on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)

	r.Route("/workdays", func(r chi.Router) {
		r.Post("/open", s.handleOpenWorkday)
		r.Post("/close", s.handleCloseWorkday)
		r.Get("/active", s.handleActiveWorkday)
		r.Get("/", s.handleWorkdayInfoForDate)
		r.Get("/{id}/trips", s.handleTripsForWorkday)
		r.Get("/{id}/summary", s.handleSummaryForWorkday)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Post("/start", s.handleStartTrip)
		r.Post("/start-location", s.handleStartTripWithLocation)
		r.Post("/finish", s.handleFinishTrip)
		r.Post("/finish-location", s.handleFinishTripWithLocation)
		r.Get("/active", s.handleActiveTrip)
		r.Get("/", s.handleTripsForDate)
		r.Post("/", s.handleCreateManualTrip)
		r.Put("/{id}", s.handleUpdateTrip)
		r.Delete("/{id}", s.handleDeleteTrip)
		r.Get("/{id}/snapshots", s.handleTripSnapshots)
	})

	r.Route("/summary", func(r chi.Router) {
		r.Get("/today", s.handleSummaryToday)
		r.Get("/week", s.handleSummaryWeek)
		r.Get("/month", s.handleSummaryMonth)
	})

	r.Get("/goals", s.handleGetGoals)
	r.Put("/goals", s.handleSaveGoals)

	r.Get("/export/trips.csv", s.handleExportTrips)

	r.Get("/zones", s.handleListZones)
	r.Post("/zones/match", s.handleMatchZones)

	return r
}
