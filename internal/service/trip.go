package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taxilog/backend/internal/dates"
	"github.com/taxilog/backend/internal/domain"
	"github.com/taxilog/backend/internal/geo"
	"github.com/taxilog/backend/internal/location"
	"github.com/taxilog/backend/internal/repo"
)

// FinishTripInput carries the data entered when closing out the active trip.
type FinishTripInput struct {
	Amount  float64
	Payment domain.PaymentType
	Source  domain.TripSource

	// CustomSource labels the platform when Source is CUSTOM.
	CustomSource *string

	// ChargedAmount is the explicit card settlement. Only honored when
	// Payment is CARD; when absent the settlement equals the fare.
	ChargedAmount *float64

	// CashTip is a separately recorded cash tip.
	CashTip *float64
}

// UpdateTripInput carries the fields the generic trip edit overwrites.
// ChargedAmount and CashTip are deliberately absent: edits through this path
// never touch the tip fields (mirrors the mobile app's edit screen).
type UpdateTripInput struct {
	Amount       float64
	Payment      domain.PaymentType
	Source       domain.TripSource
	CustomSource *string
}

// ManualTripInput describes a trip entered after the fact. It is bound to
// whichever workday its start date resolves to.
type ManualTripInput struct {
	StartTime time.Time
	EndTime   time.Time
	Amount    float64
	Payment   domain.PaymentType
	Source    domain.TripSource
}

// TripService implements the trip lifecycle and aggregate summaries.
type TripService struct {
	trips     repo.TripRepo
	snapshots repo.SnapshotRepo
	workdays  *WorkdayService
	zones     *geo.Service
	fixes     location.Provider
	now       func() time.Time
}

// NewTripService constructs a TripService. The fixes provider may be nil if
// the location-aware endpoints are not wired; calling them then fails.
func NewTripService(trips repo.TripRepo, snapshots repo.SnapshotRepo,
	workdays *WorkdayService, zones *geo.Service, fixes location.Provider) *TripService {
	return &TripService{
		trips:     trips,
		snapshots: snapshots,
		workdays:  workdays,
		zones:     zones,
		fixes:     fixes,
		now:       time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *TripService) WithClock(now func() time.Time) *TripService {
	s.now = now
	return s
}

// Start begins a new trip on the open workday, stamped with the wall clock.
// Returns domain.ErrNoOpenWorkday when no workday is open.
func (s *TripService) Start(ctx context.Context) (domain.Trip, error) {
	return s.start(ctx, "Start", s.now(), nil)
}

// StartWithLocation begins a new trip using a fresh GPS fix: the fix's
// timestamp becomes the trip start, and a START snapshot is recorded with
// the zone the fix resolved to. The fix is acquired before anything is
// written, so a GPS failure leaves no partial trip behind.
func (s *TripService) StartWithLocation(ctx context.Context) (domain.Trip, error) {
	fix, err := s.currentFix(ctx, "StartWithLocation")
	if err != nil {
		return domain.Trip{}, err
	}

	trip, err := s.start(ctx, "StartWithLocation", fix.Timestamp, nil)
	if err != nil {
		return domain.Trip{}, err
	}

	if err := s.recordSnapshot(ctx, trip.ID, domain.SnapshotStart, fix); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.StartWithLocation: %w", err)
	}

	return trip, nil
}

// start inserts a new active trip bound to the open workday.
func (s *TripService) start(ctx context.Context, op string, startTime time.Time, source *domain.TripSource) (domain.Trip, error) {
	workday, err := s.workdays.Active(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	if workday == nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, domain.ErrNoOpenWorkday)
	}

	trip := domain.Trip{
		StartTime: startTime,
		Source:    domain.SourceTaxi, // default until the trip is finished
		WorkdayID: &workday.ID,
	}
	if source != nil {
		trip.Source = *source
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	return created, nil
}

// Finish closes out the active trip with the entered fare data, stamped with
// the wall clock. When no trip is active this is a silent no-op returning
// nil — a redundant tap must not surface as an error.
func (s *TripService) Finish(ctx context.Context, in FinishTripInput) (*domain.Trip, error) {
	if err := validateFinish(in.Amount, in.Payment, in.Source); err != nil {
		return nil, fmt.Errorf("service.TripService.Finish: %w", err)
	}
	return s.finish(ctx, "Finish", s.now(), in, nil)
}

// FinishWithLocation closes out the active trip using a fresh GPS fix: the
// fix's timestamp becomes the trip end, and an END snapshot is recorded.
// The fix is acquired before any write; on GPS failure the trip stays active.
func (s *TripService) FinishWithLocation(ctx context.Context, in FinishTripInput) (*domain.Trip, error) {
	if err := validateFinish(in.Amount, in.Payment, in.Source); err != nil {
		return nil, fmt.Errorf("service.TripService.FinishWithLocation: %w", err)
	}

	fix, err := s.currentFix(ctx, "FinishWithLocation")
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, "FinishWithLocation", fix.Timestamp, in, &fix)
}

// finish locates the active trip, applies the fare data, and optionally
// records an END snapshot.
func (s *TripService) finish(ctx context.Context, op string, endTime time.Time, in FinishTripInput, fix *location.Fix) (*domain.Trip, error) {
	active, err := s.trips.GetActive(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("service.TripService.%s: %w", op, err)
	}

	active.EndTime = &endTime
	active.Amount = &in.Amount
	payment := in.Payment
	active.Payment = &payment
	active.Source = in.Source
	active.CustomSource = nil
	if in.Source == domain.SourceCustom {
		active.CustomSource = in.CustomSource
	}

	// The settlement equals the fare unless an explicit card charge says
	// otherwise; a NULL charged_amount reads as "same as amount".
	active.ChargedAmount = nil
	if in.Payment == domain.PaymentCard && in.ChargedAmount != nil {
		active.ChargedAmount = in.ChargedAmount
	}
	active.CashTip = in.CashTip

	updated, err := s.trips.Update(ctx, active)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.%s: %w", op, err)
	}

	if fix != nil {
		if err := s.recordSnapshot(ctx, updated.ID, domain.SnapshotEnd, *fix); err != nil {
			return nil, fmt.Errorf("service.TripService.%s: %w", op, err)
		}
	}

	return &updated, nil
}

// Update overwrites a trip's amount, payment, source, and custom label.
// ChargedAmount and CashTip are left untouched.
func (s *TripService) Update(ctx context.Context, id int64, in UpdateTripInput) (domain.Trip, error) {
	if err := validateFinish(in.Amount, in.Payment, in.Source); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	trip.Amount = &in.Amount
	payment := in.Payment
	trip.Payment = &payment
	trip.Source = in.Source
	trip.CustomSource = nil
	if in.Source == domain.SourceCustom {
		trip.CustomSource = in.CustomSource
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip; its geo snapshots cascade with it.
func (s *TripService) Delete(ctx context.Context, id int64) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// CreateManual records a trip entered after the fact. The owning workday is
// resolved from the start time; domain.ErrNoWorkdayForDate is returned when
// that date has no workday record.
func (s *TripService) CreateManual(ctx context.Context, in ManualTripInput) (domain.Trip, error) {
	if err := validateFinish(in.Amount, in.Payment, in.Source); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.CreateManual: %w", err)
	}
	if !in.EndTime.After(in.StartTime) {
		return domain.Trip{}, fmt.Errorf("service.TripService.CreateManual: %w: end time must be after start time", domain.ErrValidation)
	}

	workday, err := s.workdays.ForDate(ctx, in.StartTime)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.CreateManual: %w", err)
	}
	if workday == nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.CreateManual: %w", domain.ErrNoWorkdayForDate)
	}

	endTime := in.EndTime
	payment := in.Payment
	trip := domain.Trip{
		StartTime: in.StartTime,
		EndTime:   &endTime,
		Amount:    &in.Amount,
		Payment:   &payment,
		Source:    in.Source,
		WorkdayID: &workday.ID,
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.CreateManual: %w", err)
	}
	return created, nil
}

// Active returns the in-progress trip, or nil when none.
func (s *TripService) Active(ctx context.Context) (*domain.Trip, error) {
	trip, err := s.trips.GetActive(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("service.TripService.Active: %w", err)
	}
	return &trip, nil
}

// ForWorkday returns a workday's trips, most recent start first.
// Returns domain.ErrNotFound when the workday does not exist.
func (s *TripService) ForWorkday(ctx context.Context, workdayID int64) ([]domain.Trip, error) {
	if _, err := s.workdays.Get(ctx, workdayID); err != nil {
		return nil, fmt.Errorf("service.TripService.ForWorkday: %w", err)
	}

	trips, err := s.trips.ListByWorkday(ctx, workdayID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ForWorkday: %w", err)
	}
	return trips, nil
}

// ForDate returns the trips of whichever workday the date resolves to.
// A date with no workday yields an empty list, not an error.
func (s *TripService) ForDate(ctx context.Context, date time.Time) ([]domain.Trip, error) {
	workday, err := s.workdays.ForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ForDate: %w", err)
	}
	if workday == nil {
		return []domain.Trip{}, nil
	}

	trips, err := s.trips.ListByWorkday(ctx, workday.ID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ForDate: %w", err)
	}
	return trips, nil
}

// SummaryForWorkday aggregates all trips of a workday, open or closed.
func (s *TripService) SummaryForWorkday(ctx context.Context, workdayID int64) (domain.Summary, error) {
	trips, err := s.ForWorkday(ctx, workdayID)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.TripService.SummaryForWorkday: %w", err)
	}
	return domain.Summarize(trips), nil
}

// SummaryBetweenDates aggregates trips whose start time falls inside the
// inclusive calendar-date range, ignoring workday boundaries. This is the
// calendar-scoped rollup used for weeks and months; it intentionally scopes
// differently than the workday-scoped daily summary.
func (s *TripService) SummaryBetweenDates(ctx context.Context, start, end time.Time) (domain.Summary, error) {
	rangeStart, _ := dates.DayBounds(start)
	_, rangeEnd := dates.DayBounds(end)

	trips, err := s.trips.ListStartedBetween(ctx, rangeStart, rangeEnd)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.TripService.SummaryBetweenDates: %w", err)
	}
	return domain.Summarize(trips), nil
}

// Snapshots returns a trip's geo snapshots, oldest first.
// Returns domain.ErrNotFound when the trip does not exist.
func (s *TripService) Snapshots(ctx context.Context, tripID int64) ([]domain.TripGeoSnapshot, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.TripService.Snapshots: %w", err)
	}

	snaps, err := s.snapshots.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Snapshots: %w", err)
	}
	return snaps, nil
}

// currentFix obtains a GPS fix, or fails the whole operation.
func (s *TripService) currentFix(ctx context.Context, op string) (location.Fix, error) {
	if s.fixes == nil {
		return location.Fix{}, fmt.Errorf("service.TripService.%s: no location provider configured", op)
	}
	fix, err := s.fixes.CurrentFix(ctx)
	if err != nil {
		return location.Fix{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	return fix, nil
}

// recordSnapshot resolves the fix against the zone catalog and persists an
// immutable snapshot for the trip boundary.
func (s *TripService) recordSnapshot(ctx context.Context, tripID int64, typ domain.SnapshotType, fix location.Fix) error {
	var zoneID *string
	if s.zones != nil {
		zone := s.zones.FirstMatchingZone(geo.Context{
			Point:     geo.Point{Latitude: fix.Latitude, Longitude: fix.Longitude},
			Timestamp: fix.Timestamp,
		})
		if zone != nil {
			zoneID = &zone.ID
		}
	}

	_, err := s.snapshots.Create(ctx, domain.TripGeoSnapshot{
		TripID:    tripID,
		Type:      typ,
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Timestamp: fix.Timestamp,
		ZoneID:    zoneID,
	})
	return err
}

// validateFinish checks the fare fields shared by finish, update, and manual
// creation.
func validateFinish(amount float64, payment domain.PaymentType, source domain.TripSource) error {
	if amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	if !payment.Valid() {
		return fmt.Errorf("%w: unknown payment type %q", domain.ErrValidation, payment)
	}
	if !source.Valid() {
		return fmt.Errorf("%w: unknown trip source %q", domain.ErrValidation, source)
	}
	return nil
}
