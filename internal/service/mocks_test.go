package service_test

import (
	"context"
	"time"

	"github.com/taxilog/backend/internal/domain"
	"github.com/taxilog/backend/internal/location"
	"github.com/taxilog/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field — set only the ones your test needs; an unset method that
// gets called panics, which is exactly the signal you want.

type mockWorkdayRepo struct {
	create         func(ctx context.Context, startTime time.Time) (domain.Workday, error)
	getByID        func(ctx context.Context, id int64) (domain.Workday, error)
	getOpen        func(ctx context.Context) (domain.Workday, error)
	close          func(ctx context.Context, id int64, endTime time.Time) (domain.Workday, error)
	findByStartDay func(ctx context.Context, dayStart, dayEnd time.Time) (domain.Workday, error)
}

func (m *mockWorkdayRepo) Create(ctx context.Context, startTime time.Time) (domain.Workday, error) {
	return m.create(ctx, startTime)
}
func (m *mockWorkdayRepo) GetByID(ctx context.Context, id int64) (domain.Workday, error) {
	return m.getByID(ctx, id)
}
func (m *mockWorkdayRepo) GetOpen(ctx context.Context) (domain.Workday, error) {
	return m.getOpen(ctx)
}
func (m *mockWorkdayRepo) Close(ctx context.Context, id int64, endTime time.Time) (domain.Workday, error) {
	return m.close(ctx, id, endTime)
}
func (m *mockWorkdayRepo) FindByStartDay(ctx context.Context, dayStart, dayEnd time.Time) (domain.Workday, error) {
	return m.findByStartDay(ctx, dayStart, dayEnd)
}

var _ repo.WorkdayRepo = (*mockWorkdayRepo)(nil)

type mockTripRepo struct {
	create             func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID            func(ctx context.Context, id int64) (domain.Trip, error)
	getActive          func(ctx context.Context) (domain.Trip, error)
	update             func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete             func(ctx context.Context, id int64) error
	listByWorkday      func(ctx context.Context, workdayID int64) ([]domain.Trip, error)
	listStartedBetween func(ctx context.Context, start, end time.Time) ([]domain.Trip, error)
	listAll            func(ctx context.Context) ([]domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) GetActive(ctx context.Context) (domain.Trip, error) {
	return m.getActive(ctx)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}
func (m *mockTripRepo) ListByWorkday(ctx context.Context, workdayID int64) ([]domain.Trip, error) {
	return m.listByWorkday(ctx, workdayID)
}
func (m *mockTripRepo) ListStartedBetween(ctx context.Context, start, end time.Time) ([]domain.Trip, error) {
	return m.listStartedBetween(ctx, start, end)
}
func (m *mockTripRepo) ListAll(ctx context.Context) ([]domain.Trip, error) {
	return m.listAll(ctx)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockSnapshotRepo struct {
	create     func(ctx context.Context, snap domain.TripGeoSnapshot) (domain.TripGeoSnapshot, error)
	listByTrip func(ctx context.Context, tripID int64) ([]domain.TripGeoSnapshot, error)
}

func (m *mockSnapshotRepo) Create(ctx context.Context, snap domain.TripGeoSnapshot) (domain.TripGeoSnapshot, error) {
	return m.create(ctx, snap)
}
func (m *mockSnapshotRepo) ListByTrip(ctx context.Context, tripID int64) ([]domain.TripGeoSnapshot, error) {
	return m.listByTrip(ctx, tripID)
}

var _ repo.SnapshotRepo = (*mockSnapshotRepo)(nil)

type mockGoalRepo struct {
	get  func(ctx context.Context) (domain.Goals, error)
	save func(ctx context.Context, goals domain.Goals) error
}

func (m *mockGoalRepo) Get(ctx context.Context) (domain.Goals, error) {
	return m.get(ctx)
}
func (m *mockGoalRepo) Save(ctx context.Context, goals domain.Goals) error {
	return m.save(ctx, goals)
}

var _ repo.GoalRepo = (*mockGoalRepo)(nil)

// stubProvider is a canned location.Provider.
type stubProvider struct {
	fix location.Fix
	err error
}

func (p *stubProvider) CurrentFix(context.Context) (location.Fix, error) {
	return p.fix, p.err
}

var _ location.Provider = (*stubProvider)(nil)

// fixedClock pins the service clock for tests that reason about "today".
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T { return &v }
