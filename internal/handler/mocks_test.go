package handler_test

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/taxilog/backend/internal/domain"
	"github.com/taxilog/backend/internal/geo"
	"github.com/taxilog/backend/internal/handler"
	"github.com/taxilog/backend/internal/service"
)

// Hand-written mock servicers, one function field per interface method.
// Set only what the test under exercise needs.

type mockWorkdayServicer struct {
	open        func(ctx context.Context) (domain.Workday, error)
	closeActive func(ctx context.Context) (*domain.Workday, error)
	active      func(ctx context.Context) (*domain.Workday, error)
	infoForDate func(ctx context.Context, date time.Time) (*domain.Workday, error)
}

func (m *mockWorkdayServicer) Open(ctx context.Context) (domain.Workday, error) {
	return m.open(ctx)
}
func (m *mockWorkdayServicer) CloseActive(ctx context.Context) (*domain.Workday, error) {
	return m.closeActive(ctx)
}
func (m *mockWorkdayServicer) Active(ctx context.Context) (*domain.Workday, error) {
	return m.active(ctx)
}
func (m *mockWorkdayServicer) InfoForDate(ctx context.Context, date time.Time) (*domain.Workday, error) {
	return m.infoForDate(ctx, date)
}

var _ handler.WorkdayServicer = (*mockWorkdayServicer)(nil)

type mockTripServicer struct {
	start              func(ctx context.Context) (domain.Trip, error)
	startWithLocation  func(ctx context.Context) (domain.Trip, error)
	finish             func(ctx context.Context, in service.FinishTripInput) (*domain.Trip, error)
	finishWithLocation func(ctx context.Context, in service.FinishTripInput) (*domain.Trip, error)
	update             func(ctx context.Context, id int64, in service.UpdateTripInput) (domain.Trip, error)
	delete             func(ctx context.Context, id int64) error
	createManual       func(ctx context.Context, in service.ManualTripInput) (domain.Trip, error)
	active             func(ctx context.Context) (*domain.Trip, error)
	forWorkday         func(ctx context.Context, workdayID int64) ([]domain.Trip, error)
	forDate            func(ctx context.Context, date time.Time) ([]domain.Trip, error)
	summaryForWorkday  func(ctx context.Context, workdayID int64) (domain.Summary, error)
	snapshots          func(ctx context.Context, tripID int64) ([]domain.TripGeoSnapshot, error)
}

func (m *mockTripServicer) Start(ctx context.Context) (domain.Trip, error) {
	return m.start(ctx)
}
func (m *mockTripServicer) StartWithLocation(ctx context.Context) (domain.Trip, error) {
	return m.startWithLocation(ctx)
}
func (m *mockTripServicer) Finish(ctx context.Context, in service.FinishTripInput) (*domain.Trip, error) {
	return m.finish(ctx, in)
}
func (m *mockTripServicer) FinishWithLocation(ctx context.Context, in service.FinishTripInput) (*domain.Trip, error) {
	return m.finishWithLocation(ctx, in)
}
func (m *mockTripServicer) Update(ctx context.Context, id int64, in service.UpdateTripInput) (domain.Trip, error) {
	return m.update(ctx, id, in)
}
func (m *mockTripServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) CreateManual(ctx context.Context, in service.ManualTripInput) (domain.Trip, error) {
	return m.createManual(ctx, in)
}
func (m *mockTripServicer) Active(ctx context.Context) (*domain.Trip, error) {
	return m.active(ctx)
}
func (m *mockTripServicer) ForWorkday(ctx context.Context, workdayID int64) ([]domain.Trip, error) {
	return m.forWorkday(ctx, workdayID)
}
func (m *mockTripServicer) ForDate(ctx context.Context, date time.Time) ([]domain.Trip, error) {
	return m.forDate(ctx, date)
}
func (m *mockTripServicer) SummaryForWorkday(ctx context.Context, workdayID int64) (domain.Summary, error) {
	return m.summaryForWorkday(ctx, workdayID)
}
func (m *mockTripServicer) Snapshots(ctx context.Context, tripID int64) ([]domain.TripGeoSnapshot, error) {
	return m.snapshots(ctx, tripID)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockSummaryServicer struct {
	today func(ctx context.Context) (domain.Summary, error)
	week  func(ctx context.Context) (domain.Summary, error)
	month func(ctx context.Context) (domain.Summary, error)
}

func (m *mockSummaryServicer) Today(ctx context.Context) (domain.Summary, error) {
	return m.today(ctx)
}
func (m *mockSummaryServicer) Week(ctx context.Context) (domain.Summary, error) {
	return m.week(ctx)
}
func (m *mockSummaryServicer) Month(ctx context.Context) (domain.Summary, error) {
	return m.month(ctx)
}

var _ handler.SummaryServicer = (*mockSummaryServicer)(nil)

type mockGoalServicer struct {
	get  func(ctx context.Context) (domain.Goals, error)
	save func(ctx context.Context, goals domain.Goals) error
}

func (m *mockGoalServicer) Get(ctx context.Context) (domain.Goals, error) {
	return m.get(ctx)
}
func (m *mockGoalServicer) Save(ctx context.Context, goals domain.Goals) error {
	return m.save(ctx, goals)
}

var _ handler.GoalServicer = (*mockGoalServicer)(nil)

type mockExportServicer struct {
	writeCSV func(ctx context.Context, w io.Writer) error
}

func (m *mockExportServicer) WriteCSV(ctx context.Context, w io.Writer) error {
	return m.writeCSV(ctx, w)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// serverOpts collects the mocks a test actually cares about; everything left
// nil will panic on use, flagging an unexpected call path.
type serverOpts struct {
	workdays  handler.WorkdayServicer
	trips     handler.TripServicer
	summaries handler.SummaryServicer
	goals     handler.GoalServicer
	exports   handler.ExportServicer
	zones     handler.ZoneServicer
}

func newRouter(opts serverOpts) http.Handler {
	if opts.zones == nil {
		opts.zones = geo.NewDefaultService(nil)
	}
	return handler.NewServer(opts.workdays, opts.trips, opts.summaries,
		opts.goals, opts.exports, opts.zones).Routes()
}

func ptr[T any](v T) *T { return &v }
