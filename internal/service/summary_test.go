package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxilog/backend/internal/domain"
	"github.com/taxilog/backend/internal/service"
)

func newSummaryService(trips *mockTripRepo, workdays *mockWorkdayRepo) *service.SummaryService {
	wsvc := service.NewWorkdayService(workdays).WithClock(fixedClock(noon))
	tsvc := service.NewTripService(trips, nil, wsvc, nil, nil).WithClock(fixedClock(noon))
	return service.NewSummaryService(tsvc, wsvc).WithClock(fixedClock(noon))
}

func cashTrip(amount float64) domain.Trip {
	t := activeTrip()
	t.EndTime = ptr(t.StartTime.Add(10 * time.Minute))
	t.Amount = &amount
	t.Payment = ptr(domain.PaymentCash)
	return t
}

func TestSummaryService_Today_WorkdayScoped(t *testing.T) {
	// Today's summary covers the open workday's trips, even the ones that
	// started before midnight.
	workdays := &mockWorkdayRepo{
		getOpen: func(context.Context) (domain.Workday, error) {
			return openWorkday(7, noon.Add(-14*time.Hour)), nil
		},
		getByID: func(_ context.Context, id int64) (domain.Workday, error) {
			return openWorkday(id, noon.Add(-14*time.Hour)), nil
		},
	}
	var listedWorkday int64
	trips := &mockTripRepo{
		listByWorkday: func(_ context.Context, workdayID int64) ([]domain.Trip, error) {
			listedWorkday = workdayID
			return []domain.Trip{cashTrip(20), cashTrip(15)}, nil
		},
	}
	svc := newSummaryService(trips, workdays)

	got, err := svc.Today(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(7), listedWorkday)
	assert.Equal(t, 35.0, got.Total)
	assert.Equal(t, 35.0, got.Efectivo)
}

func TestSummaryService_Today_NoWorkday(t *testing.T) {
	svc := newSummaryService(&mockTripRepo{}, noWorkdayRepo())

	got, err := svc.Today(context.Background())

	require.NoError(t, err, "a day without a workday reads as zero, not an error")
	assert.Equal(t, domain.Summary{}, got)
}

func TestSummaryService_Week_CalendarScoped(t *testing.T) {
	// noon is Sunday 2025-06-15; the week runs Monday the 9th through today.
	var gotStart, gotEnd time.Time
	trips := &mockTripRepo{
		listStartedBetween: func(_ context.Context, start, end time.Time) ([]domain.Trip, error) {
			gotStart, gotEnd = start, end
			return []domain.Trip{cashTrip(50)}, nil
		},
	}
	svc := newSummaryService(trips, &mockWorkdayRepo{})

	got, err := svc.Week(context.Background())

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC), gotStart)
	assert.Equal(t, time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), gotEnd)
	assert.Equal(t, 50.0, got.Total)
}

func TestSummaryService_Month(t *testing.T) {
	var gotStart, gotEnd time.Time
	trips := &mockTripRepo{
		listStartedBetween: func(_ context.Context, start, end time.Time) ([]domain.Trip, error) {
			gotStart, gotEnd = start, end
			return nil, nil
		},
	}
	svc := newSummaryService(trips, &mockWorkdayRepo{})

	got, err := svc.Month(context.Background())

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), gotStart)
	assert.Equal(t, time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), gotEnd)
	assert.Equal(t, domain.Summary{}, got)
}
