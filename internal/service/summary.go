package service

import (
	"context"
	"fmt"
	"time"

	"github.com/taxilog/backend/internal/dates"
	"github.com/taxilog/backend/internal/domain"
)

// SummaryService computes the rolled-up earnings views the goals screens
// compare against. It owns no aggregation logic of its own: it picks the
// right date range and delegates to the trip service.
//
// Scoping rules differ on purpose and must not be unified: "today" is
// workday-scoped (an overnight shift counts as one day), while week and
// month are calendar-scoped (they match invoicing periods).
type SummaryService struct {
	trips    *TripService
	workdays *WorkdayService
	now      func() time.Time
}

// NewSummaryService constructs a SummaryService.
func NewSummaryService(trips *TripService, workdays *WorkdayService) *SummaryService {
	return &SummaryService{trips: trips, workdays: workdays, now: time.Now}
}

// WithClock overrides the service clock. Intended for tests.
func (s *SummaryService) WithClock(now func() time.Time) *SummaryService {
	s.now = now
	return s
}

// Today returns the summary of today's workday. With no workday for today —
// and none open — it returns a zero summary, not an error.
func (s *SummaryService) Today(ctx context.Context) (domain.Summary, error) {
	workday, err := s.workdays.ForDate(ctx, s.now())
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.SummaryService.Today: %w", err)
	}
	if workday == nil {
		return domain.Summary{}, nil
	}

	summary, err := s.trips.SummaryForWorkday(ctx, workday.ID)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.SummaryService.Today: %w", err)
	}
	return summary, nil
}

// Week returns the summary of the current Monday–Sunday week, clipped to the
// month and to today.
func (s *SummaryService) Week(ctx context.Context) (domain.Summary, error) {
	r := dates.CurrentWeekRange(s.now())
	summary, err := s.trips.SummaryBetweenDates(ctx, r.Start, r.End)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.SummaryService.Week: %w", err)
	}
	return summary, nil
}

// Month returns the summary from the first of the month through today.
func (s *SummaryService) Month(ctx context.Context) (domain.Summary, error) {
	r := dates.CurrentMonthRange(s.now())
	summary, err := s.trips.SummaryBetweenDates(ctx, r.Start, r.End)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service.SummaryService.Month: %w", err)
	}
	return summary, nil
}
