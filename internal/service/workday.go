// Package service contains the business logic for the taxi logbook API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taxilog/backend/internal/dates"
	"github.com/taxilog/backend/internal/domain"
	"github.com/taxilog/backend/internal/repo"
)

// WorkdayService implements the workday lifecycle and the date-to-workday
// resolution rules. A workday moves OPEN → CLOSED exactly once; at most one
// workday is open at any time.
type WorkdayService struct {
	repo repo.WorkdayRepo
	now  func() time.Time
}

// NewWorkdayService constructs a WorkdayService backed by the provided repo.
func NewWorkdayService(r repo.WorkdayRepo) *WorkdayService {
	return &WorkdayService{repo: r, now: time.Now}
}

// WithClock overrides the service clock. Intended for tests that pin "today".
func (s *WorkdayService) WithClock(now func() time.Time) *WorkdayService {
	s.now = now
	return s
}

// Open starts a new workday. Returns domain.ErrWorkdayOpen if one is already
// open — either from the pre-check here or from the storage-level unique
// index if two opens race.
func (s *WorkdayService) Open(ctx context.Context) (domain.Workday, error) {
	_, err := s.repo.GetOpen(ctx)
	if err == nil {
		return domain.Workday{}, fmt.Errorf("service.WorkdayService.Open: %w", domain.ErrWorkdayOpen)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Workday{}, fmt.Errorf("service.WorkdayService.Open: %w", err)
	}

	w, err := s.repo.Create(ctx, s.now())
	if err != nil {
		return domain.Workday{}, fmt.Errorf("service.WorkdayService.Open: %w", err)
	}
	return w, nil
}

// CloseActive closes the open workday, stamping its end time.
// A redundant close (nothing open) is a silent no-op returning nil.
func (s *WorkdayService) CloseActive(ctx context.Context) (*domain.Workday, error) {
	open, err := s.repo.GetOpen(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("service.WorkdayService.CloseActive: %w", err)
	}

	closed, err := s.repo.Close(ctx, open.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("service.WorkdayService.CloseActive: %w", err)
	}
	return &closed, nil
}

// Active returns the open workday, or nil when none is open.
func (s *WorkdayService) Active(ctx context.Context) (*domain.Workday, error) {
	w, err := s.repo.GetOpen(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("service.WorkdayService.Active: %w", err)
	}
	return &w, nil
}

// Get returns a workday by ID.
func (s *WorkdayService) Get(ctx context.Context, id int64) (domain.Workday, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Workday{}, fmt.Errorf("service.WorkdayService.Get: %w", err)
	}
	return w, nil
}

// ForDate resolves the workday a calendar date belongs to, or nil if none.
//
// The resolution is deliberately asymmetric: if date is today and a workday
// is currently open, the open workday wins regardless of when it started —
// a session opened yesterday evening that is still running IS today's
// workday. For any other date, the match is strict: the workday whose start
// time falls inside that calendar day, most recent first.
func (s *WorkdayService) ForDate(ctx context.Context, date time.Time) (*domain.Workday, error) {
	if dates.SameDay(date, s.now()) {
		open, err := s.Active(ctx)
		if err != nil {
			return nil, fmt.Errorf("service.WorkdayService.ForDate: %w", err)
		}
		if open != nil {
			return open, nil
		}
	}

	return s.findByStartDay(ctx, "ForDate", date)
}

// InfoForDate returns the workday that started on the given calendar date,
// open or closed, or nil if none did. Unlike ForDate it never takes the
// "open workday captures today" shortcut — it reports historical status, not
// trip-association.
func (s *WorkdayService) InfoForDate(ctx context.Context, date time.Time) (*domain.Workday, error) {
	return s.findByStartDay(ctx, "InfoForDate", date)
}

func (s *WorkdayService) findByStartDay(ctx context.Context, op string, date time.Time) (*domain.Workday, error) {
	dayStart, dayEnd := dates.DayBounds(date)
	w, err := s.repo.FindByStartDay(ctx, dayStart, dayEnd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("service.WorkdayService.%s: %w", op, err)
	}
	return &w, nil
}
