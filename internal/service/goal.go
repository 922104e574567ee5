package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/taxilog/backend/internal/domain"
	"github.com/taxilog/backend/internal/repo"
)

// GoalService manages the driver's savings targets.
type GoalService struct {
	repo repo.GoalRepo
}

// NewGoalService constructs a GoalService backed by the provided repo.
func NewGoalService(r repo.GoalRepo) *GoalService {
	return &GoalService{repo: r}
}

// Get returns the saved goals. When none were ever saved it returns
// zero-valued targets, not an error.
func (s *GoalService) Get(ctx context.Context) (domain.Goals, error) {
	goals, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Goals{}, nil
		}
		return domain.Goals{}, fmt.Errorf("service.GoalService.Get: %w", err)
	}
	return goals, nil
}

// Save overwrites the goals record wholesale.
func (s *GoalService) Save(ctx context.Context, goals domain.Goals) error {
	if goals.Daily < 0 || goals.Weekly < 0 || goals.Monthly < 0 {
		return fmt.Errorf("service.GoalService.Save: %w: goals must not be negative", domain.ErrValidation)
	}

	if err := s.repo.Save(ctx, goals); err != nil {
		return fmt.Errorf("service.GoalService.Save: %w", err)
	}
	return nil
}
