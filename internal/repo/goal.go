package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taxilog/backend/internal/domain"
)

// goalsRowID is the primary key of the single goals row. Goals behave like a
// key-value setting: one record, overwritten wholesale on save.
const goalsRowID = 1

// GoalRepo defines the persistence operations for the goals record.
type GoalRepo interface {
	// Get returns the stored goals.
	// Returns domain.ErrNotFound when no goals were ever saved.
	Get(ctx context.Context) (domain.Goals, error)

	// Save overwrites the goals record, creating it if absent.
	Save(ctx context.Context, goals domain.Goals) error
}

// pgGoalRepo is the Postgres implementation of GoalRepo.
type pgGoalRepo struct {
	db db
}

// NewGoalRepo constructs a GoalRepo backed by the provided db connection.
func NewGoalRepo(db db) GoalRepo {
	return &pgGoalRepo{db: db}
}

// Get returns the stored goals record.
func (r *pgGoalRepo) Get(ctx context.Context) (domain.Goals, error) {
	const q = `SELECT daily, weekly, monthly FROM goals WHERE id = @id`

	var g domain.Goals
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": goalsRowID}).
		Scan(&g.Daily, &g.Weekly, &g.Monthly)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Goals{}, fmt.Errorf("repo.GoalRepo.Get: %w", domain.ErrNotFound)
		}
		return domain.Goals{}, fmt.Errorf("repo.GoalRepo.Get: %w", err)
	}
	return g, nil
}

// Save upserts the goals record.
func (r *pgGoalRepo) Save(ctx context.Context, goals domain.Goals) error {
	const q = `
		INSERT INTO goals (id, daily, weekly, monthly)
		VALUES (@id, @daily, @weekly, @monthly)
		ON CONFLICT (id) DO UPDATE
		SET daily   = EXCLUDED.daily,
		    weekly  = EXCLUDED.weekly,
		    monthly = EXCLUDED.monthly`

	args := pgx.NamedArgs{
		"id":      goalsRowID,
		"daily":   goals.Daily,
		"weekly":  goals.Weekly,
		"monthly": goals.Monthly,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.GoalRepo.Save: %w", err)
	}
	return nil
}
