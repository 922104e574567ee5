package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taxilog/backend/internal/domain"
)

const workdayColumns = `id, start_time, end_time, is_closed, created_at`

// WorkdayRepo defines the persistence operations for workdays.
type WorkdayRepo interface {
	// Create inserts a new open workday starting at startTime.
	// Inserting while another workday is open returns domain.ErrWorkdayOpen.
	Create(ctx context.Context, startTime time.Time) (domain.Workday, error)

	// GetByID retrieves a workday by primary key.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (domain.Workday, error)

	// GetOpen returns the currently open workday.
	// Returns domain.ErrNotFound when none is open.
	GetOpen(ctx context.Context) (domain.Workday, error)

	// Close marks the workday closed with the given end time and returns the
	// updated record. Returns domain.ErrNotFound if it does not exist.
	Close(ctx context.Context, id int64, endTime time.Time) (domain.Workday, error)

	// FindByStartDay returns the workday whose start time falls in the
	// half-open window [dayStart, dayEnd), most recent first.
	// Returns domain.ErrNotFound when no workday started that day.
	FindByStartDay(ctx context.Context, dayStart, dayEnd time.Time) (domain.Workday, error)
}

// pgWorkdayRepo is the Postgres implementation of WorkdayRepo.
type pgWorkdayRepo struct {
	db db
}

// NewWorkdayRepo constructs a WorkdayRepo backed by the provided db connection.
func NewWorkdayRepo(db db) WorkdayRepo {
	return &pgWorkdayRepo{db: db}
}

// Create inserts a new open workday.
func (r *pgWorkdayRepo) Create(ctx context.Context, startTime time.Time) (domain.Workday, error) {
	const q = `
		INSERT INTO workdays (start_time)
		VALUES (@start_time)
		RETURNING ` + workdayColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"start_time": startTime})
	result, err := scanWorkday(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Workday{}, fmt.Errorf("repo.WorkdayRepo.Create: %w", domain.ErrWorkdayOpen)
		}
		return domain.Workday{}, fmt.Errorf("repo.WorkdayRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a workday by primary key.
func (r *pgWorkdayRepo) GetByID(ctx context.Context, id int64) (domain.Workday, error) {
	const q = `SELECT ` + workdayColumns + ` FROM workdays WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanWorkday(row)
	if err != nil {
		return domain.Workday{}, fmt.Errorf("repo.WorkdayRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetOpen returns the open workday, if any.
func (r *pgWorkdayRepo) GetOpen(ctx context.Context) (domain.Workday, error) {
	const q = `
		SELECT ` + workdayColumns + `
		FROM workdays
		WHERE is_closed = false
		ORDER BY start_time DESC
		LIMIT 1`

	row := r.db.QueryRow(ctx, q)
	result, err := scanWorkday(row)
	if err != nil {
		return domain.Workday{}, fmt.Errorf("repo.WorkdayRepo.GetOpen: %w", err)
	}
	return result, nil
}

// Close stamps the end time and marks the workday closed.
func (r *pgWorkdayRepo) Close(ctx context.Context, id int64, endTime time.Time) (domain.Workday, error) {
	const q = `
		UPDATE workdays
		SET end_time  = @end_time,
		    is_closed = true
		WHERE id = @id
		RETURNING ` + workdayColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "end_time": endTime})
	result, err := scanWorkday(row)
	if err != nil {
		return domain.Workday{}, fmt.Errorf("repo.WorkdayRepo.Close: %w", err)
	}
	return result, nil
}

// FindByStartDay returns the workday that started within [dayStart, dayEnd).
func (r *pgWorkdayRepo) FindByStartDay(ctx context.Context, dayStart, dayEnd time.Time) (domain.Workday, error) {
	const q = `
		SELECT ` + workdayColumns + `
		FROM workdays
		WHERE start_time >= @day_start AND start_time < @day_end
		ORDER BY start_time DESC
		LIMIT 1`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"day_start": dayStart, "day_end": dayEnd})
	result, err := scanWorkday(row)
	if err != nil {
		return domain.Workday{}, fmt.Errorf("repo.WorkdayRepo.FindByStartDay: %w", err)
	}
	return result, nil
}

// scanWorkday maps a single database row into a domain.Workday.
func scanWorkday(s scanner) (domain.Workday, error) {
	var w domain.Workday

	err := s.Scan(&w.ID, &w.StartTime, &w.EndTime, &w.IsClosed, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Workday{}, domain.ErrNotFound
		}
		return domain.Workday{}, err
	}

	return w, nil
}
