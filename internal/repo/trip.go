// Package repo contains all database access logic for the taxi logbook API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taxilog/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// uniqueViolation is the Postgres error code raised when an insert or update
// breaks a unique index — here, the partial indexes enforcing "one active
// trip" and "one open workday".
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique-index violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// tripColumns is the scan column list shared by every trip query.
const tripColumns = `id, start_time, end_time, amount, charged_amount, cash_tip,
	payment, source, custom_source, workday_id, created_at`

// TripRepo defines the persistence operations for trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id and created_at populated). Inserting a second active
	// trip (nil EndTime) returns domain.ErrTripActive.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// GetActive returns the most-recently-started trip with no end time.
	// Returns domain.ErrNotFound when no trip is active.
	GetActive(ctx context.Context) (domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip and returns
	// the updated record. Returns domain.ErrNotFound if the trip does not
	// exist.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID; its geo snapshots go with it (ON DELETE
	// CASCADE). Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error

	// ListByWorkday returns all trips of a workday, most recent start first.
	ListByWorkday(ctx context.Context, workdayID int64) ([]domain.Trip, error)

	// ListStartedBetween returns all trips whose start time falls in the
	// half-open window [start, end), most recent start first.
	ListStartedBetween(ctx context.Context, start, end time.Time) ([]domain.Trip, error)

	// ListAll returns every trip ordered by start time ascending, for the
	// CSV export.
	ListAll(ctx context.Context) ([]domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (start_time, end_time, amount, charged_amount, cash_tip,
		                   payment, source, custom_source, workday_id)
		VALUES (@start_time, @end_time, @amount, @charged_amount, @cash_tip,
		        @payment, @source, @custom_source, @workday_id)
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, tripArgs(trip))
	result, err := scanTrip(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", domain.ErrTripActive)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetActive returns the in-progress trip, if any.
func (r *pgTripRepo) GetActive(ctx context.Context) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1`

	row := r.db.QueryRow(ctx, q)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetActive: %w", err)
	}
	return result, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET start_time     = @start_time,
		    end_time       = @end_time,
		    amount         = @amount,
		    charged_amount = @charged_amount,
		    cash_tip       = @cash_tip,
		    payment        = @payment,
		    source         = @source,
		    custom_source  = @custom_source,
		    workday_id     = @workday_id
		WHERE id = @id
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ListByWorkday returns a workday's trips, most recent start first.
func (r *pgTripRepo) ListByWorkday(ctx context.Context, workdayID int64) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE workday_id = @workday_id
		ORDER BY start_time DESC`

	return r.list(ctx, "ListByWorkday", q, pgx.NamedArgs{"workday_id": workdayID})
}

// ListStartedBetween returns trips starting within [start, end).
func (r *pgTripRepo) ListStartedBetween(ctx context.Context, start, end time.Time) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE start_time >= @start AND start_time < @end
		ORDER BY start_time DESC`

	return r.list(ctx, "ListStartedBetween", q, pgx.NamedArgs{"start": start, "end": end})
}

// ListAll returns every trip, oldest start first.
func (r *pgTripRepo) ListAll(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY start_time ASC`
	return r.list(ctx, "ListAll", q)
}

// list runs a multi-row trip query and scans the results.
func (r *pgTripRepo) list(ctx context.Context, op, q string, args ...any) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.%s: scan: %w", op, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: rows: %w", op, err)
	}

	return trips, nil
}

// tripArgs maps a domain.Trip onto the named arguments shared by Create and
// Update. Nil pointers become SQL NULLs.
func tripArgs(trip domain.Trip) pgx.NamedArgs {
	var payment *string
	if trip.Payment != nil {
		p := string(*trip.Payment)
		payment = &p
	}
	return pgx.NamedArgs{
		"start_time":     trip.StartTime,
		"end_time":       trip.EndTime,
		"amount":         trip.Amount,
		"charged_amount": trip.ChargedAmount,
		"cash_tip":       trip.CashTip,
		"payment":        payment,
		"source":         string(trip.Source),
		"custom_source":  trip.CustomSource,
		"workday_id":     trip.WorkdayID,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t       domain.Trip
		payment *string
		source  string
	)

	err := s.Scan(&t.ID, &t.StartTime, &t.EndTime, &t.Amount, &t.ChargedAmount,
		&t.CashTip, &payment, &source, &t.CustomSource, &t.WorkdayID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.Source = domain.TripSource(source)
	if payment != nil {
		p := domain.PaymentType(*payment)
		t.Payment = &p
	}

	return t, nil
}
