package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taxilog/backend/internal/domain"
)

const snapshotColumns = `id, trip_id, type, latitude, longitude, "timestamp", zone_id, created_at`

// SnapshotRepo defines the persistence operations for trip geo snapshots.
// Snapshots are insert-only; they disappear only via the trip cascade.
type SnapshotRepo interface {
	// Create inserts a new snapshot and returns the persisted record.
	Create(ctx context.Context, snap domain.TripGeoSnapshot) (domain.TripGeoSnapshot, error)

	// ListByTrip returns a trip's snapshots ordered by creation time
	// ascending (START before END).
	ListByTrip(ctx context.Context, tripID int64) ([]domain.TripGeoSnapshot, error)
}

// pgSnapshotRepo is the Postgres implementation of SnapshotRepo.
type pgSnapshotRepo struct {
	db db
}

// NewSnapshotRepo constructs a SnapshotRepo backed by the provided db connection.
func NewSnapshotRepo(db db) SnapshotRepo {
	return &pgSnapshotRepo{db: db}
}

// Create inserts a new snapshot row.
func (r *pgSnapshotRepo) Create(ctx context.Context, snap domain.TripGeoSnapshot) (domain.TripGeoSnapshot, error) {
	const q = `
		INSERT INTO trip_geo_snapshots (trip_id, type, latitude, longitude, "timestamp", zone_id)
		VALUES (@trip_id, @type, @latitude, @longitude, @timestamp, @zone_id)
		RETURNING ` + snapshotColumns

	args := pgx.NamedArgs{
		"trip_id":   snap.TripID,
		"type":      string(snap.Type),
		"latitude":  snap.Latitude,
		"longitude": snap.Longitude,
		"timestamp": snap.Timestamp,
		"zone_id":   snap.ZoneID,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSnapshot(row)
	if err != nil {
		return domain.TripGeoSnapshot{}, fmt.Errorf("repo.SnapshotRepo.Create: %w", err)
	}
	return result, nil
}

// ListByTrip returns all snapshots of a trip, oldest first.
func (r *pgSnapshotRepo) ListByTrip(ctx context.Context, tripID int64) ([]domain.TripGeoSnapshot, error) {
	const q = `
		SELECT ` + snapshotColumns + `
		FROM trip_geo_snapshots
		WHERE trip_id = @trip_id
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.SnapshotRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var snaps []domain.TripGeoSnapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SnapshotRepo.ListByTrip: scan: %w", err)
		}
		snaps = append(snaps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SnapshotRepo.ListByTrip: rows: %w", err)
	}

	return snaps, nil
}

// scanSnapshot maps a single database row into a domain.TripGeoSnapshot.
func scanSnapshot(s scanner) (domain.TripGeoSnapshot, error) {
	var (
		snap     domain.TripGeoSnapshot
		snapType string
	)

	err := s.Scan(&snap.ID, &snap.TripID, &snapType, &snap.Latitude,
		&snap.Longitude, &snap.Timestamp, &snap.ZoneID, &snap.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripGeoSnapshot{}, domain.ErrNotFound
		}
		return domain.TripGeoSnapshot{}, err
	}

	snap.Type = domain.SnapshotType(snapType)
	return snap, nil
}
