package domain

import "time"

// SnapshotType marks which trip lifecycle boundary a geo snapshot captures.
type SnapshotType string

const (
	SnapshotStart SnapshotType = "START"
	SnapshotEnd   SnapshotType = "END"
)

// TripGeoSnapshot is an immutable record of a GPS fix taken at trip start or
// end, with the zone it resolved to at capture time. One snapshot exists per
// trip per boundary; snapshots are deleted only by cascade when their trip is.
type TripGeoSnapshot struct {
	ID        int64        `json:"id"`
	TripID    int64        `json:"tripId"`
	Type      SnapshotType `json:"type"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Timestamp time.Time    `json:"timestamp"`

	// ZoneID is the first catalog zone that matched the fix, or nil when
	// none did.
	ZoneID *string `json:"zoneId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
