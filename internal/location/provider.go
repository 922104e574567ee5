// Package location defines the GPS fix boundary: a single "get the current
// position" operation that may fail with a permission or signal error.
// The trip service depends on the Provider interface; the concrete source of
// fixes is wired in main.
package location

import (
	"context"
	"time"
)

// Fix is one GPS position capture. It is a technical datum, not a business
// one: the trip service copies what it needs into its own records.
type Fix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// AccuracyMeters is the estimated accuracy radius, when the source
	// reports one.
	AccuracyMeters *float64 `json:"accuracyMeters,omitempty"`

	// Timestamp is when the fix was measured — location-aware trip
	// operations use it instead of the wall clock.
	Timestamp time.Time `json:"timestamp"`
}

// Provider obtains the current GPS fix. Calls may block on I/O and may fail
// (permission denied, no signal); callers treat failure as fatal for the
// enclosing operation and never fall back to a clock-based variant.
type Provider interface {
	CurrentFix(ctx context.Context) (Fix, error)
}
