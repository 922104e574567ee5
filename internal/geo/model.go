// Package geo implements the geofence rule-evaluation engine: a declarative
// zone catalog, one evaluator per rule kind, and strict-AND zone matching
// with fail-safe semantics.
//
// The package is self-contained: it knows nothing about trips, workdays, or
// persistence. Callers hand it a Context (a point plus a timestamp) and get
// back the matching zones.
package geo

import "time"

// Point is a minimal geographic position. It carries no logic and does not
// validate its coordinates.
type Point struct {
	Latitude  float64 `toml:"latitude" json:"latitude"`
	Longitude float64 `toml:"longitude" json:"longitude"`
}

// Context is what the engine evaluates a zone against. The timestamp is
// unused by the current rule kinds but is part of the contract so temporal
// rules can be added without changing signatures.
type Context struct {
	Point     Point     `json:"point"`
	Timestamp time.Time `json:"timestamp"`
}

// CirclePayload is the payload of a TypeCircle rule: a center point and a
// radius in meters.
type CirclePayload struct {
	Center       Point   `toml:"center" json:"center"`
	RadiusMeters float64 `toml:"radius_meters" json:"radiusMeters"`
}

// Rule is one declarative condition inside a Zone. Type selects the
// evaluator; the payload field matching Type carries the rule's parameters.
// A rule whose payload field is nil, or whose Type has no registered
// evaluator, never matches.
type Rule struct {
	Type string `toml:"type" json:"type"`

	Circle *CirclePayload `toml:"circle" json:"circle,omitempty"`
}

// Zone is a named geofenced region defined by one or more rules that must
// all hold. Zones are read-only configuration; catalog order is the match
// priority order.
type Zone struct {
	ID    string `toml:"id" json:"id"`
	Name  string `toml:"name" json:"name"`
	Rules []Rule `toml:"rules" json:"rules"`
}
