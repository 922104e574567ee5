package geo

import "github.com/golang/geo/s2"

// TypeCircle is the rule type handled by CircleEvaluator.
const TypeCircle = "CIRCLE"

// earthRadiusMeters is the mean Earth radius used for great-circle distances.
const earthRadiusMeters = 6371000

// circleEpsilonMeters absorbs floating-point noise in the distance
// computation (roughly 0.1 mm). It is not a GPS-accuracy allowance.
const circleEpsilonMeters = 0.0001

// CircleEvaluator matches points inside a circular region.
type CircleEvaluator struct{}

// SupportedType returns the rule type this evaluator handles.
func (CircleEvaluator) SupportedType() string { return TypeCircle }

// Evaluate reports whether the context point lies within the rule's circle.
// The distance is the great-circle (haversine) distance on a sphere of the
// mean Earth radius. A rule without a circle payload never matches.
func (CircleEvaluator) Evaluate(rule Rule, ctx Context) bool {
	c := rule.Circle
	if c == nil {
		return false
	}

	distance := DistanceMeters(ctx.Point, c.Center)
	return distance <= c.RadiusMeters+circleEpsilonMeters
}

// DistanceMeters returns the great-circle distance between two points in
// meters.
func DistanceMeters(a, b Point) float64 {
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return p1.Distance(p2).Radians() * earthRadiusMeters
}
