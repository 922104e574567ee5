package geo

// Service is the entry point of the geo subsystem for the rest of the
// application: an ordered zone catalog plus the evaluation engine.
type Service struct {
	zones     []Zone
	evaluator *ZoneEvaluator
}

// NewService builds a Service over the given catalog. Catalog order is
// preserved; it is the de facto priority order for FirstMatchingZone.
func NewService(zones []Zone, evaluator *ZoneEvaluator) *Service {
	return &Service{zones: zones, evaluator: evaluator}
}

// NewDefaultService builds a Service with all known rule evaluators
// registered.
func NewDefaultService(zones []Zone) *Service {
	return NewService(zones, NewZoneEvaluator(CircleEvaluator{}))
}

// Zones returns the catalog in priority order.
func (s *Service) Zones() []Zone {
	return s.zones
}

// MatchingZones returns every catalog zone the context matches, in catalog
// order.
func (s *Service) MatchingZones(ctx Context) []Zone {
	var matched []Zone
	for _, zone := range s.zones {
		if s.evaluator.Evaluate(zone, ctx) {
			matched = append(matched, zone)
		}
	}
	return matched
}

// FirstMatchingZone returns the first catalog zone the context matches, or
// nil when none does.
func (s *Service) FirstMatchingZone(ctx Context) *Zone {
	for i := range s.zones {
		if s.evaluator.Evaluate(s.zones[i], ctx) {
			return &s.zones[i]
		}
	}
	return nil
}
