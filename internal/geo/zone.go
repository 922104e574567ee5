package geo

// RuleEvaluator decides whether one rule holds for a context. Implementations
// are pure: no I/O, no state mutation.
type RuleEvaluator interface {
	// SupportedType is the rule type tag this evaluator handles.
	SupportedType() string

	// Evaluate reports whether the rule holds for the context.
	Evaluate(rule Rule, ctx Context) bool
}

// ZoneEvaluator composes rule evaluators into zone-level matching.
// Dispatch is by rule type tag over a lookup table, not by inheritance.
type ZoneEvaluator struct {
	evaluatorByType map[string]RuleEvaluator
}

// NewZoneEvaluator builds a ZoneEvaluator from the given rule evaluators.
// A later evaluator claiming the same type as an earlier one replaces it.
func NewZoneEvaluator(evaluators ...RuleEvaluator) *ZoneEvaluator {
	byType := make(map[string]RuleEvaluator, len(evaluators))
	for _, e := range evaluators {
		byType[e.SupportedType()] = e
	}
	return &ZoneEvaluator{evaluatorByType: byType}
}

// Evaluate reports whether the context matches the zone: every rule must
// hold (strict AND, short-circuiting on the first failure).
//
// Fail-safe semantics: a zone with no rules never matches, and a rule whose
// type has no registered evaluator fails the whole zone regardless of the
// other rules.
func (z *ZoneEvaluator) Evaluate(zone Zone, ctx Context) bool {
	if len(zone.Rules) == 0 {
		return false
	}

	for _, rule := range zone.Rules {
		evaluator, ok := z.evaluatorByType[rule.Type]
		if !ok {
			return false
		}
		if !evaluator.Evaluate(rule, ctx) {
			return false
		}
	}
	return true
}
