// Package schema holds the versioned hazard rulebook: per-hazard
// explanations, recommendations, status-condition templates, and
// per-volcano special cases. A schema is loaded once at process start
// and is read-only afterwards, so a single instance is safe for
// concurrent use by the decision engine.
package schema

import "strings"

// HazardCondition is one status template inside a rule's condition map.
// Unknown fields from the rulebook file are preserved in Extras so the
// schema can evolve without the loader dropping data.
type HazardCondition struct {
	Template    string
	Notes       string
	ThresholdKM float64
	ThresholdM  float64
	Extras      map[string]any
}

// HazardRule is the rulebook entry for one hazard type.
type HazardRule struct {
	Name              string
	Explanation       string
	ExplanationAlt    string
	Recommendation    string
	RecommendationAlt string
	Conditions        map[string]HazardCondition
	SpecialCases      map[string]any
	AppliesTo         []string
}

// RuleSchema is the full rulebook.
type RuleSchema struct {
	Metadata           map[string]string
	SeismicRules       map[string]HazardRule
	VolcanicRules      map[string]HazardRule
	DecisionLogic      map[string][]string
	MatchingParameters map[string]any
}

// SeismicRule returns the rule for the given seismic hazard key.
func (s *RuleSchema) SeismicRule(key string) (HazardRule, bool) {
	r, ok := s.SeismicRules[key]
	return r, ok
}

// VolcanicRule returns the rule for the given volcanic hazard key.
func (s *RuleSchema) VolcanicRule(key string) (HazardRule, bool) {
	r, ok := s.VolcanicRules[key]
	return r, ok
}

// SpecialCaseString digs a string out of a rule's special-cases
// structure by path, e.g. SpecialCaseString("pinatubo_zones", "zone_3",
// "explanation"). Returns ok=false on any missing or non-map step, so a
// malformed special case degrades to the base wording instead of
// failing the report.
func (r HazardRule) SpecialCaseString(path ...string) (string, bool) {
	if len(path) == 0 {
		return "", false
	}
	var current any = r.SpecialCases
	for _, key := range path[:len(path)-1] {
		m, ok := asStringMap(current)
		if !ok {
			return "", false
		}
		current, ok = m[key]
		if !ok {
			return "", false
		}
	}
	m, ok := asStringMap(current)
	if !ok {
		return "", false
	}
	v, ok := m[path[len(path)-1]]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// asStringMap normalizes the map shapes yaml.v3 produces for nested
// structures.
func asStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}
