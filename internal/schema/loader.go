package schema

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationError reports a structurally invalid rulebook at load time.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

//go:embed hazard_rules.yaml
var defaultRulebook []byte

// Required top-level rulebook keys.
var requiredTopLevel = []string{
	"metadata",
	"seismic_rules",
	"volcanic_rules",
	"decision_logic",
	"matching_parameters",
}

// Required hazard keys per category. A rulebook missing any of these is
// rejected at load time rather than discovered mid-report.
var (
	requiredSeismicHazards = []string{
		"active_fault",
		"liquefaction",
		"tsunami",
		"earthquake_induced_landslide",
		"fissure",
	}
	requiredVolcanicHazards = []string{
		"pdz_danger_zone",
		"lava_flow",
		"pyroclastic_density_current",
		"base_surge",
		"ballistic_projectiles",
		"lahar",
		"volcanic_tsunami",
		"fissure",
		"potentially_active_volcano",
	}
)

// LoadDefault parses the rulebook embedded in the binary.
func LoadDefault() (*RuleSchema, error) {
	return Load(defaultRulebook)
}

// LoadFile parses a rulebook from disk.
func LoadFile(path string) (*RuleSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rulebook %s: %w", path, err)
	}
	return Load(data)
}

// Load parses and validates rulebook YAML. It fails with a
// *ValidationError when required top-level keys or required hazard keys
// are absent; unknown condition-level fields are preserved, not dropped.
func Load(data []byte) (*RuleSchema, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Msg: fmt.Sprintf("invalid rulebook YAML: %v", err)}
	}

	for _, key := range requiredTopLevel {
		if _, ok := raw[key]; !ok {
			return nil, &ValidationError{Msg: fmt.Sprintf("missing required top-level key %q", key)}
		}
	}

	s := &RuleSchema{
		Metadata:           stringMap(raw["metadata"]),
		SeismicRules:       parseRules(raw["seismic_rules"]),
		VolcanicRules:      parseRules(raw["volcanic_rules"]),
		DecisionLogic:      stringListMap(raw["decision_logic"]),
		MatchingParameters: anyMap(raw["matching_parameters"]),
	}

	for _, hazard := range requiredSeismicHazards {
		if _, ok := s.SeismicRules[hazard]; !ok {
			return nil, &ValidationError{Msg: fmt.Sprintf("missing seismic hazard rule %q", hazard)}
		}
	}
	for _, hazard := range requiredVolcanicHazards {
		if _, ok := s.VolcanicRules[hazard]; !ok {
			return nil, &ValidationError{Msg: fmt.Sprintf("missing volcanic hazard rule %q", hazard)}
		}
	}

	return s, nil
}

// parseRules converts one category's raw rule map. Non-map entries are
// skipped. Entries with none of explanation/recommendation/special_cases
// (structures like "common") keep their whole body as SpecialCases so
// templates stored there stay reachable.
func parseRules(v any) map[string]HazardRule {
	rules := make(map[string]HazardRule)
	for key, body := range anyMap(v) {
		rm, ok := asStringMap(body)
		if !ok {
			continue
		}

		rule := HazardRule{
			Name:              getString(rm, "name"),
			Explanation:       getString(rm, "explanation"),
			ExplanationAlt:    getString(rm, "explanation_alt"),
			Recommendation:    getString(rm, "recommendation"),
			RecommendationAlt: getString(rm, "recommendation_alt"),
			Conditions:        parseConditions(rm["conditions"]),
			SpecialCases:      anyMap(rm["special_cases"]),
			AppliesTo:         stringList(rm["applies_to"]),
		}
		if rule.Name == "" {
			rule.Name = titleFromKey(key)
		}
		if rule.Explanation == "" && rule.Recommendation == "" && len(rule.SpecialCases) == 0 {
			rule.SpecialCases = rm
		}
		rules[key] = rule
	}
	return rules
}

// conditionFields are the known HazardCondition fields; anything else in
// a condition body lands in Extras.
var conditionFields = map[string]bool{
	"template":     true,
	"notes":        true,
	"threshold_km": true,
	"threshold_m":  true,
}

func parseConditions(v any) map[string]HazardCondition {
	conditions := make(map[string]HazardCondition)
	for key, body := range anyMap(v) {
		cm, ok := asStringMap(body)
		if !ok {
			continue
		}
		cond := HazardCondition{
			Template:    getString(cm, "template"),
			Notes:       getString(cm, "notes"),
			ThresholdKM: getFloat(cm, "threshold_km"),
			ThresholdM:  getFloat(cm, "threshold_m"),
			Extras:      make(map[string]any),
		}
		for field, value := range cm {
			if !conditionFields[field] {
				cond.Extras[field] = value
			}
		}
		conditions[key] = cond
	}
	return conditions
}

func anyMap(v any) map[string]any {
	m, ok := asStringMap(v)
	if !ok {
		return map[string]any{}
	}
	return m
}

func stringMap(v any) map[string]string {
	out := make(map[string]string)
	for k, raw := range anyMap(v) {
		if s, ok := raw.(string); ok {
			out[k] = s
		}
	}
	return out
}

func stringListMap(v any) map[string][]string {
	out := make(map[string][]string)
	for k, raw := range anyMap(v) {
		out[k] = stringList(raw)
	}
	return out
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func getFloat(m map[string]any, key string) float64 {
	switch n := m[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// titleFromKey turns "pdz_danger_zone" into "Pdz Danger Zone", a
// display fallback for rules without an explicit name.
func titleFromKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
