// Package matcher maps free-text OHAS hazard statuses to canonical
// rulebook condition keys.
//
// OHAS emits statuses like "Safe", "High Potential", "Highly Prone" or
// "Prone; Within the tsunami inundation zone"; the rulebook keys its
// condition templates as "safe", "high_potential", "highly_prone",
// "prone". Matching tries the exact condition templates first, then an
// ordered keyword rule list evaluated first-match-wins. The order is
// load-bearing: "highly prone" must never be captured by the generic
// "prone" rule, so the most specific predicates come first and the
// ordering lives in one data structure instead of control flow.
package matcher

import (
	"regexp"
	"strings"

	"github.com/alfieprojectsdev/har-automation/internal/domain"
	"github.com/alfieprojectsdev/har-automation/internal/schema"
)

// fuzzyRule pairs a predicate over the lowercased status with the
// condition key it selects.
type fuzzyRule struct {
	matches func(status string) bool
	key     string
}

func contains(keyword string) func(string) bool {
	return func(status string) bool { return strings.Contains(status, keyword) }
}

func containsAny(keywords ...string) func(string) bool {
	return func(status string) bool {
		for _, k := range keywords {
			if strings.Contains(status, k) {
				return true
			}
		}
		return false
	}
}

var zoneRe = regexp.MustCompile(`zone\s+([1-5])`)

// fuzzyRules is evaluated top to bottom; the first matching predicate
// wins. Most specific phrases come first.
var fuzzyRules = []fuzzyRule{
	{func(s string) bool { return s == "safe" }, "safe"},

	{contains("high potential"), "high_potential"},
	{contains("moderate potential"), "moderate_potential"},
	{contains("low potential"), "low_potential"},

	{contains("highly susceptible"), "highly_susceptible"},
	{contains("moderately susceptible"), "moderately_susceptible"},
	{contains("least susceptible"), "least_susceptible"},

	{contains("highly prone"), "highly_prone"},
	{contains("moderately prone"), "moderately_prone"},
	{contains("least prone"), "least_prone"},

	{contains("prone"), "prone"},

	{containsAny("buffer", "zone of avoidance"), "buffer_zone"},
	{contains("transected"), "transected"},
	{containsAny("within pdz", "permanent danger zone"), "within_pdz"},
}

// Match resolves a status against a rule's condition map: exact
// template match first, then the ordered fuzzy rules, then zone-number
// extraction ("Zone 3" → "zone_3"). Returns ok=false when nothing
// matched or the status is empty.
func Match(status string, conditions map[string]schema.HazardCondition) (string, bool) {
	status = strings.TrimSpace(status)
	if status == "" || status == domain.NotAssessedSentinel {
		return "", false
	}

	for key, condition := range conditions {
		if condition.Template == status {
			return key, true
		}
	}

	lower := strings.ToLower(status)
	for _, rule := range fuzzyRules {
		if rule.matches(lower) {
			return rule.key, true
		}
	}

	if m := zoneRe.FindStringSubmatch(lower); m != nil {
		return "zone_" + m[1], true
	}

	return "", false
}

// MatchLiquefaction maps a liquefaction status to its condition key,
// defaulting to "safe" when no keyword is recognized.
func MatchLiquefaction(status string) string {
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "high potential"):
		return "high_potential"
	case strings.Contains(lower, "moderate potential"):
		return "moderate_potential"
	case strings.Contains(lower, "low potential"):
		return "low_potential"
	default:
		return "safe"
	}
}

// MatchLandslide maps an earthquake-induced-landslide status to its
// condition key. A bare "susceptible" with no level defaults to
// moderately susceptible; anything unrecognized defaults to "safe".
func MatchLandslide(status string) string {
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "highly susceptible"):
		return "highly_susceptible"
	case strings.Contains(lower, "moderately susceptible"):
		return "moderately_susceptible"
	case strings.Contains(lower, "least susceptible"):
		return "least_susceptible"
	case strings.Contains(lower, "safe"):
		return "safe"
	case strings.Contains(lower, "susceptible"):
		return "moderately_susceptible"
	default:
		return "safe"
	}
}

// MatchTsunami maps a tsunami status to "prone" or "safe".
func MatchTsunami(status string) string {
	if strings.Contains(strings.ToLower(status), "prone") {
		return "prone"
	}
	return "safe"
}

// MatchLahar maps a lahar status to its condition key; the mapping is
// volcano-specific. Pinatubo uses lahar zone numbers, Mayon uses prone
// levels (a bare "prone" defaults to moderately prone), all other
// volcanoes use generic prone/safe.
func MatchLahar(status string, volcano domain.VolcanoID) string {
	lower := strings.ToLower(status)

	switch volcano {
	case domain.VolcanoPinatubo:
		if m := zoneRe.FindStringSubmatch(lower); m != nil {
			return "zone_" + m[1]
		}
		return "safe"
	case domain.VolcanoMayon:
		switch {
		case strings.Contains(lower, "highly prone"):
			return "highly_prone"
		case strings.Contains(lower, "moderately prone"):
			return "moderately_prone"
		case strings.Contains(lower, "least prone"):
			return "least_prone"
		case strings.Contains(lower, "safe"):
			return "safe"
		case strings.Contains(lower, "prone"):
			return "moderately_prone"
		default:
			return "safe"
		}
	default:
		if strings.Contains(lower, "prone") {
			return "prone"
		}
		return "safe"
	}
}
