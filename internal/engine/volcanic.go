package engine

import (
	"fmt"
	"strings"

	"github.com/alfieprojectsdev/har-automation/internal/domain"
	"github.com/alfieprojectsdev/har-automation/internal/matcher"
)

const (
	// proximitySafetyFallback is used when the rulebook carries no
	// proximity-safety template.
	proximitySafetyFallback = "Considering the distance of the site from the volcano, " +
		"the site is safe from volcanic hazards such as pyroclastic density currents, " +
		"lava flows, and ballistic projectiles that may originate from the volcano."

	// ashfallFallback is the generic ashfall wording used when the
	// rulebook template is absent or no volcano name was resolved.
	ashfallFallback = "In case of future eruptions of nearby volcanoes, " +
		"the site/s may be affected by tephra fall/ ashfall depending on the height " +
		"of the eruption plume and prevailing wind direction at the time of eruption."

	avoidanceRecommendation = "Avoidance is recommended for sites that may potentially be affected by " +
		"primary volcanic hazards, especially pyroclastic density currents and lava flows."
)

// generateVolcanic runs the volcanic workflow. The distance-safety
// branch decides whether the per-hazard proximity steps run at all:
// sites beyond the safety threshold, or with all proximity hazards
// safe, get a single safety statement instead. Lahar is deliberately
// outside that coverage, so the branch skips it along with the rest.
func (e *Engine) generateVolcanic(a domain.Assessment) domain.Report {
	r := domain.NewReport(a.ID, a.Category)
	r.Intro = e.intro(a)

	v := a.Volcanic
	nearest := domain.ParseNearestVolcano(v.NearestActiveVolcano.Text())

	if nearest.Known {
		r.AddStatement(fmt.Sprintf("%s Volcano is the nearest identified active volcano to the site.", nearest.Name))
	}

	distanceSafe := e.isDistanceSafe(v, nearest)
	if distanceSafe {
		r.AddStatement(e.proximitySafetyStatement())
	} else {
		e.assessProximityHazards(&r, a.ID, v, nearest)
	}

	// A potentially active volcano may legitimately co-occur with a
	// resolved active volcano; the statement is never suppressed.
	if v.NearestPAV.Assessed() {
		r.AddStatement(v.NearestPAV.Text())
	}

	r.AddStatement(e.ashfallStatement(nearest))

	if !distanceSafe && needsAvoidance(v) {
		r.AddStatement(avoidanceRecommendation)
	}

	e.finish(&r)
	return r
}

// isDistanceSafe reports whether the site is covered by the
// distance-safety statement: strictly beyond the threshold distance, or
// every assessed proximity hazard (pyroclastic flow, lava flow,
// ballistic projectiles) is safe. An unknown distance contributes
// false, never a zero distance.
func (e *Engine) isDistanceSafe(v *domain.VolcanicAssessment, nearest domain.NearestVolcano) bool {
	if nearest.Known && nearest.DistanceKM > e.distanceSafetyThresholdKM() {
		return true
	}

	proximity := []domain.HazardField{v.PyroclasticFlow, v.LavaFlow, v.BallisticProjectile}
	assessed := 0
	for _, h := range proximity {
		if !h.Assessed() {
			continue
		}
		if !h.Contains("safe") {
			return false
		}
		assessed++
	}
	return assessed > 0
}

// assessProximityHazards appends the per-hazard sections in fixed order.
// Each step skips cleanly when its column is absent or safe; rulebook
// lookup failures degrade to an omitted section.
func (e *Engine) assessProximityHazards(r *domain.Report, id int, v *domain.VolcanicAssessment, nearest domain.NearestVolcano) {
	e.assessPDZ(r, id, nearest)
	e.assessLahar(r, id, v, nearest)
	e.assessSimpleHazard(r, id, v.PyroclasticFlow, "pyroclastic_density_current", "Pyroclastic Density Current")
	e.assessSimpleHazard(r, id, v.LavaFlow, "lava_flow", "Lava Flow")
	e.assessSimpleHazard(r, id, v.BallisticProjectile, "ballistic_projectiles", "Ballistic Projectiles")
	if nearest.ID() == domain.VolcanoTaal {
		e.assessSimpleHazard(r, id, v.BaseSurge, "base_surge", "Base Surge")
	}
	e.assessSimpleHazard(r, id, v.VolcanicTsunami, "volcanic_tsunami", "Volcanic Tsunami")
	e.assessFissure(r, id, v, nearest)
}

// assessPDZ appends the Permanent Danger Zone section. Volcanoes without
// a defined PDZ radius and unknown distances skip the step.
func (e *Engine) assessPDZ(r *domain.Report, id int, nearest domain.NearestVolcano) {
	radius, ok := nearest.ID().PDZRadiusKM()
	if !ok || !nearest.Known {
		return
	}

	rule, ok := e.schema.VolcanicRule("pdz_danger_zone")
	if !ok {
		e.degrade(id, "pdz_danger_zone", "rule missing from schema")
		return
	}

	if nearest.DistanceKM < radius {
		r.AddSection(domain.Section{
			Heading: "PDZ (Permanent Danger Zone)",
			Status:  fmt.Sprintf("Within PDZ; The site is within the %g-kilometer radius Permanent Danger Zone", radius),
			Text:    domain.JoinExplanation(rule.Explanation, rule.Recommendation),
		})
		return
	}

	// Outside the PDZ the full relocation recommendation does not
	// apply; a simplified combined wording is used instead.
	outside := fmt.Sprintf(
		"The Permanent Danger Zone (PDZ) is a zone that can always be affected by small-scale eruptions of %s Volcano. "+
			"Human settlement is not recommended within the PDZ. "+
			"The site is outside the %g-kilometer radius Permanent Danger Zone of the volcano.",
		nearest.Name, radius)

	r.AddSection(domain.Section{
		Heading: "PDZ (Permanent Danger Zone)",
		Status:  fmt.Sprintf("Outside PDZ; The site is outside the %g-kilometer radius Permanent Danger Zone", radius),
		Text:    outside,
	})
}

// assessLahar appends the lahar section. Pinatubo substitutes a
// zone-specific explanation, Mayon a prone-level-specific one; all other
// volcanoes use the base wording.
func (e *Engine) assessLahar(r *domain.Report, id int, v *domain.VolcanicAssessment, nearest domain.NearestVolcano) {
	if !v.Lahar.Assessed() || v.Lahar.Contains("safe") {
		return
	}

	rule, ok := e.schema.VolcanicRule("lahar")
	if !ok {
		e.degrade(id, "lahar", "rule missing from schema")
		return
	}

	explanation := rule.Explanation
	key := matcher.MatchLahar(v.Lahar.Text(), nearest.ID())

	switch nearest.ID() {
	case domain.VolcanoPinatubo:
		if text, ok := rule.SpecialCaseString("pinatubo_zones", key, "explanation"); ok {
			explanation = text
		}
	case domain.VolcanoMayon:
		if text, ok := rule.SpecialCaseString("mayon_prone_levels", key, "explanation"); ok {
			explanation = text
		}
	}

	r.AddSection(domain.Section{
		Heading: "Lahar",
		Status:  v.Lahar.Text(),
		Text:    domain.JoinExplanation(explanation, rule.Recommendation),
	})
}

// assessSimpleHazard appends a direct rulebook section for hazards
// without special cases, skipping absent and safe statuses.
func (e *Engine) assessSimpleHazard(r *domain.Report, id int, field domain.HazardField, ruleKey, heading string) {
	if !field.Assessed() || field.Contains("safe") {
		return
	}

	rule, ok := e.schema.VolcanicRule(ruleKey)
	if !ok {
		e.degrade(id, ruleKey, "rule missing from schema")
		return
	}

	r.AddSection(domain.Section{
		Heading: heading,
		Status:  field.Text(),
		Text:    domain.JoinExplanation(rule.Explanation, rule.Recommendation),
	})
}

// assessFissure appends the fissure section for sites within the safety
// threshold of the volcano. Taal gets extra reporting instructions.
func (e *Engine) assessFissure(r *domain.Report, id int, v *domain.VolcanicAssessment, nearest domain.NearestVolcano) {
	if !nearest.Known || nearest.DistanceKM > e.distanceSafetyThresholdKM() {
		return
	}
	if !v.Fissure.Assessed() || v.Fissure.Contains("safe") {
		return
	}

	rule, ok := e.schema.VolcanicRule("fissure")
	if !ok {
		e.degrade(id, "fissure", "rule missing from schema")
		return
	}

	text := domain.JoinExplanation(rule.Explanation, rule.Recommendation)
	if nearest.ID() == domain.VolcanoTaal {
		if extra, ok := rule.SpecialCaseString("taal", "reporting_instructions"); ok {
			text = domain.JoinExplanation(text, extra)
		}
	}

	r.AddSection(domain.Section{
		Heading: "Fissure",
		Status:  v.Fissure.Text(),
		Text:    text,
	})
}

// needsAvoidance reports whether any proximity hazard status warrants
// the general avoidance recommendation. Safe and least-prone statuses
// never do.
func needsAvoidance(v *domain.VolcanicAssessment) bool {
	fields := []domain.HazardField{
		v.Lahar,
		v.PyroclasticFlow,
		v.LavaFlow,
		v.BaseSurge,
		v.BallisticProjectile,
	}
	for _, f := range fields {
		if !f.Assessed() || f.Contains("safe") || f.Contains("least prone") {
			continue
		}
		if f.Contains("prone") || f.Contains("susceptible") {
			return true
		}
	}
	return false
}

// proximitySafetyStatement returns the rulebook's proximity-safety
// template, falling back to the fixed wording when absent.
func (e *Engine) proximitySafetyStatement() string {
	if rule, ok := e.schema.VolcanicRule("distance_rules"); ok {
		if text, ok := rule.SpecialCaseString("proximity_safety", "template"); ok {
			return text
		}
	}
	return proximitySafetyFallback
}

// ashfallStatement returns the ashfall wording, always present in
// volcanic reports. The rulebook template has the resolved volcano name
// substituted; without a template or a resolved name the generic
// fallback is used.
func (e *Engine) ashfallStatement(nearest domain.NearestVolcano) string {
	if !nearest.Known {
		return ashfallFallback
	}
	if rule, ok := e.schema.VolcanicRule("common"); ok {
		if template, ok := rule.SpecialCaseString("ashfall", "template"); ok {
			return replaceVolcanoName(template, nearest.Name)
		}
	}
	return fmt.Sprintf(
		"In case of future eruptions of %s Volcano and other nearby volcanoes, "+
			"the site/s may be affected by tephra fall/ ashfall depending on the height "+
			"of the eruption plume and prevailing wind direction at the time of eruption.",
		nearest.Name)
}

// distanceSafetyThresholdKM reads the safety threshold from the
// rulebook's matching parameters, defaulting to 50 km.
func (e *Engine) distanceSafetyThresholdKM() float64 {
	switch n := e.schema.MatchingParameters["distance_safety_threshold_km"].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 50.0
	}
}

func replaceVolcanoName(template, name string) string {
	return strings.ReplaceAll(template, "{volcano_name}", name)
}
