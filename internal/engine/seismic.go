package engine

import (
	"github.com/alfieprojectsdev/har-automation/internal/domain"
)

// groundShakingPreamble prefixes every liquefaction status: ground
// shaking and liquefaction are reported as one numbered point in
// official reports, never as separate sections.
const groundShakingPreamble = "All sites may be affected by strong ground shaking. "

// generateSeismic runs the seismic workflow in fixed order: ground
// rupture, ground shaking with liquefaction, earthquake-induced
// landslide, tsunami. Each step runs only when its hazard column was
// assessed.
func (e *Engine) generateSeismic(a domain.Assessment) domain.Report {
	r := domain.NewReport(a.ID, a.Category)
	r.Intro = e.intro(a)

	s := a.Seismic

	if s.ActiveFault.Assessed() {
		if rule, ok := e.schema.SeismicRule("active_fault"); ok {
			r.AddSection(domain.Section{
				Heading: "Ground Rupture",
				Status:  s.ActiveFault.Text(),
				Text:    domain.JoinExplanation(rule.Explanation, rule.Recommendation),
			})
		} else {
			e.degrade(a.ID, "active_fault", "rule missing from schema")
		}
	}

	if s.Liquefaction.Assessed() {
		if rule, ok := e.schema.SeismicRule("liquefaction"); ok {
			// Recommendation only: liquefaction carries no separate
			// explanation paragraph.
			r.AddSection(domain.Section{
				Heading: "Ground Shaking and Liquefaction",
				Status:  groundShakingPreamble + s.Liquefaction.Text(),
				Text:    rule.Recommendation,
			})
		} else {
			e.degrade(a.ID, "liquefaction", "rule missing from schema")
		}
	}

	if s.Landslide.Assessed() {
		if rule, ok := e.schema.SeismicRule("earthquake_induced_landslide"); ok {
			r.AddSection(domain.Section{
				Heading: "Earthquake-Induced Landslide",
				Status:  s.Landslide.Text(),
				Text:    domain.JoinExplanation(rule.Explanation, rule.Recommendation),
			})
		} else {
			e.degrade(a.ID, "earthquake_induced_landslide", "rule missing from schema")
		}
	}

	if s.Tsunami.Assessed() {
		if rule, ok := e.schema.SeismicRule("tsunami"); ok {
			r.AddSection(domain.Section{
				Heading: "Tsunami",
				Status:  s.Tsunami.Text(),
				Text:    domain.JoinExplanation(rule.Explanation, rule.Recommendation),
			})
		} else {
			e.degrade(a.ID, "tsunami", "rule missing from schema")
		}
	}

	e.finish(&r)
	return r
}
