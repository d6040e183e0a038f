// Package engine runs the category-specific decision workflows that turn
// a canonical assessment into a hazard assessment report.
//
// The engine holds no mutable per-call state: the rulebook is read-only
// after load and every Generate call builds its report locally, so a
// single Engine is safe for concurrent use by parallel request handlers.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/alfieprojectsdev/har-automation/internal/domain"
	"github.com/alfieprojectsdev/har-automation/internal/observability"
	"github.com/alfieprojectsdev/har-automation/internal/schema"
)

const (
	introOpening = "All hazard assessments are based on the latest available hazard maps and on the location indicated "

	supersedesSingleSite = "This assessment supersedes all previous reports issued for this site."
)

// additionalRecommendations returns the unconditional closing block of
// every report.
func additionalRecommendations() []string {
	return []string{
		"For more information on geohazards in the Philippines, " +
			"please visit HazardHunterPH (https://hazardhunter.georisk.gov.ph/) " +
			"and GeoAnalyticsPH (https://geoanalytics.georisk.gov.ph/).",
	}
}

// Engine generates reports from assessments using a loaded rulebook.
type Engine struct {
	schema  *schema.RuleSchema
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Engine bound to a loaded rulebook.
func New(s *schema.RuleSchema, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		schema:  s,
		logger:  logger,
		metrics: metrics,
	}
}

// Generate runs the workflow for the assessment's category. It returns a
// *domain.DomainError when the category and populated payload disagree;
// rulebook lookup failures inside individual hazard steps degrade to an
// omitted section, never a failed report.
func (e *Engine) Generate(a domain.Assessment) (domain.Report, error) {
	if err := a.Validate(); err != nil {
		return domain.Report{}, fmt.Errorf("generate report: %w", err)
	}

	switch a.Category {
	case domain.CategorySeismic:
		return e.generateSeismic(a), nil
	default:
		return e.generateVolcanic(a), nil
	}
}

// intro returns the opening statement; the wording varies only on
// whether a vicinity map accompanied the assessment.
func (e *Engine) intro(a domain.Assessment) string {
	if a.MapProvided {
		return introOpening + "in the vicinity map provided."
	}
	return introOpening + "by the coordinates provided."
}

// finish appends the closing block shared by both workflows.
func (e *Engine) finish(r *domain.Report) {
	r.Supersedes = supersedesSingleSite
	r.AdditionalRecommendations = additionalRecommendations()
}

// degrade records an omitted hazard section. The workflow continues; the
// omission is made visible through the log and the degraded-section
// counter instead of failing the report.
func (e *Engine) degrade(assessmentID int, hazard, reason string) {
	e.logger.Warn("hazard section omitted",
		"assessment_id", assessmentID,
		"hazard", hazard,
		"reason", reason,
	)
	e.metrics.DegradedSections.WithLabelValues(hazard).Inc()
}
