// Package pipeline wires the parser and decision engine into the single
// boundary operation the transports call.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alfieprojectsdev/har-automation/internal/engine"
	"github.com/alfieprojectsdev/har-automation/internal/observability"
	"github.com/alfieprojectsdev/har-automation/internal/parser"
)

// GeneratedReport is one rendered report produced from a parsed row.
type GeneratedReport struct {
	ID         int    `json:"assessment_id"`
	Category   string `json:"category"`
	ReportText string `json:"har_text"`
}

// Generator converts raw summary-table text into rendered reports.
type Generator struct {
	engine  *engine.Engine
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Generator with the given engine and observability.
func New(e *engine.Engine, logger *slog.Logger, metrics *observability.Metrics) *Generator {
	return &Generator{
		engine:  e,
		logger:  logger,
		metrics: metrics,
	}
}

// GenerateReports parses the raw text and generates one report per
// extracted assessment, in input order. Parse failures propagate as
// *parser.ParseError; a generation failure on any row fails the call,
// since the parser guarantees category/payload agreement and anything
// else is a programming error worth surfacing.
func (g *Generator) GenerateReports(ctx context.Context, rawText string) ([]GeneratedReport, error) {
	start := time.Now()

	assessments, err := parser.Parse(rawText)
	if err != nil {
		g.metrics.ParseErrors.Inc()
		g.logger.Warn("parse failed", "error", err, "input_bytes", len(rawText))
		return nil, fmt.Errorf("parse summary table: %w", err)
	}

	reports := make([]GeneratedReport, 0, len(assessments))
	for _, a := range assessments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		report, err := g.engine.Generate(a)
		if err != nil {
			g.metrics.GenerateErrors.Inc()
			g.logger.Error("report generation failed",
				"assessment_id", a.ID,
				"category", a.Category,
				"error", err,
			)
			return nil, err
		}

		g.metrics.ReportsGenerated.WithLabelValues(string(a.Category)).Inc()
		g.metrics.ReportSections.Observe(float64(len(report.Sections)))
		g.logger.Info("report generated",
			"assessment_id", a.ID,
			"category", a.Category,
			"sections", len(report.Sections),
		)

		reports = append(reports, GeneratedReport{
			ID:         a.ID,
			Category:   string(a.Category),
			ReportText: report.RenderText(),
		})
	}

	g.metrics.GenerateDuration.Observe(time.Since(start).Seconds())
	return reports, nil
}
