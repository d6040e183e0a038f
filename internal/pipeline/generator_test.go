package pipeline_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfieprojectsdev/har-automation/internal/engine"
	"github.com/alfieprojectsdev/har-automation/internal/observability"
	"github.com/alfieprojectsdev/har-automation/internal/parser"
	"github.com/alfieprojectsdev/har-automation/internal/pipeline"
	"github.com/alfieprojectsdev/har-automation/internal/schema"
)

const mixedBatch = `Hazard Assessment
Displaying 1-2 of 2 results.
Assessment
Category
Feature Type
Location
Active Fault
Liquefaction
Landslide
Tsunami
Nearest Active Volcano
Lahar
Pyroclastic Flow
Lava Flow
Ballistic Projectile
24777	Earthquake	Polygon	121.05,14.55	Safe; Approximately 7.1 km west of Valley Fault System	High Potential	Safe	--	--	--	--	--	--
24778	Volcano	Polygon	120.99,14.01	--	--	--	--	Approximately 12.4 km north of Taal Volcano	Prone	Prone to pyroclastic density currents	Safe	Safe
No Files Attached
`

func newTestGenerator(t *testing.T) *pipeline.Generator {
	t.Helper()
	rules, err := schema.LoadDefault()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	return pipeline.New(engine.New(rules, logger, metrics), logger, metrics)
}

func TestGenerateReportsMixedBatch(t *testing.T) {
	gen := newTestGenerator(t)

	reports, err := gen.GenerateReports(context.Background(), mixedBatch)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	first := reports[0]
	assert.Equal(t, 24777, first.ID)
	assert.Equal(t, "Seismic", first.Category)
	assert.Contains(t, first.ReportText, "EARTHQUAKE HAZARD ASSESSMENT")
	assert.Contains(t, first.ReportText, "1. Ground Rupture:")
	assert.Contains(t, first.ReportText, "2. Ground Shaking and Liquefaction:")
	assert.Contains(t, first.ReportText, "supersedes all previous reports")

	second := reports[1]
	assert.Equal(t, 24778, second.ID)
	assert.Equal(t, "Volcanic", second.Category)
	assert.Contains(t, second.ReportText, "VOLCANO HAZARD ASSESSMENT")
	assert.Contains(t, second.ReportText, "Taal Volcano is the nearest identified active volcano")
	assert.Contains(t, second.ReportText, "Lahar:")
	assert.Contains(t, second.ReportText, "tephra fall/ ashfall")
}

func TestGenerateReportsParseErrorPropagates(t *testing.T) {
	gen := newTestGenerator(t)

	_, err := gen.GenerateReports(context.Background(), "not a summary table at all")
	require.Error(t, err)

	var parseErr *parser.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestGenerateReportsCancelledContext(t *testing.T) {
	gen := newTestGenerator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.GenerateReports(ctx, mixedBatch)
	assert.ErrorIs(t, err, context.Canceled)
}
