// Command harsvc serves the report-generation API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/alfieprojectsdev/har-automation/internal/adapter/http"
	kafkaadapter "github.com/alfieprojectsdev/har-automation/internal/adapter/kafka"
	"github.com/alfieprojectsdev/har-automation/internal/config"
	"github.com/alfieprojectsdev/har-automation/internal/engine"
	"github.com/alfieprojectsdev/har-automation/internal/observability"
	"github.com/alfieprojectsdev/har-automation/internal/pipeline"
	"github.com/alfieprojectsdev/har-automation/internal/schema"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	rules, err := loadSchema(cfg)
	if err != nil {
		logger.Error("failed to load rulebook", "error", err)
		os.Exit(1)
	}
	logger.Info("rulebook loaded",
		"version", rules.Metadata["version"],
		"seismic_rules", len(rules.SeismicRules),
		"volcanic_rules", len(rules.VolcanicRules),
	)

	gen := pipeline.New(engine.New(rules, logger, metrics), logger, metrics)

	// Report publisher (feature-flagged via PUBLISH_ENABLED).
	var publisher *kafkaadapter.Publisher
	if cfg.PublishEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		metrics.PublisherEnabled.Set(1)
		logger.Info("report publishing enabled",
			"brokers", cfg.KafkaBrokers, "topic", cfg.KafkaReportsTopic)
	} else {
		logger.Info("report publishing disabled")
	}

	var generator httpadapter.ReportGenerator = gen
	if publisher != nil {
		generator = &publishingGenerator{gen: gen, publisher: publisher, logger: logger}
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, generator, cfg.MaxInputBytes, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

func loadSchema(cfg *config.Config) (*schema.RuleSchema, error) {
	if cfg.SchemaPath != "" {
		return schema.LoadFile(cfg.SchemaPath)
	}
	return schema.LoadDefault()
}

// publishingGenerator publishes each successful batch to the reports
// topic after generation. Publish failures are logged, not surfaced to
// the API caller: the reports were generated and delivery is best
// effort.
type publishingGenerator struct {
	gen       *pipeline.Generator
	publisher *kafkaadapter.Publisher
	logger    *slog.Logger
}

func (p *publishingGenerator) GenerateReports(ctx context.Context, rawText string) ([]pipeline.GeneratedReport, error) {
	reports, err := p.gen.GenerateReports(ctx, rawText)
	if err != nil {
		return nil, err
	}
	if err := p.publisher.PublishReports(ctx, reports); err != nil {
		p.logger.Error("publish reports failed", "error", err, "count", len(reports))
	}
	return reports, nil
}
