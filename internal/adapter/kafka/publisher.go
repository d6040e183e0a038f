// Package kafka publishes rendered reports to a Kafka topic when report
// publishing is enabled.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/alfieprojectsdev/har-automation/internal/config"
	"github.com/alfieprojectsdev/har-automation/internal/pipeline"
)

// Publisher produces generated reports to the reports topic.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured reports topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReportsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishReports serializes and publishes a batch of generated reports
// in a single WriteMessages call.
func (p *Publisher) PublishReports(ctx context.Context, reports []pipeline.GeneratedReport) error {
	if len(reports) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(reports))
	for i := range reports {
		msg, err := serializeToMessage(reports[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a generated report into a Kafka message
// keyed by assessment id.
func serializeToMessage(report pipeline.GeneratedReport) (kafkago.Message, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.Itoa(report.ID)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(report.Category)},
		},
	}, nil
}
