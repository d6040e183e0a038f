// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// SchemaPath overrides the embedded rulebook when set.
	SchemaPath    string
	MaxInputBytes int

	// Kafka report publishing configuration (feature-flagged).
	KafkaBrokers      []string
	KafkaReportsTopic string
	PublishEnabled    bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	maxInputBytes, err := parseInt("MAX_INPUT_BYTES", 1<<20)
	if err != nil {
		return nil, err
	}

	publishEnabled := os.Getenv("PUBLISH_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SchemaPath:    os.Getenv("SCHEMA_PATH"),
		MaxInputBytes: maxInputBytes,

		KafkaBrokers:      parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReportsTopic: envOrDefault("KAFKA_REPORTS_TOPIC", "hazard-assessment-reports"),
		PublishEnabled:    publishEnabled,
	}

	if cfg.MaxInputBytes <= 0 {
		return nil, errors.New("MAX_INPUT_BYTES must be positive")
	}
	if cfg.PublishEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("PUBLISH_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaReportsTopic == "" {
			return nil, errors.New("PUBLISH_ENABLED is true but KAFKA_REPORTS_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
