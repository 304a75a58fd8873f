package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Climate data provider configuration.
	ClimateAPIURL  string
	ClimateAPIKey  string
	ClimateEnabled bool
	ClimateTimeout time.Duration

	// Kafka audit stream configuration.
	AuditEnabled bool
	KafkaBrokers []string
	AuditTopic   string

	HistorySize int

	Scoring domain.ScoringConfig
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	climateTimeout, err := parseDuration("CLIMATE_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	historySize, err := parsePositiveInt("HISTORY_SIZE", 12)
	if err != nil {
		return nil, err
	}

	scoring, err := loadScoring()
	if err != nil {
		return nil, err
	}

	climateURL := os.Getenv("CLIMATE_API_URL")
	climateEnabled := climateURL != ""
	if v := os.Getenv("CLIMATE_ENABLED"); v != "" {
		climateEnabled = v == "true"
	}

	auditEnabled := os.Getenv("AUDIT_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ClimateAPIURL:  climateURL,
		ClimateAPIKey:  os.Getenv("CLIMATE_API_KEY"),
		ClimateEnabled: climateEnabled,
		ClimateTimeout: climateTimeout,

		AuditEnabled: auditEnabled,
		KafkaBrokers: parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		AuditTopic:   envOrDefault("KAFKA_AUDIT_TOPIC", "credit-score-audit"),

		HistorySize: historySize,
		Scoring:     scoring,
	}

	if cfg.ClimateEnabled && cfg.ClimateAPIURL == "" {
		return nil, errors.New("CLIMATE_ENABLED is true but CLIMATE_API_URL is not set")
	}
	if cfg.AuditEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("AUDIT_ENABLED is true but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

// loadScoring reads the scoring model tunables, starting from the documented
// defaults. Weights must sum to 1.0 so MAX_PENALTY alone bounds the total
// deduction, and the penalty cap may not exceed 20% of the score range.
func loadScoring() (domain.ScoringConfig, error) {
	cfg := domain.DefaultScoringConfig()

	var err error
	if cfg.MaxPenalty, err = parseFloat("MAX_PENALTY", cfg.MaxPenalty); err != nil {
		return cfg, err
	}
	if cfg.Weights.Flood, err = parseFloat("WEIGHT_FLOOD", cfg.Weights.Flood); err != nil {
		return cfg, err
	}
	if cfg.Weights.Drought, err = parseFloat("WEIGHT_DROUGHT", cfg.Weights.Drought); err != nil {
		return cfg, err
	}
	if cfg.Weights.Heat, err = parseFloat("WEIGHT_HEAT", cfg.Weights.Heat); err != nil {
		return cfg, err
	}
	if cfg.Weights.Cyclone, err = parseFloat("WEIGHT_CYCLONE", cfg.Weights.Cyclone); err != nil {
		return cfg, err
	}
	if cfg.Weights.Rainfall, err = parseFloat("WEIGHT_RAINFALL", cfg.Weights.Rainfall); err != nil {
		return cfg, err
	}
	if cfg.LowThreshold, err = parseFloat("THRESHOLD_LOW", cfg.LowThreshold); err != nil {
		return cfg, err
	}
	if cfg.MediumThreshold, err = parseFloat("THRESHOLD_MEDIUM", cfg.MediumThreshold); err != nil {
		return cfg, err
	}

	weights := []struct {
		name  string
		value float64
	}{
		{"WEIGHT_FLOOD", cfg.Weights.Flood},
		{"WEIGHT_DROUGHT", cfg.Weights.Drought},
		{"WEIGHT_HEAT", cfg.Weights.Heat},
		{"WEIGHT_CYCLONE", cfg.Weights.Cyclone},
		{"WEIGHT_RAINFALL", cfg.Weights.Rainfall},
	}
	for _, w := range weights {
		if w.value < 0 || w.value > 1 {
			return cfg, fmt.Errorf("%s must be within [0, 1], got %g", w.name, w.value)
		}
	}
	if math.Abs(cfg.Weights.Sum()-1.0) > 1e-9 {
		return cfg, fmt.Errorf("indicator weights must sum to 1.0, got %g", cfg.Weights.Sum())
	}
	maxCap := 0.2 * (cfg.MaxScore - cfg.MinScore)
	if cfg.MaxPenalty <= 0 || cfg.MaxPenalty > maxCap {
		return cfg, fmt.Errorf("MAX_PENALTY must be in (0, %g], got %g", maxCap, cfg.MaxPenalty)
	}
	if cfg.LowThreshold <= cfg.MediumThreshold {
		return cfg, fmt.Errorf("THRESHOLD_LOW (%g) must exceed THRESHOLD_MEDIUM (%g)",
			cfg.LowThreshold, cfg.MediumThreshold)
	}
	if cfg.LowThreshold > cfg.MaxScore || cfg.MediumThreshold < cfg.MinScore {
		return cfg, errors.New("category thresholds must lie within the score range")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return f, nil
}
