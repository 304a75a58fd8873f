// Command assess scores loan applications offline, without the HTTP server
// or an external climate provider. It reads applications from a JSON file
// (a single object or an array), derives hazard indicators from the seeded
// catalog, and prints one assessment per application.
//
// Usage:
//
//	go run ./cmd/assess -input applications.json
//	go run ./cmd/assess -input applications.json -at 2026-03-14T09:30:00Z
//
// The -at flag pins the assessment clock so IDs are reproducible across runs.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/catalog"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/config"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/domain"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/observability"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/scoring"
	"github.com/jonboulle/clockwork"
)

func main() {
	input := flag.String("input", "", "path to a JSON application or array of applications")
	at := flag.String("at", "", "pin the assessment clock to an RFC 3339 timestamp")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input, *at); code != 0 {
		os.Exit(code)
	}
}

func run(inputPath, at string) int {
	if at != "" {
		pinned, err := time.Parse(time.RFC3339, at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: parse -at: %v\n", err)
			return 1
		}
		domain.SetClock(clockwork.NewFakeClockAt(pinned))
		defer domain.SetClock(nil)
	}

	apps, err := loadApplications(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load applications: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scorer := scoring.New(catalog.DerivedSource{}, scoring.SourceDerived, catalog.New(), nil,
		loadScoringConfig(), logger, observability.NewUnregisteredMetrics())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	failed := 0
	for i, app := range apps {
		assessment, err := scorer.Score(context.Background(), app)
		if err != nil {
			fmt.Fprintf(os.Stderr, "application %d (%s): %v\n", i, app.BorrowerName, err)
			failed++
			continue
		}
		enc.Encode(assessment) //nolint:errcheck // stdout
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d applications failed\n", failed, len(apps))
		return 1
	}
	return 0
}

// loadApplications accepts either a single application object or an array.
func loadApplications(path string) ([]domain.Application, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var apps []domain.Application
		if err := json.Unmarshal(trimmed, &apps); err != nil {
			return nil, err
		}
		return apps, nil
	}

	var app domain.Application
	if err := json.Unmarshal(trimmed, &app); err != nil {
		return nil, err
	}
	return []domain.Application{app}, nil
}

// loadScoringConfig honors the same scoring environment variables as the
// server; invalid values fall back to the defaults with a warning.
func loadScoringConfig() domain.ScoringConfig {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN: %v, using default scoring config\n", err)
		return domain.DefaultScoringConfig()
	}
	return cfg.Scoring
}
