// Package scoring orchestrates a scoring request end to end: validate,
// resolve the location, fetch indicators, combine, analyze, and audit.
package scoring

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/catalog"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/domain"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/observability"
)

// Indicator source names recorded on assessments.
const (
	SourceProvider = "provider"
	SourceDerived  = "derived"
)

// Scorer is the stateless scoring service. Safe for concurrent use: nothing
// here is mutated after construction.
type Scorer struct {
	source     domain.IndicatorSource
	sourceName string
	catalog    *catalog.Catalog
	audit      domain.AuditSink
	cfg        domain.ScoringConfig
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Scorer. Pass a nil audit sink to disable the audit stream.
func New(source domain.IndicatorSource, sourceName string, cat *catalog.Catalog, audit domain.AuditSink, cfg domain.ScoringConfig, logger *slog.Logger, metrics *observability.Metrics) *Scorer {
	return &Scorer{
		source:     source,
		sourceName: sourceName,
		catalog:    cat,
		audit:      audit,
		cfg:        cfg,
		logger:     logger,
		metrics:    metrics,
	}
}

// Config returns the scoring configuration in use.
func (s *Scorer) Config() domain.ScoringConfig { return s.cfg }

// CheckReadiness reports whether the scorer can serve traffic.
func (s *Scorer) CheckReadiness(_ context.Context) error {
	if s.catalog == nil || s.catalog.Size() == 0 {
		return errors.New("location catalog is empty")
	}
	if s.source == nil {
		return errors.New("no indicator source configured")
	}
	return nil
}

// Score runs one complete assessment. Every failure carries a domain error
// kind; nothing is retried and nothing is swallowed.
func (s *Scorer) Score(ctx context.Context, app domain.Application) (domain.Assessment, error) {
	start := time.Now()

	assessment, err := s.score(ctx, app)

	s.metrics.ScoreDuration.Observe(time.Since(start).Seconds())
	s.metrics.ScoreRequests.WithLabelValues(outcomeLabel(err)).Inc()

	if err != nil {
		s.logger.Warn("scoring failed",
			"kind", string(domain.KindOf(err)),
			"city", app.Location.City,
			"error", err,
		)
		return domain.Assessment{}, err
	}

	s.logger.Info("application scored",
		"id", assessment.ID,
		"adjusted_score", assessment.Score.AdjustedScore,
		"category", string(assessment.Score.Category),
		"penalty", assessment.Score.Penalty,
		"indicator_source", assessment.Source,
	)

	s.publishAudit(ctx, assessment)
	return assessment, nil
}

func (s *Scorer) score(ctx context.Context, app domain.Application) (domain.Assessment, error) {
	if err := app.Validate(s.cfg); err != nil {
		return domain.Assessment{}, err
	}

	loc, err := s.catalog.Resolve(app.Location)
	if err != nil {
		return domain.Assessment{}, err
	}

	ind, err := s.source.FetchIndicators(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return domain.Assessment{}, err
	}

	score, err := domain.Combine(app.Profile, ind, s.cfg)
	if err != nil {
		return domain.Assessment{}, err
	}

	var analysis *domain.DecisionResult
	if app.Loan != nil {
		result := domain.Analyze(score, s.cfg, ind, *app.Loan)
		analysis = &result
	}

	return domain.NewAssessment(app, loc, ind, s.sourceName, score, analysis), nil
}

// publishAudit sends the assessment to the audit stream. A failed publish is
// logged and counted but never fails the scoring request: the caller already
// has a fully observable result.
func (s *Scorer) publishAudit(ctx context.Context, assessment domain.Assessment) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Publish(ctx, domain.NewAuditEvent(assessment)); err != nil {
		s.metrics.AuditErrors.Inc()
		s.logger.Error("audit publish failed", "id", assessment.ID, "error", err)
		return
	}
	s.metrics.AuditPublished.Inc()
}

func outcomeLabel(err error) string {
	if err == nil {
		return "success"
	}
	if kind := domain.KindOf(err); kind != "" {
		return string(kind)
	}
	return "internal"
}
