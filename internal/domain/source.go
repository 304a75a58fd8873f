package domain

import "context"

// IndicatorSource retrieves climate hazard indicators for coordinates.
type IndicatorSource interface {
	// FetchIndicators returns the normalized severities at a location.
	// Implementations make at most one attempt; retry policy belongs to
	// the caller.
	FetchIndicators(ctx context.Context, lat, lon float64) (Indicators, error)
}

// AuditSink receives completed assessments for the audit trail.
type AuditSink interface {
	Publish(ctx context.Context, event AuditEvent) error
}
