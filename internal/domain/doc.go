// Package domain models climate-adjusted credit scoring.
//
// # Scoring Model
//
// A borrower's traditional credit score (bounded to the RBI-style 300–900
// range) is reduced by a climate-risk penalty derived from five normalized
// hazard indicators at the loan's location:
//
//	flood risk, drought risk, heat stress, cyclone exposure, rainfall variability
//
// Each indicator is a severity in [0.0, 1.0]. The penalty is a linear
// combination of the severities with fixed per-indicator weights summing to
// 1.0, scaled by a maximum penalty cap:
//
//	penalty  = MaxPenalty × Σ (weight_i × severity_i)
//	adjusted = clamp(base − penalty, MinScore, MaxScore)
//
// The cap is bounded to 20% of the score range (default 120 points) so the
// climate adjustment can never dominate the financial signal. The linear form
// is deliberate: every point of adjustment is attributable to a named hazard,
// which keeps lending decisions explainable and auditable.
//
// # Risk Categories
//
// The adjusted score maps to a category through configured threshold bands,
// exact at the boundaries:
//
//	adjusted ≥ LowThreshold     → Low     (default 700)
//	adjusted ≥ MediumThreshold  → Medium  (default 500)
//	otherwise                   → High
//
// Higher climate severity never lowers the risk category: the penalty is
// monotonically non-decreasing in every indicator, and categories are
// monotonic in the adjusted score.
//
// # Indicator Sources
//
// Hazard indices arrive from an external provider on a 0–100 scale and are
// normalized to [0,1] on ingestion. Out-of-range provider values are rejected
// as data-validation errors rather than clamped, so a misbehaving provider
// can never silently skew a lending decision. When no provider is configured,
// indicators are derived deterministically from coordinates using coastal,
// southern, and western-dryness proximity factors calibrated for the Indian
// subcontinent.
//
// # Downstream Analytics
//
// When loan details accompany a request, the adjusted score feeds a
// deterministic decision layer: property risk (LTV and hazard weighted),
// a three-way loan decision, risk-based pricing, an ESG risk score with a
// lending recommendation, and an early-warning flag. All of it is plain
// arithmetic on already-computed values; there is no model inference.
package domain
