package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Assessment is the complete scoring outcome returned to the caller and
// published to the audit stream.
type Assessment struct {
	ID           string          `json:"id"`
	BorrowerName string          `json:"borrower_name,omitempty"`
	Location     Location        `json:"location"`
	Indicators   Indicators      `json:"indicators"`
	Source       string          `json:"indicator_source"` // "provider" or "derived"
	Score        ScoreResult     `json:"score"`
	Analysis     *DecisionResult `json:"analysis,omitempty"`
	ScoredAt     time.Time       `json:"scored_at"`
}

// NewAssessment assembles an assessment and stamps it with the package clock.
// The ID is a deterministic hash of the scoring inputs and timestamp, so
// replayed audit events can be de-duplicated downstream.
func NewAssessment(app Application, loc Location, ind Indicators, source string, score ScoreResult, analysis *DecisionResult) Assessment {
	scoredAt := clock.Now().UTC()
	return Assessment{
		ID:           assessmentID(app, loc, scoredAt),
		BorrowerName: app.BorrowerName,
		Location:     loc,
		Indicators:   ind,
		Source:       source,
		Score:        score,
		Analysis:     analysis,
		ScoredAt:     scoredAt,
	}
}

func assessmentID(app Application, loc Location, scoredAt time.Time) string {
	input := fmt.Sprintf("%s|%g|%.4f|%.4f|%s",
		app.BorrowerName, app.Profile.BaseScore, loc.Lat, loc.Lon,
		scoredAt.Format(time.RFC3339Nano))
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:8])
}

// Audit actions mirrored from the lending workflow.
const (
	AuditActionScore = "score"
)

// AuditEvent is the serializable audit-trail record for one assessment.
type AuditEvent struct {
	Action     string     `json:"action"`
	Assessment Assessment `json:"assessment"`
	// RiskFactors is a compact human-readable summary for audit review,
	// e.g. "flood=0.42, drought=0.31, penalty=54.2".
	RiskFactors string `json:"risk_factors"`
}

// NewAuditEvent builds the audit record for a completed assessment.
func NewAuditEvent(a Assessment) AuditEvent {
	return AuditEvent{
		Action:     AuditActionScore,
		Assessment: a,
		RiskFactors: fmt.Sprintf(
			"flood=%.2f, drought=%.2f, heat=%.2f, cyclone=%.2f, rainfall=%.2f, penalty=%.2f, category=%s",
			a.Indicators.Flood, a.Indicators.Drought, a.Indicators.Heat,
			a.Indicators.Cyclone, a.Indicators.Rainfall,
			a.Score.Penalty, a.Score.Category,
		),
	}
}
