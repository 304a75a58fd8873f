package domain

import "math"

// Decision is the three-way lending verdict.
type Decision string

const (
	DecisionAutoApprove Decision = "Auto Approve"
	DecisionConditional Decision = "Conditional Approve"
	DecisionReject      Decision = "Reject"
)

// Decision policy constants. The auto-approve ceiling keeps large exposures
// under manual review regardless of score.
const (
	autoApproveScore  = 745.0
	autoApproveAmount = 3_000_000.0
	conditionalScore  = 650.0
)

// Pricing is the suggested risk-based loan terms.
type Pricing struct {
	InterestRate    float64 `json:"interest_rate"`    // annual %, from a 7.9% base
	CollateralRatio float64 `json:"collateral_ratio"` // % of loan amount
	TenureMonths    int     `json:"tenure_months"`    // bounded to 12–84
}

// DecisionResult is the full downstream analytics block, produced only when
// loan details accompany the application.
type DecisionResult struct {
	PropertyRisk      int      `json:"property_risk"` // 0–100
	Decision          Decision `json:"decision"`
	Pricing           Pricing  `json:"pricing"`
	ESGScore          int      `json:"esg_score"` // 0–100
	ESGRecommendation string   `json:"esg_recommendation"`
	EarlyWarning      bool     `json:"early_warning"`
	WarningMessage    string   `json:"warning_message,omitempty"`
}

// propertyFactor scales property risk by how exposed the asset class is to
// climate damage. Farms sit at the top; apartments benefit from shared
// structures and elevation.
func propertyFactor(propertyType string) float64 {
	switch propertyType {
	case PropertyApartment:
		return 0.85
	case PropertyFarm:
		return 1.25
	case PropertyCommercial:
		return 1.1
	default:
		return 1.0
	}
}

// PropertyRisk scores the financed asset 0–100 from loan-to-value and the
// two hazards that damage structures directly, scaled by asset class.
func PropertyRisk(loan LoanDetails, ind Indicators) int {
	ltv := loan.Amount / math.Max(loan.PropertyValue, 1) * 100
	score := (0.4*ltv + 35*ind.Flood + 25*ind.Cyclone) * propertyFactor(loan.PropertyType)
	return int(clamp(math.Round(score), 0, 100))
}

// Decide applies the lending policy: high climate risk is an unconditional
// rejection, strong adjusted scores on bounded exposures auto-approve, and
// the middle band goes to conditional approval.
func Decide(result ScoreResult, loan LoanDetails) Decision {
	if result.Category == RiskHigh {
		return DecisionReject
	}
	if result.AdjustedScore >= autoApproveScore && loan.Amount <= autoApproveAmount {
		return DecisionAutoApprove
	}
	if result.AdjustedScore >= conditionalScore {
		return DecisionConditional
	}
	return DecisionReject
}

// SuggestPricing derives loan terms from the climate penalty and the adjusted
// score. Riskier applications pay more, post more collateral, and repay over
// shorter tenures.
func SuggestPricing(result ScoreResult, cfg ScoringConfig, requestedTenure int) Pricing {
	severity := result.PenaltyRatio(cfg) * 100 // 0–100

	rate := 7.9 + severity*0.06 + math.Max(0, 700-result.AdjustedScore)*0.01
	collateral := math.Min(85, 18+severity*0.55)
	tenure := requestedTenure - int(math.Round(severity*0.25))
	if tenure < 12 {
		tenure = 12
	}
	if tenure > 84 {
		tenure = 84
	}

	return Pricing{
		InterestRate:    round2(rate),
		CollateralRatio: round2(collateral),
		TenureMonths:    tenure,
	}
}

// ESGScore blends overall climate severity with the slow-onset hazards and
// property exposure into a 0–100 ESG risk figure.
func ESGScore(result ScoreResult, cfg ScoringConfig, ind Indicators, propertyRisk int) int {
	severity := result.PenaltyRatio(cfg) * 100
	esg := severity*0.58 + ind.Flood*16 + ind.Drought*16 + float64(propertyRisk)*0.10
	return int(clamp(math.Round(esg), 0, 100))
}

// ESGRecommendation maps an ESG score to a lending stance.
func ESGRecommendation(esgScore int) string {
	switch {
	case esgScore >= 75:
		return "Restrict lending with mandatory green mitigation plan"
	case esgScore >= 55:
		return "Conditional lending with ESG covenants"
	default:
		return "Standard ESG monitoring"
	}
}

// EarlyWarning flags applications that warrant portfolio attention even when
// the decision is favourable.
func EarlyWarning(result ScoreResult, cfg ScoringConfig, esgScore int) (bool, string) {
	ratio := result.PenaltyRatio(cfg)
	if ratio >= 0.75 {
		return true, "Critical Alert: Immediate portfolio review required"
	}
	if ratio >= 0.50 || esgScore >= 65 {
		return true, "Warning: Closely monitor repayment and climate events"
	}
	return false, ""
}

// Analyze runs the complete downstream block for an application with loan
// details. Pure and deterministic, like Combine.
func Analyze(result ScoreResult, cfg ScoringConfig, ind Indicators, loan LoanDetails) DecisionResult {
	propertyRisk := PropertyRisk(loan, ind)
	esg := ESGScore(result, cfg, ind, propertyRisk)
	warning, msg := EarlyWarning(result, cfg, esg)

	return DecisionResult{
		PropertyRisk:      propertyRisk,
		Decision:          Decide(result, loan),
		Pricing:           SuggestPricing(result, cfg, loan.TenureMonths),
		ESGScore:          esg,
		ESGRecommendation: ESGRecommendation(esg),
		EarlyWarning:      warning,
		WarningMessage:    msg,
	}
}
