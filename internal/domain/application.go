package domain

import (
	"strings"
	"time"
)

// FinancialProfile carries the borrower's traditional financial inputs.
// Immutable per request; never stored.
type FinancialProfile struct {
	BaseScore    float64 `json:"base_score"`
	OnTimeRatio  float64 `json:"on_time_ratio,omitempty"` // share of past installments paid on time, 0–1
	PriorDefault bool    `json:"prior_default,omitempty"`
	AnnualIncome float64 `json:"annual_income,omitempty"`
}

// Location identifies where the financed property sits. Either a catalog
// city name or explicit coordinates must be present.
type Location struct {
	State string  `json:"state,omitempty"`
	City  string  `json:"city,omitempty"`
	Lat   float64 `json:"lat,omitempty"`
	Lon   float64 `json:"lon,omitempty"`
}

// HasCoordinates reports whether explicit coordinates were supplied.
// (0, 0) is in the Gulf of Guinea, far outside the supported boundary, so
// the zero value safely means "not set".
func (l Location) HasCoordinates() bool {
	return l.Lat != 0 || l.Lon != 0
}

// Property types recognised by the property-risk model.
const (
	PropertyHouse      = "House"
	PropertyApartment  = "Apartment"
	PropertyFarm       = "Farm"
	PropertyCommercial = "Commercial"
)

// LoanDetails are optional per-application loan terms. When present, the
// scorer extends the assessment with a decision, pricing, and ESG block.
type LoanDetails struct {
	Amount        float64 `json:"amount"`
	TenureMonths  int     `json:"tenure_months"`
	PropertyType  string  `json:"property_type"`
	PropertyValue float64 `json:"property_value"`
}

// Application is a single scoring request: who is borrowing, where, and
// optionally on what terms. No Application outlives its request.
type Application struct {
	BorrowerName string           `json:"borrower_name,omitempty"`
	Profile      FinancialProfile `json:"profile"`
	Location     Location         `json:"location"`
	Loan         *LoanDetails     `json:"loan,omitempty"`
	ReceivedAt   time.Time        `json:"-"`
}

// Validate checks caller-supplied inputs against the configured score bounds.
// Indicator and location validity are checked later, by their owners.
func (a Application) Validate(cfg ScoringConfig) error {
	if a.Profile.BaseScore < cfg.MinScore || a.Profile.BaseScore > cfg.MaxScore {
		return Errorf(KindValidation, "base score %g outside [%g, %g]",
			a.Profile.BaseScore, cfg.MinScore, cfg.MaxScore)
	}
	if a.Profile.OnTimeRatio < 0 || a.Profile.OnTimeRatio > 1 {
		return Errorf(KindValidation, "on-time ratio %g outside [0, 1]", a.Profile.OnTimeRatio)
	}
	if !a.Location.HasCoordinates() && strings.TrimSpace(a.Location.City) == "" {
		return Errorf(KindValidation, "location requires a city name or coordinates")
	}
	if a.Loan != nil {
		if a.Loan.Amount <= 0 {
			return Errorf(KindValidation, "loan amount must be positive")
		}
		if a.Loan.TenureMonths <= 0 {
			return Errorf(KindValidation, "loan tenure must be positive")
		}
		if a.Loan.PropertyValue <= 0 {
			return Errorf(KindValidation, "property value must be positive")
		}
		switch a.Loan.PropertyType {
		case PropertyHouse, PropertyApartment, PropertyFarm, PropertyCommercial:
		default:
			return Errorf(KindValidation, "unknown property type %q", a.Loan.PropertyType)
		}
	}
	return nil
}
