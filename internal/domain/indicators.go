package domain

import "fmt"

// Indicator names as they appear on the wire and in provider responses.
const (
	IndicatorFlood    = "flood"
	IndicatorDrought  = "drought"
	IndicatorHeat     = "heat"
	IndicatorCyclone  = "cyclone"
	IndicatorRainfall = "rainfall"
)

// RequiredIndicators is the complete set a provider response must carry.
var RequiredIndicators = []string{
	IndicatorFlood,
	IndicatorDrought,
	IndicatorHeat,
	IndicatorCyclone,
	IndicatorRainfall,
}

// Indicators holds normalized hazard severities in [0.0, 1.0] for a location.
// Produced fresh per request; never cached.
type Indicators struct {
	Flood    float64 `json:"flood"`
	Drought  float64 `json:"drought"`
	Heat     float64 `json:"heat"`
	Cyclone  float64 `json:"cyclone"`
	Rainfall float64 `json:"rainfall"`
}

// providerScale is the upper bound of raw provider hazard indices.
const providerScale = 100.0

// IndicatorsFromIndices converts raw 0–100 provider indices into normalized
// Indicators. A missing required index is a validation error; an out-of-range
// value is a data-validation error, never clamped, so provider defects stay
// visible in the audit trail.
func IndicatorsFromIndices(indices map[string]float64) (Indicators, error) {
	var ind Indicators
	for _, name := range RequiredIndicators {
		raw, ok := indices[name]
		if !ok {
			return Indicators{}, Errorf(KindValidation, "provider response missing %q index", name)
		}
		if raw < 0 || raw > providerScale {
			return Indicators{}, Errorf(KindDataValidation,
				"%s index %g outside [0, %g]", name, raw, providerScale)
		}
		ind.set(name, raw/providerScale)
	}
	return ind, nil
}

// Validate checks that every severity is within [0, 1].
func (i Indicators) Validate() error {
	for name, v := range i.byName() {
		if v < 0 || v > 1 {
			return Errorf(KindValidation, "%s severity %g outside [0, 1]", name, v)
		}
	}
	return nil
}

func (i *Indicators) set(name string, v float64) {
	switch name {
	case IndicatorFlood:
		i.Flood = v
	case IndicatorDrought:
		i.Drought = v
	case IndicatorHeat:
		i.Heat = v
	case IndicatorCyclone:
		i.Cyclone = v
	case IndicatorRainfall:
		i.Rainfall = v
	default:
		panic(fmt.Sprintf("unknown indicator %q", name))
	}
}

func (i Indicators) byName() map[string]float64 {
	return map[string]float64{
		IndicatorFlood:    i.Flood,
		IndicatorDrought:  i.Drought,
		IndicatorHeat:     i.Heat,
		IndicatorCyclone:  i.Cyclone,
		IndicatorRainfall: i.Rainfall,
	}
}
