// Package catalog resolves place names to coordinates and derives fallback
// climate-hazard indicators when no external provider is configured.
//
// The seeded city list and the coastal/southern/western-dryness derivation
// are calibrated for the Indian subcontinent; coordinates outside the
// supported boundary are rejected as location errors.
package catalog

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/domain"
)

// Supported coordinate boundary (the Indian landmass and nearby waters).
const (
	minLat = 6.0
	maxLat = 38.5
	minLon = 68.0
	maxLon = 97.5
)

// City is a seeded catalog entry.
type City struct {
	Name  string  `json:"name"`
	State string  `json:"state"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

var seedCities = []City{
	{"Chennai", "Tamil Nadu", 13.0827, 80.2707},
	{"Coimbatore", "Tamil Nadu", 11.0168, 76.9558},
	{"Madurai", "Tamil Nadu", 9.9252, 78.1198},
	{"Tiruchirappalli", "Tamil Nadu", 10.7905, 78.7047},
	{"Salem", "Tamil Nadu", 11.6643, 78.1460},
	{"Mumbai", "Maharashtra", 19.0760, 72.8777},
	{"Pune", "Maharashtra", 18.5204, 73.8567},
	{"Nagpur", "Maharashtra", 21.1458, 79.0882},
	{"Nashik", "Maharashtra", 19.9975, 73.7898},
	{"Aurangabad", "Maharashtra", 19.8762, 75.3433},
	{"Bengaluru", "Karnataka", 12.9716, 77.5946},
	{"Mysuru", "Karnataka", 12.2958, 76.6394},
	{"Mangaluru", "Karnataka", 12.9141, 74.8560},
	{"Hubballi", "Karnataka", 15.3647, 75.1240},
	{"Belagavi", "Karnataka", 15.8497, 74.4977},
	{"Ahmedabad", "Gujarat", 23.0225, 72.5714},
	{"Surat", "Gujarat", 21.1702, 72.8311},
	{"Vadodara", "Gujarat", 22.3072, 73.1812},
	{"Rajkot", "Gujarat", 22.3039, 70.8022},
	{"Bhavnagar", "Gujarat", 21.7645, 72.1519},
	{"Lucknow", "Uttar Pradesh", 26.8467, 80.9462},
	{"Kanpur", "Uttar Pradesh", 26.4499, 80.3319},
	{"Varanasi", "Uttar Pradesh", 25.3176, 82.9739},
	{"Agra", "Uttar Pradesh", 27.1767, 78.0081},
	{"Prayagraj", "Uttar Pradesh", 25.4358, 81.8463},
	{"Jaipur", "Rajasthan", 26.9124, 75.7873},
	{"Jodhpur", "Rajasthan", 26.2389, 73.0243},
	{"Udaipur", "Rajasthan", 24.5854, 73.7125},
	{"Kota", "Rajasthan", 25.2138, 75.8648},
	{"Bikaner", "Rajasthan", 28.0229, 73.3119},
}

// Catalog is an immutable, seeded city lookup. Safe for concurrent use.
type Catalog struct {
	cities []City
	byName map[string]City
}

// New builds a catalog from the seeded city list.
func New() *Catalog {
	c := &Catalog{
		cities: seedCities,
		byName: make(map[string]City, len(seedCities)),
	}
	for _, city := range seedCities {
		c.byName[strings.ToLower(city.Name)] = city
	}
	return c
}

// Size returns the number of seeded cities.
func (c *Catalog) Size() int { return len(c.cities) }

// List returns all cities grouped by state, states and cities sorted by name.
func (c *Catalog) List() map[string][]City {
	grouped := make(map[string][]City)
	for _, city := range c.cities {
		grouped[city.State] = append(grouped[city.State], city)
	}
	for state := range grouped {
		sort.Slice(grouped[state], func(i, j int) bool {
			return grouped[state][i].Name < grouped[state][j].Name
		})
	}
	return grouped
}

// Resolve turns a request location into concrete coordinates. Explicit
// coordinates win over the city name; either way the result must fall inside
// the supported boundary.
func (c *Catalog) Resolve(loc domain.Location) (domain.Location, error) {
	if loc.HasCoordinates() {
		if !withinBoundary(loc.Lat, loc.Lon) {
			return domain.Location{}, domain.Errorf(domain.KindLocation,
				"coordinates (%g, %g) outside supported boundary", loc.Lat, loc.Lon)
		}
		return loc, nil
	}

	city, ok := c.byName[strings.ToLower(strings.TrimSpace(loc.City))]
	if !ok {
		return domain.Location{}, domain.Errorf(domain.KindLocation,
			"unknown city %q: supply coordinates or a catalog city", loc.City)
	}

	resolved := domain.Location{State: city.State, City: city.Name, Lat: city.Lat, Lon: city.Lon}
	if loc.State != "" {
		resolved.State = loc.State
	}
	return resolved, nil
}

func withinBoundary(lat, lon float64) bool {
	return lat >= minLat && lat <= maxLat && lon >= minLon && lon <= maxLon
}

// DeriveIndicators computes deterministic hazard severities from coordinates
// using proximity factors: closeness to the eastern coast drives flood and
// cyclone exposure, southern latitude drives rainfall, and the western dry
// belt drives drought and heat.
func DeriveIndicators(lat, lon float64) domain.Indicators {
	coastal := proximity(lon, 80, 18)
	south := proximity(lat, 12, 18)
	westDry := proximity(lon, 72, 12)

	return domain.Indicators{
		Rainfall: clip(30+35*south+18*coastal, 20, 95) / 100,
		Flood:    clip(18+42*coastal+20*south, 10, 95) / 100,
		Cyclone:  clip(10+55*coastal, 5, 95) / 100,
		Drought:  clip(20+50*westDry+12*(1-south), 10, 95) / 100,
		Heat:     clip(25+40*(1-south)+15*westDry, 10, 95) / 100,
	}
}

// proximity returns 1 at the reference value, decaying linearly to 0 over span.
func proximity(v, ref, span float64) float64 {
	return math.Max(0, 1-math.Min(math.Abs(v-ref)/span, 1))
}

func clip(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// DerivedSource implements domain.IndicatorSource from the derivation above.
// It is the fallback when the external provider is disabled, and never fails.
type DerivedSource struct{}

// FetchIndicators derives severities locally; the context is unused because
// no I/O happens.
func (DerivedSource) FetchIndicators(_ context.Context, lat, lon float64) (domain.Indicators, error) {
	return DeriveIndicators(lat, lon), nil
}
