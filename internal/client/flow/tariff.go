// Package flow holds the customer and mechanic screen logic without the
// screens: cost estimation, single-select over nearby mechanics, submission
// gates and status-driven actions.
package flow

import "github.com/dmitrijs2005/mechanicassist/internal/client/models"

// Tariff prices a job by distance.
type Tariff struct {
	BaseFare  float64
	PerKmRate float64
}

// DefaultTariff matches the backend's pricing.
var DefaultTariff = Tariff{BaseFare: 100, PerKmRate: 10}

// EstimatedCost returns BaseFare + distanceKm*PerKmRate. Negative distances
// count as zero.
func (t Tariff) EstimatedCost(distanceKm float64) float64 {
	if distanceKm < 0 {
		distanceKm = 0
	}
	return t.BaseFare + distanceKm*t.PerKmRate
}

// Quote is a candidate as displayed: its distance and estimated cost.
type Quote struct {
	Candidate     models.MechanicCandidate
	DistanceKm    float64
	EstimatedCost float64
	Selected      bool
}

// Quotes prices every candidate in order. A candidate without a distance is
// priced at zero distance.
func (t Tariff) Quotes(candidates []models.MechanicCandidate, sel *Selection) []Quote {
	out := make([]Quote, len(candidates))
	for i, c := range candidates {
		d := c.Distance()
		out[i] = Quote{
			Candidate:     c,
			DistanceKm:    d,
			EstimatedCost: t.EstimatedCost(d),
			Selected:      sel != nil && sel.IsSelected(c),
		}
	}
	return out
}
