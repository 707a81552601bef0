package dto

import "time"

type Pricing struct {
	BaseFare        float64   `json:"baseFare" validate:"gte=0"`
	PerKm           float64   `json:"perKm" validate:"gte=0"`
	PerMinute       float64   `json:"perMinute" validate:"gte=0"`
	SurgeMultiplier float64   `json:"surgeMultiplier" validate:"gte=1,lte=10"`
	MinimumFare     float64   `json:"minimumFare" validate:"gte=0"`
	Currency        string    `json:"currency" validate:"required,len=3"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}

// Estimate returns the fare for a trip under p.
func (p Pricing) Estimate(distanceKm, minutes float64) float64 {
	fare := (p.BaseFare + p.PerKm*distanceKm + p.PerMinute*minutes) * p.SurgeMultiplier
	if fare < p.MinimumFare {
		return p.MinimumFare
	}
	return fare
}
