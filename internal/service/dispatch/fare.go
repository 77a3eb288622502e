package dispatch

import (
	"math"
	"math/rand/v2"
)

// Tariff constants. The distance is simulated, not derived from the actual
// locations: this is a demo, not a routing engine.
const (
	baseFare      = 5.00
	perKmRate     = 2.50
	minDistanceKm = 2.0
	maxDistanceKm = 22.0
)

// FareEstimator produces a synthetic distance and fare for a booking.
// Side-effect free; the random source is injectable for tests.
type FareEstimator struct {
	rnd func() float64 // uniform [0, 1)
}

func NewFareEstimator() *FareEstimator {
	return &FareEstimator{rnd: rand.Float64}
}

func NewFareEstimatorWithSource(rnd func() float64) *FareEstimator {
	return &FareEstimator{rnd: rnd}
}

// Estimate returns a fare rounded to 2 decimal places and a distance in km
// rounded to 1, with distance drawn uniformly from [2, 22].
func (e *FareEstimator) Estimate(pickup, dropoff string) (fare, distanceKm float64) {
	d := minDistanceKm + e.rnd()*(maxDistanceKm-minDistanceKm)
	f := baseFare + d*perKmRate
	return round(f, 2), round(d, 1)
}

func round(x float64, places int) float64 {
	pow := math.Pow10(places)
	return math.Round(x*pow) / pow
}
