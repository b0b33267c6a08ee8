package proximity

import (
	"sort"

	"github.com/spec-kit/shop-directory/internal/domain"
)

// DefaultRadiusKm is the search radius when none is configured.
const DefaultRadiusKm = 5.0

// Result is a candidate shop annotated with its distance from the origin.
type Result struct {
	Shop       domain.Shop
	DistanceKm float64
}

// Nearby returns the candidates within radiusKm of origin, nearest first.
// The origin itself and candidates with non-finite coordinates are skipped.
// Ties keep the order in which candidates were given.
func Nearby(origin domain.Shop, candidates []domain.Shop, radiusKm float64) []Result {
	from := origin.Coordinates()
	results := make([]Result, 0)
	for _, candidate := range candidates {
		if candidate.ID == origin.ID {
			continue
		}
		to := candidate.Coordinates()
		if !to.Valid() {
			continue
		}
		d := DistanceKm(from, to)
		if d <= radiusKm {
			results = append(results, Result{Shop: candidate, DistanceKm: d})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results
}
