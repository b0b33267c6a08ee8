package proximity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-directory/internal/domain"
)

func shopAt(id string, lat, lng float64) domain.Shop {
	return domain.Shop{ID: id, ShopName: id, Latitude: lat, Longitude: lng}
}

func ids(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Shop.ID)
	}
	return out
}

func TestDistance_AlongEquator(t *testing.T) {
	origin := domain.Coordinates{}

	assert.InDelta(t, 5.0, DistanceKm(origin, domain.Coordinates{Longitude: 0.045}), 0.02)
	assert.InDelta(t, 111.32, DistanceKm(origin, domain.Coordinates{Longitude: 1}), 0.01)
	assert.Zero(t, DistanceMeters(origin, origin))
}

func TestDistance_Symmetric(t *testing.T) {
	a := domain.Coordinates{Latitude: 12.9716, Longitude: 77.5946}
	b := domain.Coordinates{Latitude: 13.0827, Longitude: 80.2707}
	assert.Equal(t, DistanceMeters(a, b), DistanceMeters(b, a))
	assert.InDelta(t, 290, DistanceKm(a, b), 5)
}

func TestDistance_Antipodal(t *testing.T) {
	d := DistanceMeters(domain.Coordinates{Latitude: 0, Longitude: 0}, domain.Coordinates{Latitude: 0, Longitude: 180})
	assert.False(t, math.IsNaN(d))
	assert.InDelta(t, math.Pi*EarthRadiusMeters, d, 1)
}

func TestNearby_RadiusBoundary(t *testing.T) {
	a := shopAt("a", 0, 0)
	b := shopAt("b", 0, 0.0449)
	population := []domain.Shop{a, b}

	within := Nearby(a, population, 5)
	require.Len(t, within, 1)
	assert.Equal(t, "b", within[0].Shop.ID)
	assert.InDelta(t, 5.0, within[0].DistanceKm, 0.01)

	assert.Empty(t, Nearby(a, population, 4))
}

func TestNearby_NeverIncludesOrigin(t *testing.T) {
	a := shopAt("a", 10, 10)
	twin := shopAt("twin", 10, 10)
	population := []domain.Shop{a, twin, shopAt("far", -10, -10)}

	for _, r := range []float64{0, 1, 5, 25000} {
		got := ids(Nearby(a, population, r))
		assert.NotContains(t, got, "a", "radius %v", r)
		assert.Contains(t, got, "twin", "radius %v", r)
	}
}

func TestNearby_SkipsNonFiniteCoordinates(t *testing.T) {
	a := shopAt("a", 0, 0)
	population := []domain.Shop{
		a,
		shopAt("nan-lat", math.NaN(), 0),
		shopAt("inf-lng", 0, math.Inf(-1)),
		shopAt("ok", 0.01, 0.01),
	}

	assert.Equal(t, []string{"ok"}, ids(Nearby(a, population, 5)))
}

func TestNearby_SortedByDistanceStable(t *testing.T) {
	a := shopAt("a", 0, 0)
	population := []domain.Shop{
		shopAt("three", 0, 0.03),
		a,
		shopAt("one-x", 0, 0.01),
		shopAt("two", 0, 0.02),
		shopAt("one-y", 0.01, 0),
	}

	got := Nearby(a, population, 5)
	assert.Equal(t, []string{"one-x", "one-y", "two", "three"}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].DistanceKm, got[i].DistanceKm)
	}
}

func TestNearby_EmptyPopulation(t *testing.T) {
	got := Nearby(shopAt("a", 0, 0), nil, 5)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
