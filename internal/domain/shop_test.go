package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeShopName(t *testing.T) {
	want := "saistores"
	for _, in := range []string{"SaiStores", "Sai  Stores", "sai stores", "SAISTORES", "  Sai\tStores\n"} {
		assert.Equal(t, want, NormalizeShopName(in), in)
	}
	assert.Empty(t, NormalizeShopName(" \t\v\f\r\n "))

	// Only ASCII whitespace is dropped, matching the SQL pattern.
	assert.Equal(t, "sai\u00a0stores", NormalizeShopName("Sai\u00a0Stores"))
	assert.Equal(t, "sai\u0085stores", NormalizeShopName("Sai\u0085Stores"))
	assert.Equal(t, `[ \t\n\v\f\r]+`, NameWhitespacePattern)
}

func TestCoordinatesValid(t *testing.T) {
	assert.True(t, Coordinates{}.Valid())
	assert.True(t, Coordinates{Latitude: -33.9, Longitude: 151.2}.Valid())
	assert.False(t, Coordinates{Latitude: math.NaN()}.Valid())
	assert.False(t, Coordinates{Longitude: math.Inf(1)}.Valid())
}
