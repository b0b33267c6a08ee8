package domain

import (
	"math"
	"strings"
	"time"
	"unicode"
)

// Coordinates is a WGS 84 point in degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether both components are finite numbers.
func (c Coordinates) Valid() bool {
	return isFinite(c.Latitude) && isFinite(c.Longitude)
}

// Shop is the registered account of a shop owner.
type Shop struct {
	ID           string
	ShopName     string
	Email        string
	PasswordHash string
	OwnerName    string
	Address      string
	City         string
	Pincode      string
	Latitude     float64
	Longitude    float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Coordinates returns the shop location.
func (s *Shop) Coordinates() Coordinates {
	return Coordinates{Latitude: s.Latitude, Longitude: s.Longitude}
}

// NameWhitespacePattern is the Postgres regex for the runes NormalizeShopName
// drops. Keep the two in step.
const NameWhitespacePattern = `[ \t\n\v\f\r]+`

// NormalizeShopName strips ASCII whitespace and lower-cases the rest, so
// "Sai Stores", " sai  stores " and "SAISTORES" compare equal.
func NormalizeShopName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if isNameSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func isNameSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
