// Package geocode turns postal addresses into coordinates.
package geocode

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/shop-directory/internal/domain"
)

var (
	// ErrNotFound means the provider returned no candidate for the address.
	ErrNotFound = errors.New("geocode: no coordinates for address")
	// ErrProvider means the provider call itself failed.
	ErrProvider = errors.New("geocode: provider failure")
)

// Resolver resolves a single-line address to coordinates.
type Resolver interface {
	Resolve(ctx context.Context, address string) (domain.Coordinates, error)
}

// FormatAddress joins street, city and postal code into one line.
func FormatAddress(street, city, pincode string) string {
	return strings.Join([]string{
		strings.TrimSpace(street),
		strings.TrimSpace(city),
		strings.TrimSpace(pincode),
	}, ", ")
}

// Disabled is used when no provider credentials are configured.
type Disabled struct{}

func (Disabled) Resolve(context.Context, string) (domain.Coordinates, error) {
	return domain.Coordinates{}, errors.Join(ErrProvider, errors.New("geocoder not configured"))
}
