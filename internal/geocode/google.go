package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"github.com/spec-kit/shop-directory/internal/domain"
)

const zeroResultsStatus = "ZERO_RESULTS"

// GoogleResolver calls the Google Geocoding API once per Resolve.
type GoogleResolver struct {
	client *maps.Client
}

// GoogleOptions configures the Google client.
type GoogleOptions struct {
	APIKey  string
	Timeout time.Duration
	// BaseURL overrides the API endpoint; empty means the public one.
	BaseURL string
}

// NewGoogleResolver builds a resolver backed by the Maps client.
func NewGoogleResolver(opts GoogleOptions) (*GoogleResolver, error) {
	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(opts.APIKey),
		maps.WithHTTPClient(&http.Client{Timeout: opts.Timeout}),
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(opts.BaseURL))
	}
	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("init maps client: %w", err)
	}
	return &GoogleResolver{client: client}, nil
}

// Resolve returns the first candidate. No retry and no cache.
func (g *GoogleResolver) Resolve(ctx context.Context, address string) (domain.Coordinates, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		if strings.Contains(err.Error(), zeroResultsStatus) {
			return domain.Coordinates{}, ErrNotFound
		}
		return domain.Coordinates{}, errors.Join(ErrProvider, err)
	}
	if len(results) == 0 {
		return domain.Coordinates{}, ErrNotFound
	}

	loc := results[0].Geometry.Location
	return domain.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
