package domain

import "context"

// PlaceSearcher returns ranked place matches for a free-text query, including
// semantic type tags and an optional business name.
type PlaceSearcher interface {
	// SearchPlaces runs a text search against the place-search endpoint.
	// Implementations return an empty slice (nil error) when the provider
	// answered successfully but found nothing, and a *ProviderError when the
	// provider reported a non-success status.
	SearchPlaces(ctx context.Context, query string) ([]PlaceCandidate, error)
}

// Geocoder converts a free-text address into a formatted address and
// structured components, without business-type coverage.
type Geocoder interface {
	// Geocode resolves an address against the geocode endpoint. Result and
	// error conventions match PlaceSearcher.SearchPlaces.
	Geocode(ctx context.Context, address string) ([]PlaceCandidate, error)
}
