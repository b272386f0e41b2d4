package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/transitdesk/destination-resolver/internal/domain"
	"github.com/transitdesk/destination-resolver/internal/observability"
)

const (
	defaultPlacesBaseURL  = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	defaultGeocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

	endpointPlaces  = "places"
	endpointGeocode = "geocode"
)

// Client implements domain.PlaceSearcher and domain.Geocoder using the
// Google Maps Platform web services. A single resolution issues at most two
// sequential requests; deadlines come from the HTTP client timeout and the
// caller's context. No retries are performed.
type Client struct {
	key            string
	httpClient     *http.Client
	placesBaseURL  string
	geocodeBaseURL string
	metrics        *observability.Metrics
	logger         *slog.Logger
}

// NewClient creates a Google Maps client. The API key is required; callers
// without one should hold a nil client and rely on the resolver's fallback.
func NewClient(key string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) (*Client, error) {
	if key == "" {
		return nil, errors.New("googlemaps: API key is required")
	}
	return &Client{
		key: key,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		placesBaseURL:  defaultPlacesBaseURL,
		geocodeBaseURL: defaultGeocodeBaseURL,
		metrics:        metrics,
		logger:         logger,
	}, nil
}

// SearchPlaces runs a free-text search against the place-search endpoint.
func (c *Client) SearchPlaces(ctx context.Context, query string) ([]domain.PlaceCandidate, error) {
	params := url.Values{
		"query": {query},
		"key":   {c.key},
	}
	return c.doRequest(ctx, c.placesBaseURL+"?"+params.Encode(), endpointPlaces)
}

// Geocode resolves a free-text address against the geocode endpoint.
func (c *Client) Geocode(ctx context.Context, address string) ([]domain.PlaceCandidate, error) {
	params := url.Values{
		"address": {address},
		"key":     {c.key},
	}
	return c.doRequest(ctx, c.geocodeBaseURL+"?"+params.Encode(), endpointGeocode)
}

func (c *Client) doRequest(ctx context.Context, fullURL, endpoint string) ([]domain.PlaceCandidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ProviderAPIDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("googlemaps API error: status %d: %s", resp.StatusCode, body)
	}

	var gr response
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if gr.Status != domain.StatusOK {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, &domain.ProviderError{Status: gr.Status, Message: gr.ErrorMessage}
	}

	if len(gr.Results) == 0 {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "empty").Inc()
		return nil, nil
	}

	c.metrics.ProviderRequests.WithLabelValues(endpoint, "success").Inc()
	candidates := make([]domain.PlaceCandidate, len(gr.Results))
	for i, r := range gr.Results {
		candidates[i] = r.toCandidate()
	}
	return candidates, nil
}

// Google Maps API response types.

type response struct {
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message,omitempty"`
	Results      []result `json:"results"`
}

type result struct {
	Name              string             `json:"name,omitempty"` // place search only
	FormattedAddress  string             `json:"formatted_address"`
	Types             []string           `json:"types"`
	AddressComponents []addressComponent `json:"address_components"`
}

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

func (r result) toCandidate() domain.PlaceCandidate {
	components := make([]domain.AddressComponent, len(r.AddressComponents))
	for i, ac := range r.AddressComponents {
		components[i] = domain.AddressComponent{
			LongName:  ac.LongName,
			ShortName: ac.ShortName,
			Types:     domain.NewTypeSet(ac.Types...),
		}
	}
	return domain.PlaceCandidate{
		DisplayName:       r.Name,
		FormattedAddress:  r.FormattedAddress,
		Types:             domain.NewTypeSet(r.Types...),
		AddressComponents: components,
	}
}
