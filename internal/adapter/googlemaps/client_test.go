package googlemaps

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transitdesk/destination-resolver/internal/domain"
	"github.com/transitdesk/destination-resolver/internal/observability"
)

const (
	testKey           = "test-key"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func testClient(placesURL, geocodeURL string) *Client {
	return &Client{
		key:            testKey,
		httpClient:     &http.Client{Timeout: 5 * time.Second},
		placesBaseURL:  placesURL,
		geocodeBaseURL: geocodeURL,
		metrics:        testMetrics(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient("", 5*time.Second, testMetrics(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)

	c, err := NewClient(testKey, 5*time.Second, testMetrics(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestClient_SearchPlaces_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "joes diner", r.URL.Query().Get("query"))
		assert.Equal(t, testKey, r.URL.Query().Get("key"))

		resp := response{
			Status: "OK",
			Results: []result{
				{
					Name:             "Joe's Diner",
					FormattedAddress: "456 Elm St, Springfield, IL 62701",
					Types:            []string{"restaurant", "food", "point_of_interest"},
				},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	candidates, err := c.SearchPlaces(context.Background(), "joes diner")
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	assert.Equal(t, "Joe's Diner", candidates[0].DisplayName)
	assert.Equal(t, "456 Elm St, Springfield, IL 62701", candidates[0].FormattedAddress)
	assert.True(t, candidates[0].Types.Has("restaurant"))
	assert.True(t, candidates[0].Types.HasAny("point_of_interest"))
}

func TestClient_Geocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "main and 1st", r.URL.Query().Get("address"))
		assert.Equal(t, testKey, r.URL.Query().Get("key"))

		resp := response{
			Status: "OK",
			Results: []result{
				{
					FormattedAddress: "Main St & 1st Ave, Springfield, IL",
					Types:            []string{"intersection"},
					AddressComponents: []addressComponent{
						{LongName: "Main Street", ShortName: "Main St", Types: []string{"route"}},
						{LongName: "1st Avenue", ShortName: "1st Ave", Types: []string{"route"}},
						{LongName: "Springfield", ShortName: "Springfield", Types: []string{"locality"}},
					},
				},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	candidates, err := c.Geocode(context.Background(), "main and 1st")
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	top := candidates[0]
	assert.Empty(t, top.DisplayName, "geocode results carry no business name")
	assert.True(t, top.Types.Has("intersection"))
	require.Len(t, top.AddressComponents, 3)
	assert.Equal(t, "Main Street", top.AddressComponents[0].LongName)
	assert.Equal(t, "Main St", top.AddressComponents[0].ShortName)
	assert.True(t, top.AddressComponents[0].Types.Has("route"))
}

func TestClient_NonOKStatus_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{
			Status:       "REQUEST_DENIED",
			ErrorMessage: "The provided API key is invalid.",
		}))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.SearchPlaces(context.Background(), "anywhere")
	require.Error(t, err)

	var pe *domain.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "REQUEST_DENIED", pe.Status)
	assert.Equal(t, "The provided API key is invalid.", pe.Message)
}

func TestClient_ZeroResultsStatus_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{Status: "ZERO_RESULTS"}))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.Geocode(context.Background(), "nowhere")

	var pe *domain.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, domain.StatusZeroResults, pe.Status)
}

func TestClient_OKButEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{Status: "OK", Results: []result{}}))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	candidates, err := c.SearchPlaces(context.Background(), "anywhere")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.SearchPlaces(context.Background(), "anywhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte("not-json{{{"))
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	_, err := c.Geocode(context.Background(), "anywhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL, srv.URL)
	c.httpClient.Timeout = 50 * time.Millisecond

	_, err := c.SearchPlaces(context.Background(), "anywhere")
	require.Error(t, err)
}
