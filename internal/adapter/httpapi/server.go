package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/transitdesk/destination-resolver/internal/domain"
	"github.com/transitdesk/destination-resolver/internal/observability"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// EventPublisher publishes resolution audit events. A nil publisher disables
// auditing.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ResolutionEvent) error
}

// Server exposes the resolution API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	resolver   *domain.Resolver
	geocoder   domain.Geocoder
	publisher  EventPublisher
	defaultTZ  string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates the HTTP server and wires up all routes.
func NewServer(addr string, resolver *domain.Resolver, geocoder domain.Geocoder, publisher EventPublisher, defaultTZ string, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		resolver:  resolver,
		geocoder:  geocoder,
		publisher: publisher,
		defaultTZ: defaultTZ,
		metrics:   metrics,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(resolver))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/resolve", s.handleResolve)
	mux.HandleFunc("GET /v1/address", s.handleAddress)
	mux.HandleFunc("GET /v1/departure", s.handleDeparture)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleResolve runs the full fallback chain. It never fails for a non-empty
// query; in the worst case the response echoes the query back as the name.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter q is required"})
		return
	}

	start := time.Now()
	res := s.resolver.Resolve(r.Context(), query)
	s.metrics.Resolutions.WithLabelValues(res.Source, res.Category).Inc()

	if s.publisher != nil {
		event := domain.NewResolutionEvent(res, time.Since(start))
		if err := s.publisher.Publish(r.Context(), event); err != nil {
			s.logger.Warn("publish resolution event failed", "query", query, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, res)
}

// handleAddress is the minimal single-provider lookup. Unlike /v1/resolve it
// surfaces failures, translated to display text.
func (s *Server) handleAddress(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("q")
	if address == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter q is required"})
		return
	}

	candidates, err := s.geocoder.Geocode(r.Context(), address)
	if err != nil {
		s.logger.Warn("address lookup failed", "address", address, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": domain.Translate(err)})
		return
	}
	if len(candidates) == 0 {
		notFound := &domain.ProviderError{Status: domain.StatusZeroResults}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": domain.Translate(notFound)})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"query":   address,
		"address": domain.AddressLabel(candidates[0], address),
	})
}

// handleDeparture computes the next wall-clock occurrence of hour:minute for
// the scheduling client.
func (s *Server) handleDeparture(w http.ResponseWriter, r *http.Request) {
	hour, errH := strconv.Atoi(r.URL.Query().Get("hour"))
	minute, errM := strconv.Atoi(r.URL.Query().Get("minute"))
	if errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "hour must be 0-23 and minute 0-59"})
		return
	}

	tz := r.URL.Query().Get("tz")
	if tz == "" {
		tz = s.defaultTZ
	}

	departure := domain.NextOccurrence(hour, minute, tz)
	writeJSON(w, http.StatusOK, map[string]any{
		"departure_at":           departure.Format(time.RFC3339),
		"minutes_after_midnight": domain.ToMinutes(hour, minute),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
