package domain

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Resolution sources: which stage of the fallback chain produced the name.
const (
	SourcePlace   = "place"   // place-search result
	SourceGeocode = "geocode" // geocode result
	SourceQuery   = "query"   // terminal fallback, original input
)

// Place categories assigned during classification.
const (
	CategoryBusiness     = "business"
	CategoryIntersection = "intersection"
	CategoryResidential  = "residential"
	CategoryGeneral      = "general"
)

// Semantic type tags the classifier recognizes.
const (
	TypeIntersection  = "intersection"
	TypeStreetAddress = "street_address"
	TypePremise       = "premise"
	TypeRoute         = "route"
)

// businessTypes are the tags that mark a candidate as an establishment.
// A business name is more useful to a transit rider than its street address.
var businessTypes = []string{
	"establishment",
	"point_of_interest",
	"store",
	"restaurant",
	"gas_station",
	"lodging",
	"gym",
	"supermarket",
}

// Resolution is the outcome of one destination lookup.
type Resolution struct {
	Query      string    `json:"query"`
	Name       string    `json:"name"`
	Source     string    `json:"source"`
	Category   string    `json:"category,omitempty"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// Resolver turns a free-text destination query into the best available
// display name. It tries the place-search provider first, falls back to the
// geocode provider, and finally to the original query, so a non-empty query
// always yields a non-empty name. Resolver never returns an error; provider
// failures degrade to the next stage.
//
// A Resolver is stateless between calls and safe for concurrent use.
type Resolver struct {
	places   PlaceSearcher
	geocoder Geocoder
	logger   *slog.Logger
}

// NewResolver creates a Resolver. Either provider may be nil; its stage is
// then skipped, down to the terminal query fallback.
func NewResolver(places PlaceSearcher, geocoder Geocoder, logger *slog.Logger) *Resolver {
	return &Resolver{
		places:   places,
		geocoder: geocoder,
		logger:   logger,
	}
}

// Resolve runs the full fallback chain for query.
func (r *Resolver) Resolve(ctx context.Context, query string) Resolution {
	res := Resolution{
		Query:      query,
		Name:       query,
		Source:     SourceQuery,
		ResolvedAt: clock.Now().UTC(),
	}
	if query == "" {
		return res
	}

	if r.places != nil {
		candidates, err := r.places.SearchPlaces(ctx, query)
		switch {
		case err != nil:
			r.logger.Warn("place search failed, falling back to geocode",
				"query", query, "error", err)
		case len(candidates) > 0:
			rule := classify(candidates[0].Types)
			res.Name = rule.extract(candidates[0], query)
			res.Category = rule.category
			res.Source = SourcePlace
			return res
		}
	}

	if r.geocoder == nil {
		return res
	}
	candidates, err := r.geocoder.Geocode(ctx, query)
	if err != nil {
		r.logger.Warn("geocode failed, returning original query",
			"query", query, "error", err)
		return res
	}
	if len(candidates) == 0 {
		return res
	}

	top := candidates[0]
	if top.Types.Has(TypeIntersection) {
		res.Name = firstNonEmpty(routeLabel(top), top.FormattedAddress, query)
		res.Category = CategoryIntersection
	} else {
		res.Name = firstNonEmpty(top.FormattedAddress, query)
	}
	res.Source = SourceGeocode
	return res
}

// ResolveName is the plain-string form of Resolve.
func (r *Resolver) ResolveName(ctx context.Context, query string) string {
	return r.Resolve(ctx, query).Name
}

// CheckReadiness reports whether the resolver has at least one provider wired.
func (r *Resolver) CheckReadiness(_ context.Context) error {
	if r.places == nil && r.geocoder == nil {
		return errNoProvider
	}
	return nil
}

// classification pairs a type predicate with a display-name extractor.
// Rules are evaluated top to bottom; the first match wins.
type classification struct {
	category string
	matches  func(TypeSet) bool
	extract  func(PlaceCandidate, string) string
}

var classifications = []classification{
	{
		category: CategoryBusiness,
		matches:  func(ts TypeSet) bool { return ts.HasAny(businessTypes...) },
		extract: func(c PlaceCandidate, query string) string {
			return firstNonEmpty(c.DisplayName, c.FormattedAddress, query)
		},
	},
	{
		category: CategoryIntersection,
		matches:  func(ts TypeSet) bool { return ts.Has(TypeIntersection) },
		extract: func(c PlaceCandidate, query string) string {
			return firstNonEmpty(routeLabel(c), c.FormattedAddress, query)
		},
	},
	{
		category: CategoryResidential,
		matches:  func(ts TypeSet) bool { return ts.HasAny(TypeStreetAddress, TypePremise) },
		extract: func(c PlaceCandidate, query string) string {
			return firstNonEmpty(c.FormattedAddress, query)
		},
	},
}

// defaultClassification applies when no rule matches the candidate's types.
var defaultClassification = classification{
	category: CategoryGeneral,
	matches:  func(TypeSet) bool { return true },
	extract: func(c PlaceCandidate, query string) string {
		return firstNonEmpty(c.DisplayName, c.FormattedAddress, query)
	},
}

func classify(types TypeSet) classification {
	for _, rule := range classifications {
		if rule.matches(types) {
			return rule
		}
	}
	return defaultClassification
}

// routeLabel synthesizes an intersection name from its route components,
// e.g. "Main St & 1st Ave". Intersections have no canonical display name.
func routeLabel(c PlaceCandidate) string {
	routes := make([]string, 0, 2)
	for _, comp := range c.AddressComponents {
		if !comp.Types.Has(TypeRoute) {
			continue
		}
		if name := firstNonEmpty(comp.LongName, comp.ShortName); name != "" {
			routes = append(routes, name)
		}
	}
	return strings.Join(routes, " & ")
}

// ResolveAddress is the minimal single-provider entry point that coexists with
// the richer Resolver. It performs no place-type classification. An empty
// address or a nil geocoder (the unconfigured-credential case) yields
// ("", false) without attempting a call, as does any provider failure or an
// empty result set.
func ResolveAddress(ctx context.Context, g Geocoder, address string) (string, bool) {
	if address == "" || g == nil {
		return "", false
	}
	candidates, err := g.Geocode(ctx, address)
	if err != nil || len(candidates) == 0 {
		return "", false
	}
	return AddressLabel(candidates[0], address), true
}

// AddressLabel picks the display string for a geocode candidate: the
// formatted address, else the first component's long name, else the fallback.
func AddressLabel(c PlaceCandidate, fallback string) string {
	if c.FormattedAddress != "" {
		return c.FormattedAddress
	}
	if len(c.AddressComponents) > 0 && c.AddressComponents[0].LongName != "" {
		return c.AddressComponents[0].LongName
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
