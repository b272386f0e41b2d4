package domain

// TypeSet holds the semantic type tags a provider attaches to a place or to
// an address component (e.g. "restaurant", "intersection", "route").
type TypeSet map[string]struct{}

// NewTypeSet builds a TypeSet from a slice of tags.
func NewTypeSet(types ...string) TypeSet {
	s := make(TypeSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the given tag.
func (s TypeSet) Has(t string) bool {
	_, ok := s[t]
	return ok
}

// HasAny reports whether the set contains at least one of the given tags.
func (s TypeSet) HasAny(types ...string) bool {
	for _, t := range types {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// AddressComponent is one structured piece of an address (street, locality,
// route, ...) as returned by the geocode endpoint.
type AddressComponent struct {
	LongName  string
	ShortName string
	Types     TypeSet
}

// PlaceCandidate is a single ranked match parsed from a provider response.
// Candidates are never persisted; they live for one resolution call.
type PlaceCandidate struct {
	DisplayName       string
	FormattedAddress  string
	Types             TypeSet
	AddressComponents []AddressComponent
}
