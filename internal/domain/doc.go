// Package domain implements destination-name resolution for a
// transit-scheduling client.
//
// # Resolution
//
// A free-text destination query is resolved into a display name through a
// strict fallback chain:
//
//  1. Place search. The top result is classified by its semantic types,
//     evaluated in precedence order (first match wins):
//     business → display name, intersection → synthesized "Route A & Route B"
//     label, residential → formatted address, anything else → display name or
//     formatted address.
//  2. Geocode. Used only when place search fails or finds nothing. Pure
//     geocoders have no notion of "establishment", so only the intersection
//     derivation applies; everything else yields the formatted address.
//  3. The original query, verbatim. This terminal fallback guarantees a
//     non-empty query always resolves to a non-empty name.
//
// Both endpoints count as successful only when the provider status is
// literally "OK" and the result set is non-empty. Provider failures are never
// surfaced to the resolver's caller; each one degrades to the next stage.
// [Translate] is the single place errors become display text, for callers
// that do choose to surface them.
//
// # Time handling
//
// [Normalize] folds the provider's three time representations (epoch-seconds
// objects, absolute times, RFC 3339 strings) into one absolute time value,
// with the zero time as the invalid sentinel. [NextOccurrence] computes the
// next wall-clock hh:mm in a target zone for departure scheduling; a
// candidate at or before the current minute belongs to tomorrow.
package domain
