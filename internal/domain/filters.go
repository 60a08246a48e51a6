package domain

import "strings"

// SearchFilters is the active combination of catalog constraints. A
// zero-value field means "no constraint"; match semantics for search
// (title) and author (substring) are owned by the service, genre is an
// exact match.
type SearchFilters struct {
	Search string
	Genre  string
	Author string
}

// Normalized returns a copy with each field trimmed. Fields that are
// empty or whitespace-only collapse to "" so they are never sent as
// empty query parameters.
func (f SearchFilters) Normalized() SearchFilters {
	return SearchFilters{
		Search: strings.TrimSpace(f.Search),
		Genre:  strings.TrimSpace(f.Genre),
		Author: strings.TrimSpace(f.Author),
	}
}

// IsZero reports whether no constraint is set.
func (f SearchFilters) IsZero() bool {
	return f.Search == "" && f.Genre == "" && f.Author == ""
}
