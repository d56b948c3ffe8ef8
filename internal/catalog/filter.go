package catalog

import (
	"sort"
	"strings"
)

// SortKey selects the comparator applied after filtering.
type SortKey string

const (
	// SortRelevance keeps the input order. Zero value.
	SortRelevance  SortKey = ""
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortRatingHigh SortKey = "rating-high"
	SortRatingLow  SortKey = "rating-low"
	SortNameAsc    SortKey = "name-asc"
	SortNameDesc   SortKey = "name-desc"
)

// Default price bounds applied when the criteria leave them unset.
const (
	DefaultPriceMin = 0
	DefaultPriceMax = 10000
)

// Criteria narrows the service list. Dimensions combine with AND; the
// ratings set combines with OR. Empty sets and empty strings mean "no
// restriction" rather than "match nothing".
type Criteria struct {
	// Query matches case-insensitively against name and description.
	Query string
	// Location must equal the service location exactly; "" or "any" lifts
	// the restriction. A service with no location never matches a set one.
	Location string
	// Categories matches the service's derived category.
	Categories []string
	// PriceMin and PriceMax are inclusive bounds. A zero PriceMax means
	// unset and falls back to DefaultPriceMax.
	PriceMin float64
	PriceMax float64
	// Ratings are minimum-rating thresholds; a service matches if it meets
	// any one of them.
	Ratings []float64
	SortBy  SortKey
}

func (c Criteria) priceBounds() (float64, float64) {
	min, max := c.PriceMin, c.PriceMax
	if min <= 0 {
		min = DefaultPriceMin
	}
	if max <= 0 {
		max = DefaultPriceMax
	}
	return min, max
}

// Filter returns the services matching the criteria, sorted by c.SortBy.
// The input slice is not modified.
func Filter(services []Service, c Criteria) []Service {
	out := make([]Service, 0, len(services))
	for _, s := range services {
		if matches(s, c) {
			out = append(out, s)
		}
	}
	sortServices(out, c.SortBy)
	return out
}

func matches(s Service, c Criteria) bool {
	if !s.IsActive() {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(c.Query)); q != "" {
		name := strings.ToLower(s.ServiceName)
		desc := strings.ToLower(s.Description)
		if !strings.Contains(name, q) && !strings.Contains(desc, q) {
			return false
		}
	}

	if len(c.Categories) > 0 && !containsFold(c.Categories, s.Category()) {
		return false
	}

	min, max := c.priceBounds()
	if cost := float64(s.Cost); cost < min || cost > max {
		return false
	}

	if len(c.Ratings) > 0 {
		met := false
		for _, threshold := range c.Ratings {
			if s.AvgRating >= threshold {
				met = true
				break
			}
		}
		if !met {
			return false
		}
	}

	if loc := c.Location; loc != "" && !strings.EqualFold(loc, "any") {
		if s.Location != loc {
			return false
		}
	}

	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

func sortServices(services []Service, key SortKey) {
	var less func(a, b Service) bool
	switch key {
	case SortPriceLow:
		less = func(a, b Service) bool { return a.Cost < b.Cost }
	case SortPriceHigh:
		less = func(a, b Service) bool { return a.Cost > b.Cost }
	case SortRatingHigh:
		less = func(a, b Service) bool { return a.AvgRating > b.AvgRating }
	case SortRatingLow:
		less = func(a, b Service) bool { return a.AvgRating < b.AvgRating }
	case SortNameAsc:
		less = func(a, b Service) bool { return a.ServiceName < b.ServiceName }
	case SortNameDesc:
		less = func(a, b Service) bool { return a.ServiceName > b.ServiceName }
	default:
		return
	}
	sort.SliceStable(services, func(i, j int) bool {
		return less(services[i], services[j])
	})
}

// SortKeys lists the accepted --sort values for CLI help output.
func SortKeys() []string {
	return []string{
		string(SortPriceLow), string(SortPriceHigh),
		string(SortRatingHigh), string(SortRatingLow),
		string(SortNameAsc), string(SortNameDesc),
		"relevance",
	}
}

// ParseSortKey normalizes a user-supplied sort value. Unknown values and
// "relevance" fall back to input order.
func ParseSortKey(v string) SortKey {
	switch SortKey(v) {
	case SortPriceLow, SortPriceHigh, SortRatingHigh, SortRatingLow, SortNameAsc, SortNameDesc:
		return SortKey(v)
	default:
		return SortRelevance
	}
}
