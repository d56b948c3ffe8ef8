package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func active() *bool {
	b := true
	return &b
}

func inactive() *bool {
	b := false
	return &b
}

func sampleServices() []Service {
	return []Service{
		{ServiceID: "1", ServiceName: "Plumbing Fix", Description: "Leak repair", Cost: 500, AvgRating: 4, Location: "Mumbai", Active: active()},
		{ServiceID: "2", ServiceName: "Electric Work", Description: "Wiring", Cost: 1500, AvgRating: 3, Location: "Delhi", Active: active()},
		{ServiceID: "3", ServiceName: "Plumbing Inspection", Description: "Pipe check", Cost: 900, AvgRating: 4.7, Location: "Mumbai", Active: active()},
		{ServiceID: "4", ServiceName: "Cleaning Deep", Description: "Deep clean", Cost: 2500, AvgRating: 4.9, Location: "Bangalore", Active: active()},
	}
}

func ids(services []Service) []string {
	out := make([]string, 0, len(services))
	for _, s := range services {
		out = append(out, s.ServiceID)
	}
	return out
}

func TestFilter_EmptyCriteriaUsesDefaultPriceBounds(t *testing.T) {
	// The concrete scenario from the product: default bounds [0, 10000]
	// keep everything, an explicit max of 1000 keeps only Plumbing Fix.
	services := []Service{
		{ServiceName: "Plumbing Fix", Cost: 500, AvgRating: 4, Location: "Mumbai", Active: active()},
		{ServiceName: "Electric Work", Cost: 1500, AvgRating: 3, Location: "Delhi", Active: active()},
	}

	all := Filter(services, Criteria{})
	assert.Len(t, all, 2)

	capped := Filter(services, Criteria{PriceMax: 1000})
	require.Len(t, capped, 1)
	assert.Equal(t, "Plumbing Fix", capped[0].ServiceName)
}

func TestFilter_AndSemanticsAcrossDimensions(t *testing.T) {
	services := sampleServices()

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "query narrows",
			criteria: Criteria{Query: "plumbing"},
			want:     []string{"1", "3"},
		},
		{
			name:     "query matches description too",
			criteria: Criteria{Query: "wiring"},
			want:     []string{"2"},
		},
		{
			name:     "location narrows",
			criteria: Criteria{Location: "Mumbai"},
			want:     []string{"1", "3"},
		},
		{
			name:     "location any lifts the restriction",
			criteria: Criteria{Location: "any"},
			want:     []string{"1", "2", "3", "4"},
		},
		{
			name:     "category narrows",
			criteria: Criteria{Categories: []string{"Cleaning"}},
			want:     []string{"4"},
		},
		{
			name:     "price narrows",
			criteria: Criteria{PriceMin: 800, PriceMax: 2000},
			want:     []string{"2", "3"},
		},
		{
			name:     "all dimensions AND together",
			criteria: Criteria{Query: "plumbing", Location: "Mumbai", PriceMax: 600},
			want:     []string{"1"},
		},
		{
			name:     "one failing dimension excludes",
			criteria: Criteria{Query: "plumbing", Location: "Delhi"},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(services, tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_RatingsAreOrSemantics(t *testing.T) {
	services := []Service{
		{ServiceID: "a", ServiceName: "A", Cost: 100, AvgRating: 4, Active: active()},
		{ServiceID: "b", ServiceName: "B", Cost: 100, AvgRating: 2, Active: active()},
	}

	// A rating of 4 meets the 3 threshold even though it fails the 5 one.
	got := Filter(services, Criteria{Ratings: []float64{3, 5}})
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestFilter_EmptySetsMatchEverything(t *testing.T) {
	services := sampleServices()

	got := Filter(services, Criteria{Categories: []string{}, Ratings: []float64{}})
	assert.Len(t, got, len(services))
}

func TestFilter_InactiveExcluded(t *testing.T) {
	services := []Service{
		{ServiceID: "on", ServiceName: "A", Cost: 100, Active: active()},
		{ServiceID: "off", ServiceName: "B", Cost: 100, Active: inactive()},
		{ServiceID: "unset", ServiceName: "C", Cost: 100},
	}

	got := Filter(services, Criteria{})
	// A missing active flag counts as active; only explicit false hides.
	assert.Equal(t, []string{"on", "unset"}, ids(got))
}

func TestFilter_MissingLocationNeverMatches(t *testing.T) {
	services := []Service{
		{ServiceID: "a", ServiceName: "A", Cost: 100, Active: active()}, // no location
	}

	assert.Empty(t, Filter(services, Criteria{Location: "Mumbai"}))
	assert.Len(t, Filter(services, Criteria{}), 1)
}

func TestFilter_SortPriceReverses(t *testing.T) {
	services := sampleServices()

	low := Filter(services, Criteria{SortBy: SortPriceLow})
	high := Filter(services, Criteria{SortBy: SortPriceHigh})

	require.Len(t, low, 4)
	assert.Equal(t, []string{"1", "3", "2", "4"}, ids(low))

	// With all prices distinct the two orders are exact mirrors.
	for i := range low {
		assert.Equal(t, low[i].ServiceID, high[len(high)-1-i].ServiceID)
	}
}

func TestFilter_SortByName(t *testing.T) {
	services := sampleServices()

	asc := Filter(services, Criteria{SortBy: SortNameAsc})
	assert.Equal(t, "Cleaning Deep", asc[0].ServiceName)

	desc := Filter(services, Criteria{SortBy: SortNameDesc})
	assert.Equal(t, "Plumbing Inspection", desc[0].ServiceName)
}

func TestFilter_SortByRating(t *testing.T) {
	services := sampleServices()

	high := Filter(services, Criteria{SortBy: SortRatingHigh})
	assert.Equal(t, "4", high[0].ServiceID)

	low := Filter(services, Criteria{SortBy: SortRatingLow})
	assert.Equal(t, "2", low[0].ServiceID)
}

func TestFilter_RelevanceKeepsInputOrder(t *testing.T) {
	services := sampleServices()

	got := Filter(services, Criteria{SortBy: SortRelevance})
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	services := sampleServices()

	Filter(services, Criteria{SortBy: SortPriceHigh})
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(services))
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPriceLow, ParseSortKey("price-low"))
	assert.Equal(t, SortRelevance, ParseSortKey("relevance"))
	assert.Equal(t, SortRelevance, ParseSortKey("bogus"))
}
