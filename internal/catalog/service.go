// Package catalog models the marketplace service list and the client-side
// filter/sort engine applied to it before display.
package catalog

import (
	"strconv"
	"strings"
)

// Price tolerates malformed numeric fields in API payloads: a JSON number,
// a numeric string, null, or garbage all decode, with anything non-numeric
// coercing to 0.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*p = 0
		return nil
	}
	*p = Price(f)
	return nil
}

// Service is a read-only record sourced from the API. It is re-fetched
// wholesale on each search and never mutated by the client.
type Service struct {
	ServiceID   string  `json:"serviceId"`
	ProviderID  string  `json:"providerId"`
	ServiceName string  `json:"serviceName"`
	Description string  `json:"description,omitempty"`
	Cost        Price   `json:"cost"`
	AvgRating   float64 `json:"avgRating"`
	Location    string  `json:"location,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// IsActive treats a missing active flag as active; only an explicit false
// hides the service.
func (s Service) IsActive() bool {
	return s.Active == nil || *s.Active
}

// Category derives the service's category as the first whitespace-delimited
// token of its name ("Plumbing Fix" -> "Plumbing").
func (s Service) Category() string {
	fields := strings.Fields(s.ServiceName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
