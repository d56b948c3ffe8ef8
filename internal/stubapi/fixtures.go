package stubapi

import "github.com/servly-app/servly/internal/catalog"

func boolPtr(b bool) *bool { return &b }

// seedServices is the fixture catalog served by the stub. One inactive
// service is included so client-side filtering has something to hide.
func seedServices() []catalog.Service {
	return []catalog.Service{
		{
			ServiceID:   "svc-001",
			ProviderID:  "prov-001",
			ServiceName: "Plumbing Fix",
			Description: "Leak repair, tap replacement and pipe fitting",
			Cost:        500,
			AvgRating:   4.2,
			Location:    "Mumbai",
			Active:      boolPtr(true),
		},
		{
			ServiceID:   "svc-002",
			ProviderID:  "prov-002",
			ServiceName: "Electric Work",
			Description: "Wiring, switchboards and appliance installation",
			Cost:        1500,
			AvgRating:   3.8,
			Location:    "Delhi",
			Active:      boolPtr(true),
		},
		{
			ServiceID:   "svc-003",
			ProviderID:  "prov-001",
			ServiceName: "Plumbing Inspection",
			Description: "Full-house plumbing health check",
			Cost:        900,
			AvgRating:   4.7,
			Location:    "Mumbai",
			Active:      boolPtr(true),
		},
		{
			ServiceID:   "svc-004",
			ProviderID:  "prov-003",
			ServiceName: "Cleaning Deep",
			Description: "Deep home cleaning with eco products",
			Cost:        2500,
			AvgRating:   4.9,
			Location:    "Bangalore",
			Active:      boolPtr(true),
		},
		{
			ServiceID:   "svc-005",
			ProviderID:  "prov-004",
			ServiceName: "Painting Interior",
			Description: "Interior wall painting, two coats",
			Cost:        8000,
			AvgRating:   4.0,
			Location:    "Mumbai",
			Active:      boolPtr(false),
		},
	}
}

func seedReviews() []Review {
	return []Review{
		{
			ReviewID:    "rev-001",
			ServiceID:   "svc-001",
			ServiceName: "Plumbing Fix",
			Rating:      5,
			Comment:     "Quick and tidy, fixed the leak in one visit.",
			Author:      "Asha",
		},
		{
			ReviewID:    "rev-002",
			ServiceID:   "svc-003",
			ServiceName: "Plumbing Inspection",
			Rating:      4,
			Comment:     "Thorough report, slightly late arrival.",
			Author:      "Rahul",
		},
	}
}

func seedUser() map[string]any {
	return map[string]any{
		"userId":   "user-001",
		"name":     "Demo User",
		"email":    "demo@servly.dev",
		"phone":    "+91-9000000000",
		"location": "Mumbai",
	}
}
