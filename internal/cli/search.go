package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/servly-app/servly/internal/api"
	"github.com/servly-app/servly/internal/catalog"
)

// SearchCmd creates the search command. The service list is fetched
// wholesale and narrowed client-side, so every filter flag works the same
// with any backend.
func SearchCmd() *cobra.Command {
	var (
		location   string
		categories []string
		minPrice   float64
		maxPrice   float64
		ratings    []float64
		sortBy     string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search services",
		Long:  "Fetches the service list and filters it by query, category, price, rating and location.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			outputJSON, _ := cmd.Flags().GetBool("output")
			criteria := catalog.Criteria{
				Query:      query,
				Location:   location,
				Categories: categories,
				PriceMin:   minPrice,
				PriceMax:   maxPrice,
				Ratings:    ratings,
				SortBy:     catalog.ParseSortKey(sortBy),
			}
			return runSearch(cmd, criteria, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", "", "Filter by location (exact match, \"any\" lifts it)")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Filter by category (repeatable)")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "Minimum price (inclusive)")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Maximum price (inclusive, default 10000)")
	cmd.Flags().Float64SliceVarP(&ratings, "rating", "r", nil, "Minimum rating threshold, any may match (repeatable)")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "relevance", "Sort order: "+strings.Join(catalog.SortKeys(), "|"))

	return cmd
}

func runSearch(cmd *cobra.Command, criteria catalog.Criteria, outputJSON bool) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	services, err := fetchServices(cmd, env)
	if err != nil {
		return err
	}

	results := catalog.Filter(services, criteria)

	if outputJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No services found.")
		return nil
	}

	fmt.Printf("Found %d services:\n\n", len(results))
	for i, svc := range results {
		fmt.Printf("%d. %s — ₹%.0f\n", i+1, svc.ServiceName, float64(svc.Cost))
		if svc.Description != "" {
			fmt.Printf("   %s\n", svc.Description)
		}
		fmt.Printf("   Rating: %.1f", svc.AvgRating)
		if svc.Location != "" {
			fmt.Printf(", Location: %s", svc.Location)
		}
		fmt.Println()
		fmt.Printf("   ID: %s\n", svc.ServiceID)
		if i < len(results)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}

	return nil
}

func fetchServices(cmd *cobra.Command, env *Env) ([]catalog.Service, error) {
	resp, err := env.API.Get(cmd.Context(), "/services", api.RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}

	var services []catalog.Service
	if resp.Data != nil {
		if err := json.Unmarshal(resp.Data, &services); err != nil {
			return nil, fmt.Errorf("failed to parse service list: %w", err)
		}
	}
	return services, nil
}
