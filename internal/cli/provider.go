package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/servly-app/servly/internal/api"
)

// providerBooking is a booking as the dashboard endpoints return it.
type providerBooking struct {
	BookingID   string  `json:"bookingId"`
	ServiceID   string  `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Cost        float64 `json:"cost"`
	Location    string  `json:"location,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
}

// providerReview is a review as the dashboard endpoints return it.
type providerReview struct {
	ReviewID    string  `json:"reviewId"`
	ServiceID   string  `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	Rating      float64 `json:"rating"`
	Comment     string  `json:"comment"`
	Author      string  `json:"author"`
}

// ProviderCmd creates the provider dashboard command tree.
func ProviderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Provider dashboard commands",
		Long:  "Inspect bookings, reviews and analytics for the authenticated provider.",
	}

	cmd.AddCommand(ProviderBookingsCmd())
	cmd.AddCommand(ProviderAcceptCmd())
	cmd.AddCommand(ProviderRejectCmd())
	cmd.AddCommand(ProviderReviewsCmd())
	cmd.AddCommand(ProviderAnalyticsCmd())

	return cmd
}

// ProviderBookingsCmd creates the provider bookings command.
func ProviderBookingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List bookings for this provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runProviderBookings(cmd, outputJSON)
		},
	}
}

// ProviderAcceptCmd creates the provider accept command.
func ProviderAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <booking_id>",
		Short: "Accept a pending booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProviderUpdate(cmd, args[0], "accepted")
		},
	}
}

// ProviderRejectCmd creates the provider reject command.
func ProviderRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <booking_id>",
		Short: "Reject a pending booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProviderUpdate(cmd, args[0], "rejected")
		},
	}
}

// ProviderReviewsCmd creates the provider reviews command.
func ProviderReviewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reviews",
		Short: "List reviews for this provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runProviderReviews(cmd, outputJSON)
		},
	}
}

// ProviderAnalyticsCmd creates the provider analytics command.
func ProviderAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show booking and revenue analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runProviderAnalytics(cmd, outputJSON)
		},
	}
}

func runProviderBookings(cmd *cobra.Command, outputJSON bool) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	resp, err := env.API.Get(ctx, "/provider/bookings", api.RequestOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch bookings: %w", err)
	}

	var bookings []providerBooking
	if resp.Data != nil {
		if err := json.Unmarshal(resp.Data, &bookings); err != nil {
			return fmt.Errorf("failed to parse bookings: %w", err)
		}
	}

	if outputJSON {
		output, _ := json.MarshalIndent(bookings, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(bookings) == 0 {
		fmt.Println("No bookings yet.")
		return nil
	}

	for i, b := range bookings {
		fmt.Printf("%d. %s — ₹%.0f [%s]\n", i+1, b.ServiceName, b.Cost, b.Status)
		fmt.Printf("   Booked: %s\n", b.CreatedAt)
		fmt.Printf("   ID: %s\n", b.BookingID)
		if i < len(bookings)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}
	return nil
}

func runProviderUpdate(cmd *cobra.Command, bookingID, status string) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	_, err = env.API.Patch(ctx, "/provider/bookings/"+bookingID, map[string]string{
		"status": status,
	}, api.RequestOptions{})
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	fmt.Printf("Booking %s %s\n", bookingID, status)
	return nil
}

func runProviderReviews(cmd *cobra.Command, outputJSON bool) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	resp, err := env.API.Get(ctx, "/provider/reviews", api.RequestOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch reviews: %w", err)
	}

	var reviews []providerReview
	if resp.Data != nil {
		if err := json.Unmarshal(resp.Data, &reviews); err != nil {
			return fmt.Errorf("failed to parse reviews: %w", err)
		}
	}

	if outputJSON {
		output, _ := json.MarshalIndent(reviews, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(reviews) == 0 {
		fmt.Println("No reviews yet.")
		return nil
	}

	for i, r := range reviews {
		fmt.Printf("%d. %s — %.0f/5 by %s\n", i+1, r.ServiceName, r.Rating, r.Author)
		if r.Comment != "" {
			fmt.Printf("   %s\n", r.Comment)
		}
		if i < len(reviews)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}
	return nil
}

func runProviderAnalytics(cmd *cobra.Command, outputJSON bool) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	resp, err := env.API.Get(ctx, "/provider/analytics", api.RequestOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch analytics: %w", err)
	}

	var stats struct {
		TotalBookings     int     `json:"totalBookings"`
		CompletedBookings int     `json:"completedBookings"`
		PendingBookings   int     `json:"pendingBookings"`
		TotalRevenue      float64 `json:"totalRevenue"`
		AvgRating         float64 `json:"avgRating"`
	}
	if resp.Data != nil {
		if err := json.Unmarshal(resp.Data, &stats); err != nil {
			return fmt.Errorf("failed to parse analytics: %w", err)
		}
	}

	if outputJSON {
		output, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Bookings: %d total, %d completed, %d pending\n",
		stats.TotalBookings, stats.CompletedBookings, stats.PendingBookings)
	fmt.Printf("Revenue: ₹%.0f\n", stats.TotalRevenue)
	fmt.Printf("Average rating: %.1f\n", stats.AvgRating)
	return nil
}
