package cli

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/servly-app/servly/internal/api"
	"github.com/servly-app/servly/internal/cart"
)

// BookCmd creates the book command, which turns every cart line item into
// a booking.
func BookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "book",
		Short: "Book every service in the cart",
		Long:  "Creates one booking per cart line item. Booked items leave the cart as they succeed, so a failure partway through keeps the rest for a retry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runBook(cmd, outputJSON)
		},
	}
}

type bookingResponse struct {
	BookingID   string  `json:"bookingId"`
	ServiceName string  `json:"serviceName"`
	Cost        float64 `json:"cost"`
	Status      string  `json:"status"`
}

func runBook(cmd *cobra.Command, outputJSON bool) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	items := env.Cart.Items()
	if len(items) == 0 {
		fmt.Println("The cart is empty, nothing to book.")
		return nil
	}

	var booked []bookingResponse
	for _, item := range items {
		resp, err := env.API.Post(ctx, "/bookings", map[string]any{
			"serviceId":   item.ServiceID,
			"providerId":  item.ProviderID,
			"serviceName": item.ServiceName,
			"cost":        item.Cost,
			"location":    item.Location,
		}, api.RequestOptions{IdempotencyKey: uuid.NewString()})
		if err != nil {
			return fmt.Errorf("failed to book %q (%d of %d booked): %w",
				item.ServiceName, len(booked), len(items), err)
		}

		var booking bookingResponse
		if resp.Data != nil {
			if err := json.Unmarshal(resp.Data, &booking); err != nil {
				return fmt.Errorf("failed to parse booking for %q: %w", item.ServiceName, err)
			}
		}
		booked = append(booked, booking)
		env.Cart.Remove(cart.ByKey(item.Key()))
	}

	if outputJSON {
		output, _ := json.MarshalIndent(booked, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Booked %d services:\n", len(booked))
	for _, b := range booked {
		fmt.Printf("  %s — ₹%.0f [%s] (booking %s)\n", b.ServiceName, b.Cost, b.Status, b.BookingID)
	}
	return nil
}
