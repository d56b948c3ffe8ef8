package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/servly-app/servly/internal/api"
	"github.com/servly-app/servly/internal/cart"
	"github.com/servly-app/servly/internal/catalog"
)

// CartCmd creates the cart command with subcommands.
func CartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the booking cart",
		Long:  "The cart is persisted locally and survives across invocations.",
	}

	cmd.AddCommand(CartAddCmd())
	cmd.AddCommand(CartRemoveCmd())
	cmd.AddCommand(CartListCmd())
	cmd.AddCommand(CartClearCmd())

	return cmd
}

// CartAddCmd creates the cart add command.
func CartAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <service_id>",
		Short: "Add a service to the cart",
		Long:  "Fetches the service and stores a price snapshot in the cart.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCartAdd(cmd, args[0])
		},
	}
}

// CartRemoveCmd creates the cart remove command.
func CartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <service_id>",
		Short: "Remove a service from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCartRemove(cmd, args[0])
		},
	}
}

// CartListCmd creates the cart list command.
func CartListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "Show the cart",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runCartList(cmd, outputJSON)
		},
	}
}

// CartClearCmd creates the cart clear command.
func CartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCartClear(cmd)
		},
	}
}

func runCartAdd(cmd *cobra.Command, serviceID string) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	resp, err := env.API.Get(ctx, "/services/"+serviceID, api.RequestOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch service: %w", err)
	}

	var svc catalog.Service
	if err := json.Unmarshal(resp.Data, &svc); err != nil {
		return fmt.Errorf("failed to parse service: %w", err)
	}
	if !svc.IsActive() {
		return fmt.Errorf("service %q is not currently available", svc.ServiceName)
	}

	item := cart.LineItem{
		ServiceID:   svc.ServiceID,
		ProviderID:  svc.ProviderID,
		ServiceName: svc.ServiceName,
		Cost:        float64(svc.Cost),
		Description: svc.Description,
		ImageURL:    svc.ImageURL,
		Location:    svc.Location,
	}

	// Adding a duplicate is a silent no-op in the store, so check first to
	// give the user a useful message.
	if env.Cart.Contains(item.Key()) {
		fmt.Printf("%q is already in the cart\n", item.ServiceName)
		return nil
	}

	env.Cart.Add(item)
	fmt.Printf("Added %q (₹%.0f) to the cart\n", item.ServiceName, item.Cost)
	return nil
}

func runCartRemove(cmd *cobra.Command, serviceID string) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	// The cart de-duplicates on (provider, service name), not on service
	// ID, so resolve the ID to its key against the hydrated cart instead
	// of removing by ID directly.
	var key cart.Key
	found := false
	for _, item := range env.Cart.Items() {
		if item.ServiceID == serviceID {
			key = item.Key()
			found = true
			break
		}
	}
	if !found {
		fmt.Println("Service is not in the cart")
		return nil
	}

	env.Cart.Remove(cart.ByKey(key))
	fmt.Printf("Removed %q from the cart\n", key.ServiceName)
	return nil
}

func runCartList(cmd *cobra.Command, outputJSON bool) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	items := env.Cart.Items()

	if outputJSON {
		output, _ := json.MarshalIndent(items, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(items) == 0 {
		fmt.Println("The cart is empty.")
		return nil
	}

	for i, item := range items {
		fmt.Printf("%d. %s — ₹%.0f\n", i+1, item.ServiceName, item.Cost)
		if item.Location != "" {
			fmt.Printf("   Location: %s\n", item.Location)
		}
		fmt.Printf("   ID: %s\n", item.ServiceID)
		if i < len(items)-1 {
			fmt.Println(strings.Repeat("-", 40))
		}
	}
	fmt.Printf("\nTotal: ₹%.0f (%d items)\n", env.Cart.Total(), len(items))
	return nil
}

func runCartClear(cmd *cobra.Command) error {
	ctx := cmd.Context()
	env, err := newEnv(ctx, cmd)
	if err != nil {
		return err
	}

	env.Cart.Clear()
	fmt.Println("Cart cleared")
	return nil
}
