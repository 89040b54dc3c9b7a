package main

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storefront/internal/view"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local cart",
	}

	var quantity int
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := a.api.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			items, err := a.shopper().AddToCart(*product, quantity)
			if err != nil {
				return err
			}
			printf(a.out, "added %s, %d line(s) in cart\n", product.Name, len(items))
			return nil
		},
	}
	add.Flags().IntVarP(&quantity, "quantity", "q", 1, "units to add")

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := a.shopper().CheckoutSummary()
			if err != nil {
				return err
			}
			printCart(a, summary)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.shopper().RemoveFromCart(args[0])
			if err != nil {
				return err
			}
			printf(a.out, "%d line(s) in cart\n", len(items))
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.shopper().ClearCart()
		},
	}

	var (
		place bool
		name  string
		email string
	)
	checkout := &cobra.Command{
		Use:   "checkout",
		Short: "Show the order total, optionally placing the order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shopper := a.shopper()
			summary, err := shopper.CheckoutSummary()
			if err != nil {
				return err
			}
			printCart(a, summary)
			if !place {
				printf(a.out, "no payment taken\n")
				return nil
			}

			req, err := shopper.OrderRequest(name, email)
			if err != nil {
				return err
			}
			order, err := a.api.PlaceOrder(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := shopper.ClearCart(); err != nil {
				return err
			}
			printf(a.out, "order %s placed, total %.2f (%s)\n", order.ID.Hex(), order.TotalAmount, order.Status)
			return nil
		},
	}
	checkout.Flags().BoolVar(&place, "place", false, "submit the cart as an order")
	checkout.Flags().StringVar(&name, "name", "", "customer name")
	checkout.Flags().StringVar(&email, "email", "", "customer email")

	cmd.AddCommand(add, list, remove, clearCmd, checkout)
	return cmd
}

func printCart(a *app, summary view.CheckoutSummary) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	printf(w, "ID\tNAME\tPRICE\tQTY\n")
	for _, item := range summary.Items {
		printf(w, "%s\t%s\t%.2f\t%d\n", item.ProductID, item.Name, item.Price, item.Quantity)
	}
	_ = w.Flush()
	printf(a.out, "%d item(s), total %.2f\n", summary.ItemCount, summary.Total)
}

func newFavoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage local favorites",
	}

	toggle := &cobra.Command{
		Use:   "toggle <product-id>",
		Short: "Add or remove a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			added, err := a.shopper().ToggleFavorite(args[0])
			if err != nil {
				return err
			}
			if added {
				printf(a.out, "added %s to favorites\n", args[0])
			} else {
				printf(a.out, "removed %s from favorites\n", args[0])
			}
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorite product ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := a.shopper().Favorites()
			if err != nil {
				return err
			}
			for _, id := range ids {
				printf(a.out, "%s\n", id)
			}
			return nil
		},
	}

	cmd.AddCommand(toggle, list)
	return cmd
}
