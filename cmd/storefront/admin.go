package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"storefront/internal/view"
)

// bindDraft registers the product form flags onto d.
func bindDraft(flags *pflag.FlagSet, d *view.Draft, discountPrice *float64) {
	flags.StringVar(&d.Name, "name", "", "product name")
	flags.StringVar(&d.Description, "description", "", "product description")
	flags.Float64Var(&d.Price, "price", 0, "list price")
	flags.Float64Var(discountPrice, "discount-price", 0, "discounted price, 0 for none")
	flags.StringVar(&d.Image, "image", "", "image URL")
	flags.Float64Var(&d.Rating, "rating", 0, "rating between 0 and 5")
	flags.StringVar(&d.Category, "category", "", "category")
	flags.Int64Var(&d.Count, "count", 0, "units in stock")
}

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage catalog products",
	}

	var (
		createDraft view.Draft
		createDP    float64
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if createDP > 0 {
				createDraft.DiscountPrice = &createDP
			}
			admin := view.NewAdminCatalog(a.api, view.WithTimeout(a.timeout))
			defer admin.Close()

			admin.SetDraft(createDraft)
			product, err := admin.Submit(cmd.Context())
			if err != nil {
				return err
			}
			printf(a.out, "created %s (discount %d%%, %d products in catalog)\n", product.ID.Hex(), product.Discount, admin.Total())
			return nil
		},
	}
	bindDraft(create.Flags(), &createDraft, &createDP)

	var (
		changes  view.Draft
		updateDP float64
	)
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := a.api.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			admin := view.NewAdminCatalog(a.api, view.WithTimeout(a.timeout))
			defer admin.Close()
			admin.Edit(*current)

			draft := admin.Draft()
			flags := cmd.Flags()
			if flags.Changed("name") {
				draft.Name = changes.Name
			}
			if flags.Changed("description") {
				draft.Description = changes.Description
			}
			if flags.Changed("price") {
				draft.Price = changes.Price
			}
			if flags.Changed("discount-price") {
				draft.DiscountPrice = nil
				if updateDP > 0 {
					draft.DiscountPrice = &updateDP
				}
			}
			if flags.Changed("image") {
				draft.Image = changes.Image
			}
			if flags.Changed("rating") {
				draft.Rating = changes.Rating
			}
			if flags.Changed("category") {
				draft.Category = changes.Category
			}
			if flags.Changed("count") {
				draft.Count = changes.Count
			}
			admin.SetDraft(draft)

			product, err := admin.Submit(cmd.Context())
			if err != nil {
				return err
			}
			printf(a.out, "updated %s (discount %d%%, stock %t)\n", args[0], product.Discount, product.Stock)
			return nil
		},
	}
	bindDraft(update.Flags(), &changes, &updateDP)

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin := view.NewAdminCatalog(a.api, view.WithTimeout(a.timeout))
			defer admin.Close()

			if err := admin.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printf(a.out, "deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(create, update, remove)
	return cmd
}
