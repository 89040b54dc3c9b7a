package main

import (
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storefront/internal/models"
	"storefront/internal/view"
)

func newProductsCmd(a *app) *cobra.Command {
	var (
		filters   view.Filters
		minRating float64
		maxPrice  float64
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List one page of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("min-rating") {
				filters.MinRating = &minRating
			}
			if cmd.Flags().Changed("max-price") {
				filters.PriceMax = &maxPrice
			}

			catalog := view.NewCatalog(a.api, view.WithTimeout(a.timeout), view.WithFilters(filters))
			defer catalog.Close()

			if err := catalog.Refresh(cmd.Context()); err != nil {
				return err
			}

			favorites, err := a.shopper().Favorites()
			if err != nil {
				return err
			}
			printProducts(a.out, catalog.Products(), favorites)
			printf(a.out, "page %d of %d (%d products)\n", catalog.Filters().Page, catalog.TotalPages(), catalog.Total())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&filters.Page, "page", models.DefaultPage, "page number")
	flags.IntVar(&filters.Limit, "limit", models.DefaultLimit, "products per page")
	flags.StringVar(&filters.Category, "category", "", "only this category")
	flags.StringVar(&filters.Search, "search", "", "case-insensitive name search")
	flags.BoolVar(&filters.InStockOnly, "in-stock", false, "only products in stock")
	flags.Float64Var(&minRating, "min-rating", 0, "minimum rating")
	flags.Float64Var(&maxPrice, "max-price", 0, "maximum price")
	flags.StringVar(&filters.SortBy, "sort", "price", "sort by price, rating, discount, createdAt or name")
	flags.StringVar(&filters.SortOrder, "order", models.SortAsc, "asc or desc")
	return cmd
}

func newProductCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show a single product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := a.api.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProducts(a.out, []models.Product{*product}, nil)
			printf(a.out, "\n%s\n", product.Description)
			return nil
		},
	}
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := view.NewCatalog(a.api, view.WithTimeout(a.timeout)).Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, category := range categories {
				printf(a.out, "%s\n", category)
			}
			return nil
		},
	}
}

func printProducts(out io.Writer, products []models.Product, favorites []string) {
	favorite := make(map[string]bool, len(favorites))
	for _, id := range favorites {
		favorite[id] = true
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	printf(w, "ID\tNAME\tCATEGORY\tPRICE\tDISCOUNT\tRATING\tSTOCK\t\n")
	for _, p := range products {
		mark := ""
		if favorite[p.ID.Hex()] {
			mark = "*"
		}
		stock := "out"
		if p.Stock {
			stock = strconv.FormatInt(p.Count, 10)
		}
		printf(w, "%s\t%s\t%s\t%.2f\t%d%%\t%.1f\t%s\t%s\n",
			p.ID.Hex(), p.Name, p.Category, p.EffectivePrice(), p.Discount, p.Rating, stock, mark)
	}
	_ = w.Flush()
}
