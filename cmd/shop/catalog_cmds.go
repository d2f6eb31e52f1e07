package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Fashion-Store/Aradaa/internal/catalog"
	"github.com/Fashion-Store/Aradaa/internal/client"
)

func newProductsCmd(a *app) *cobra.Command {
	var p catalog.Params

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.api.ListProducts(cmd.Context(), p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printProducts(out, list.Products)
			fmt.Fprintf(out, "%d products\n", list.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Category, "category", "", "category, \"all\" or \"new-arrivals\"")
	cmd.Flags().StringVar(&p.Search, "search", "", "case-insensitive name search")
	cmd.Flags().StringVar(&p.SortBy, "sort", catalog.SortFeatured, "featured, price-low, price-high or newest")
	return cmd
}

func printProducts(w io.Writer, products []catalog.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSIZES\t")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, priceLabel(p), strings.Join(p.Sizes, ","), badges(p))
	}
	tw.Flush()
}

func priceLabel(p catalog.Product) string {
	if p.OnSale() {
		return catalog.FormatPrice(p.Price) + " (was " + catalog.FormatPrice(*p.OriginalPrice) + ")"
	}
	return catalog.FormatPrice(p.Price)
}

func badges(p catalog.Product) string {
	var b []string
	if p.IsNew {
		b = append(b, "new")
	}
	if p.OnSale() {
		b = append(b, "sale")
	}
	if !p.InStock {
		b = append(b, "out of stock")
	}
	return strings.Join(b, " ")
}

func newProductCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id|slug>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.GetProduct(cmd.Context(), args[0])
			if errors.Is(err, client.ErrNotFound) {
				return fmt.Errorf("product %q not found", args[0])
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  [%s]\n", p.Name, p.ID)
			fmt.Fprintf(out, "%s\n", priceLabel(p))
			fmt.Fprintf(out, "Category: %s\n", p.Category)
			fmt.Fprintf(out, "Sizes:    %s\n", strings.Join(p.Sizes, ", "))
			if b := badges(p); b != "" {
				fmt.Fprintf(out, "Tags:     %s\n", b)
			}
			fmt.Fprintf(out, "\n%s\n", p.Description)
			return nil
		},
	}
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.api.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) at %s\n", h.Message, h.Environment, h.Timestamp)
			return nil
		},
	}
}
