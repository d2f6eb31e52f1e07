package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Fashion-Store/Aradaa/internal/cart"
	"github.com/Fashion-Store/Aradaa/internal/catalog"
	"github.com/Fashion-Store/Aradaa/internal/client"
)

func newCartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printCart(cmd.OutOrStdout(), a.cart)
		},
	}
}

func printCart(w io.Writer, c *cart.Store) {
	if c.Len() == 0 {
		fmt.Fprintln(w, "Your cart is empty")
		return
	}
	items := c.Items()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			it.ProductID, it.Name, it.Size, it.Quantity,
			catalog.FormatPrice(it.Price), catalog.FormatPrice(it.Subtotal()))
	}
	tw.Flush()
	fmt.Fprintf(w, "%d items, total %s\n", c.TotalItems(), catalog.FormatPrice(c.TotalPrice()))
}

func newAddCmd(a *app) *cobra.Command {
	var (
		size string
		qty  int
	)

	cmd := &cobra.Command{
		Use:   "add <id|slug>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.api.GetProduct(cmd.Context(), args[0])
			if errors.Is(err, client.ErrNotFound) {
				return fmt.Errorf("product %q not found", args[0])
			}
			if err != nil {
				return err
			}
			if !p.InStock {
				return fmt.Errorf("%s is out of stock", p.Name)
			}

			size, err = pickSize(p, size)
			if err != nil {
				return err
			}

			a.cart.Add(cart.Item{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Image:     p.Image(),
				Size:      size,
				Quantity:  qty,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to cart, %d items\n", p.Name, size, a.cart.TotalItems())
			return nil
		},
	}

	cmd.Flags().StringVar(&size, "size", "", "size to add")
	cmd.Flags().IntVar(&qty, "qty", 1, "quantity to add")
	return cmd
}

// pickSize checks size against the product's sizes and returns it in the
// catalog's spelling. A product with a single size needs no flag.
func pickSize(p catalog.Product, size string) (string, error) {
	if size == "" {
		if len(p.Sizes) == 1 {
			return p.Sizes[0], nil
		}
		return "", fmt.Errorf("choose a size with --size: %s", strings.Join(p.Sizes, ", "))
	}
	for _, s := range p.Sizes {
		if strings.EqualFold(s, size) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%s is not available in size %s", p.Name, size)
}

func newRemoveCmd(a *app) *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a.cart.Remove(args[0], size)
			printCart(cmd.OutOrStdout(), a.cart)
		},
	}
	cmd.Flags().StringVar(&size, "size", "", "size of the line")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var size string

	cmd := &cobra.Command{
		Use:   "update <product-id> <quantity>",
		Short: "Set the quantity of a cart line; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a number: %w", err)
			}
			a.cart.UpdateQuantity(args[0], size, n)
			printCart(cmd.OutOrStdout(), a.cart)
			return nil
		},
	}
	cmd.Flags().StringVar(&size, "size", "", "size of the line")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			a.cart.Clear()
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared")
		},
	}
}
