package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Fashion-Store/Aradaa/internal/catalog"
	"github.com/Fashion-Store/Aradaa/internal/client"
	"github.com/Fashion-Store/Aradaa/internal/orders"
	"github.com/Fashion-Store/Aradaa/internal/validation"
)

var errEmptyCart = errors.New("your cart is empty")

func newCheckoutCmd(a *app) *cobra.Command {
	var (
		form validation.CheckoutForm
		key  string
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place a cash-on-delivery order for the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items := a.cart.Items()
			if len(items) == 0 {
				return errEmptyCart
			}

			if u := a.session.User(); u != nil {
				if form.Name == "" {
					form.Name = u.Name
				}
				if form.Email == "" {
					form.Email = u.Email
				}
			}

			v := validation.New()
			if err := v.Struct(form); err != nil {
				return invalidDetails(err)
			}

			order := orders.FromCart(items,
				orders.Customer{Name: form.Name, Email: form.Email, Phone: form.Phone},
				orders.Address{Street: form.Street, City: form.City, PostalCode: form.PostalCode, Country: form.Country},
			)
			if err := v.Struct(order); err != nil {
				return invalidDetails(err)
			}

			if key == "" {
				key = uuid.NewString()
			}
			conf, err := a.api.PlaceOrder(cmd.Context(), order, key)
			if errors.Is(err, client.ErrOrderNotPlaced) {
				// the cart stays so the same key can be retried
				return fmt.Errorf("place order: %w (retry with --idempotency-key %s)", err, key)
			}
			if err != nil {
				return fmt.Errorf("place order: %w", err)
			}

			a.cart.Clear()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", conf.Message, conf.OrderID)
			fmt.Fprintf(out, "Total %s, pay on delivery\n", catalog.FormatPrice(order.Total))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "recipient name (defaults to the signed-in user)")
	f.StringVar(&form.Email, "email", "", "contact email (defaults to the signed-in user)")
	f.StringVar(&form.Phone, "phone", "", "contact phone")
	f.StringVar(&form.Street, "street", "", "street address")
	f.StringVar(&form.City, "city", "", "city")
	f.StringVar(&form.PostalCode, "postal-code", "", "postal code")
	f.StringVar(&form.Country, "country", "Pakistan", "country")
	f.StringVar(&key, "idempotency-key", "", "reuse a key to retry an order safely")
	return cmd
}

func invalidDetails(err error) error {
	fields := validation.FieldErrors(err)
	if len(fields) == 0 {
		return err
	}
	names := make([]string, 0, len(fields))
	for name, tag := range fields {
		names = append(names, name+" ("+tag+")")
	}
	sort.Strings(names)
	return fmt.Errorf("invalid checkout details: %s", strings.Join(names, ", "))
}

func newOrdersCmd(a *app) *cobra.Command {
	var latest string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Show order history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.api.Orders(cmd.Context(), latest)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ORDER\tDATE\tSTATUS\tITEMS\tTOTAL\tTRACKING")
			for _, o := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
					o.ID, o.Date, o.Status, o.Items, catalog.FormatPrice(o.Total), o.TrackingID)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&latest, "latest", "", "id to show on the most recent order")
	return cmd
}

func newContactCmd(a *app) *cobra.Command {
	var m client.ContactMessage

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reply, err := a.api.SendContact(cmd.Context(), m)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&m.Name, "name", "", "your name")
	f.StringVar(&m.Email, "email", "", "your email")
	f.StringVar(&m.Subject, "subject", "", "subject")
	f.StringVar(&m.Message, "message", "", "message")
	return cmd
}
