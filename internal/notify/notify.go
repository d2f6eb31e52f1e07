// Package notify forwards contact messages and order confirmations by email.
package notify

import (
	"context"
	"log/slog"

	"github.com/Fashion-Store/Aradaa/internal/orders"
)

// Contact is a message from the contact form.
type Contact struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Notifier delivers storefront notifications.
type Notifier interface {
	NotifyContact(ctx context.Context, c Contact) error
	NotifyOrder(ctx context.Context, ev orders.PlacedEvent) error
}

// LogNotifier only logs. It is used when no mail server is configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) NotifyContact(ctx context.Context, c Contact) error {
	n.logger().InfoContext(ctx, "contact message received",
		slog.String("from", c.Email),
		slog.String("subject", c.Subject),
		slog.Int("length", len(c.Message)),
	)
	return nil
}

func (n LogNotifier) NotifyOrder(ctx context.Context, ev orders.PlacedEvent) error {
	n.logger().InfoContext(ctx, "order confirmation skipped, mail disabled",
		slog.String("order_id", ev.OrderID),
		slog.String("customer", ev.CustomerEmail),
	)
	return nil
}

func (n LogNotifier) logger() *slog.Logger {
	if n.Logger == nil {
		return slog.Default()
	}
	return n.Logger
}
