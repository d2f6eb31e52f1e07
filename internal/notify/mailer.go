package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/Fashion-Store/Aradaa/internal/config"
	"github.com/Fashion-Store/Aradaa/internal/orders"
)

// Sender delivers prepared messages. *mail.Client satisfies it.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Mailer sends notifications over SMTP.
type Mailer struct {
	sender Sender
	from   string
	inbox  string
}

// NewMailer builds an SMTP client from cfg.
func NewMailer(cfg config.SMTPConfig) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if cfg.Port == 25 {
		opts[1] = mail.WithTLSPolicy(mail.TLSOpportunistic)
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return NewMailerWithSender(client, cfg.From, cfg.Inbox), nil
}

// NewMailerWithSender wires a Mailer to an existing sender.
func NewMailerWithSender(s Sender, from, inbox string) *Mailer {
	return &Mailer{sender: s, from: from, inbox: inbox}
}

// NotifyContact forwards the message to the store inbox with Reply-To set to the sender.
func (m *Mailer) NotifyContact(ctx context.Context, c Contact) error {
	body, err := renderContact(c)
	if err != nil {
		return fmt.Errorf("render contact: %w", err)
	}
	msg, err := m.newMsg(m.inbox, contactSubject(c), body)
	if err != nil {
		return err
	}
	if c.Email != "" {
		// a malformed address from the form just means no Reply-To
		_ = msg.ReplyTo(c.Email)
	}
	return m.send(ctx, msg)
}

// NotifyOrder emails the customer an order confirmation.
func (m *Mailer) NotifyOrder(ctx context.Context, ev orders.PlacedEvent) error {
	if ev.CustomerEmail == "" {
		return fmt.Errorf("order %s has no customer email", ev.OrderID)
	}
	body, err := renderOrder(ev)
	if err != nil {
		return fmt.Errorf("render order: %w", err)
	}
	msg, err := m.newMsg(ev.CustomerEmail, "Your Adaraa order "+ev.OrderID, body)
	if err != nil {
		return err
	}
	return m.send(ctx, msg)
}

func (m *Mailer) newMsg(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func (m *Mailer) send(ctx context.Context, msg *mail.Msg) error {
	if err := m.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
