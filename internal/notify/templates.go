package notify

import (
	"strings"
	"text/template"

	"github.com/Fashion-Store/Aradaa/internal/catalog"
	"github.com/Fashion-Store/Aradaa/internal/orders"
)

var funcs = template.FuncMap{
	"price": catalog.FormatPrice,
	"orEmpty": func(s, fallback string) string {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	},
}

var contactTmpl = template.Must(template.New("contact").Funcs(funcs).Parse(
	`New message from the Adaraa contact form

Name:    {{orEmpty .Name "(not given)"}}
Email:   {{orEmpty .Email "(not given)"}}
Subject: {{orEmpty .Subject "(no subject)"}}

{{.Message}}
`))

var orderTmpl = template.Must(template.New("order").Funcs(funcs).Parse(
	`Dear {{orEmpty .CustomerName "customer"}},

Thank you for shopping with Adaraa. Your order {{.OrderID}} has been received.

Items: {{.ItemCount}}
Total: {{price .Total}}
Payment: cash on delivery

We will let you know when your order ships.

Adaraa Fashion
`))

func renderContact(c Contact) (string, error) {
	var b strings.Builder
	if err := contactTmpl.Execute(&b, c); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderOrder(ev orders.PlacedEvent) (string, error) {
	var b strings.Builder
	if err := orderTmpl.Execute(&b, ev); err != nil {
		return "", err
	}
	return b.String(), nil
}

func contactSubject(c Contact) string {
	if s := strings.TrimSpace(c.Subject); s != "" {
		return "[Contact] " + s
	}
	return "[Contact] New message"
}
