package validation

import (
	"fmt"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/Fashion-Store/Aradaa/internal/orders"
)

// New returns a validator that reports fields by their json names and checks
// that an order's total matches its lines.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(orderStructValidation, orders.Order{})

	return v
}

// orderStructValidation rejects empty orders, non-positive quantities and a
// total that differs from the sum of price × quantity.
func orderStructValidation(sl validatorv10.StructLevel) {
	o := sl.Current().Interface().(orders.Order)

	if len(o.Items) == 0 {
		sl.ReportError(o.Items, "items", "Items", "min_items", "")
		return
	}
	for i, it := range o.Items {
		if it.Quantity < 1 {
			sl.ReportError(it.Quantity, fmt.Sprintf("items[%d].quantity", i), "Quantity", "min", "1")
		}
	}

	if sum := o.ItemsTotal(); sum != o.Total {
		sl.ReportError(o.Total, "total", "Total", "total_match_items", fmt.Sprintf("%d", sum))
	}
}
