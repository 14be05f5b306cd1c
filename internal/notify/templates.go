package notify

import (
	"fmt"
	"strings"
	"text/template"

	"mattress-shop/internal/model"
)

var confirmationTemplate = template.Must(template.New("payment_confirmation").Funcs(template.FuncMap{
	"money": model.FormatMajor,
}).Parse(`Hello {{.Order.FirstName}},

we have received the payment for order {{.Order.OrderNumber}}.

{{range .Items}}- {{.Title}} ({{.Size}}) x{{.Quantity}}: {{money .Total}} {{$.Currency}}
{{end}}
Subtotal: {{money .Order.Subtotal}} {{.Currency}}
{{- if .Order.DiscountAmount}}
Discount{{with .Order.PromoCode}} ({{.}}){{end}}: -{{money .Order.DiscountAmount}} {{.Currency}}
{{- end}}
Delivery: {{money .Order.DeliveryPrice}} {{.Currency}}
Total paid: {{money .Order.Total}} {{.Currency}}

Delivery to {{.Order.DeliveryCity}}, {{.Order.DeliveryWarehouse}}.
We will let you know once the order ships.
`))

// PaymentConfirmation renders the email sent after a successful online payment.
func PaymentConfirmation(order *model.Order, items []model.OrderItem, currency string) (Message, error) {
	var body strings.Builder
	err := confirmationTemplate.Execute(&body, struct {
		Order    *model.Order
		Items    []model.OrderItem
		Currency string
	}{order, items, currency})
	if err != nil {
		return Message{}, fmt.Errorf("failed to render payment confirmation: %w", err)
	}

	return Message{
		To:      order.Email,
		Subject: fmt.Sprintf("Payment received for order %s", order.OrderNumber),
		Body:    body.String(),
	}, nil
}
