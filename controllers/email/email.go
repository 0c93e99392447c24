package emailControllers

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/rutdvaj/fastbite/models"
)

// SendGridNotifier sends order-confirmation emails through SendGrid.
type SendGridNotifier struct {
	apiKey string
	from   string
}

func NewSendGridNotifier(apiKey, from string) *SendGridNotifier {
	return &SendGridNotifier{apiKey: apiKey, from: from}
}

func (n *SendGridNotifier) OrderConfirmation(order models.Order, email string) error {
	if n.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if email == "" {
		return fmt.Errorf("recipient address is empty")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for your order #%d!\n\n", order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %s x%d — %.2f\n", item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\nSubtotal: %.2f\nShipping: %.2f\nTotal: %.2f %s\n",
		order.Subtotal, order.ShippingCost, order.TotalAmount, order.Currency)

	from := mail.NewEmail("Fastbite", n.from)
	to := mail.NewEmail("", email)
	subject := fmt.Sprintf("Order #%d confirmed", order.ID)
	body := b.String()
	message := mail.NewSingleEmail(from, subject, to, body, "<pre>"+body+"</pre>")

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}
	return nil
}
