package paymentControllers

import (
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// GatewayOrder is the typed view of the gateway's order-creation
// response. The SDK hands back an untyped map; nothing outside this
// file touches it.
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// Gateway creates payment orders with the external processor. Amounts
// are in minor units (paise).
type Gateway interface {
	CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*GatewayOrder, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway builds the production gateway from API
// credentials.
func NewRazorpayGateway(keyID, keySecret string) Gateway {
	return &razorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *razorpayGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	// Validate the untyped response at the boundary.
	id, _ := body["id"].(string)
	if id == "" {
		return nil, errors.New("razorpay response missing order id")
	}
	amt, ok := body["amount"].(float64)
	if !ok {
		return nil, errors.New("razorpay response missing amount")
	}
	cur, _ := body["currency"].(string)
	if cur == "" {
		cur = currency
	}

	return &GatewayOrder{ID: id, Amount: int64(amt), Currency: cur}, nil
}
