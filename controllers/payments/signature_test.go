package paymentControllers

import "testing"

func TestExpectedSignature(t *testing.T) {
	// Fixed vector: HMAC-SHA256("order_abc|pay_xyz", "secret").
	got := ExpectedSignature("secret", "order_abc", "pay_xyz")
	want := "6c4490ce5c4839b0437f2b5dccb1fc7301518f94c6d1165b96d0903bfd33b2ae"
	if got != want {
		t.Fatalf("signature = %s, want %s", got, want)
	}
}

func TestVerifySignature(t *testing.T) {
	secret := "test-secret"
	orderID := "order_abc"
	paymentID := "pay_xyz"
	valid := ExpectedSignature(secret, orderID, paymentID)

	cases := []struct {
		name      string
		secret    string
		orderID   string
		paymentID string
		signature string
		want      bool
	}{
		{"valid", secret, orderID, paymentID, valid, true},
		{"wrong secret", "other-secret", orderID, paymentID, valid, false},
		{"wrong order id", secret, "order_def", paymentID, valid, false},
		{"wrong payment id", secret, orderID, "pay_other", valid, false},
		{"garbage signature", secret, orderID, paymentID, "deadbeef", false},
		{"empty signature", secret, orderID, paymentID, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VerifySignature(tc.secret, tc.orderID, tc.paymentID, tc.signature); got != tc.want {
				t.Errorf("VerifySignature = %v, want %v", got, tc.want)
			}
		})
	}
}
