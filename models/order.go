package models

import "time"

type OrderStatus string

const (
	// A checkout attempt starts pending and ends in exactly one of the
	// two terminal states. There is no other transition.
	OrderStatusPending   OrderStatus = "pending"   // Gateway order created, awaiting verified payment
	OrderStatusPaid      OrderStatus = "paid"      // Signature verified, payment recorded
	OrderStatusCancelled OrderStatus = "cancelled" // Explicitly cancelled by the user
)

type Order struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	UserID            string      `gorm:"not null;index" json:"user_id"`
	AddressID         uint        `gorm:"not null" json:"address_id"`
	Address           Address     `gorm:"foreignKey:AddressID" json:"address"`
	Items             []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal          float64     `json:"subtotal"`
	ShippingCost      float64     `json:"shipping_cost"`
	TotalAmount       float64     `json:"total_amount"`
	Currency          string      `gorm:"type:VARCHAR(3);default:'INR'" json:"currency"`
	Receipt           string      `json:"receipt"`
	RazorpayOrderID   string      `gorm:"uniqueIndex" json:"razorpay_order_id"`
	RazorpayPaymentID string      `json:"razorpay_payment_id"`
	RazorpaySignature string      `json:"-"`
	Status            OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// OrderItem is a snapshot taken when the order is created. Unlike cart
// items, the price here is frozen: the amount sent to the gateway and
// the amount on record must not drift with the catalog.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"qty"`
}
