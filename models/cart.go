package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem holds only the product reference and the quantity. Display
// data (name, price, slug) is joined from products at read time, so a
// catalog price change shows up in the cart without a backfill.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_product" json:"-"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int       `json:"qty"`
	AddedAt   time.Time `json:"added_at"`
}

// CartLine is a cart item enriched with live product data, as returned
// by GET /api/cart/get and consumed by checkout.
type CartLine struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"qty"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}
