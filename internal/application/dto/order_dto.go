package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest body para POST /api/orders/checkout.
type CheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items"`
}

// CheckoutItemRequest un renglón del checkout.
type CheckoutItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse la orden confirmada.
type OrderResponse struct {
	ID        string              `json:"id"`
	BuyerID   string              `json:"buyer_id"`
	Status    string              `json:"status"`
	Total     decimal.Decimal     `json:"total"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
}

// OrderItemResponse un renglón de la orden.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
