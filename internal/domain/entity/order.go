package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden creada por el checkout.
const (
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)

// Order orden de compra confirmada por el coordinador de checkout.
// Se persiste en la misma transacción que las deducciones de stock:
// exactamente una entrada de ledger por renglón, todas con el ID de la orden
// como referencia.
type Order struct {
	ID        string
	BuyerID   string
	Status    string
	Total     decimal.Decimal
	Items     []OrderItem
	CreatedAt time.Time
}

// OrderItem renglón de una orden.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
