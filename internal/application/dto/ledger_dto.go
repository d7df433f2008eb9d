package dto

import "time"

// DeductRequest body para POST /api/inventory/deductions.
type DeductRequest struct {
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason,omitempty"` // ONLINE_SALE | OFFLINE_SALE
	ReferenceID string `json:"reference_id,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// AddRequest body para POST /api/inventory/additions.
type AddRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// AdjustRequest body para POST /api/inventory/adjustments.
// Notes es obligatorio: los conteos manuales siempre se explican.
type AdjustRequest struct {
	ProductID   string `json:"product_id"`
	NewQuantity int    `json:"new_quantity"`
	Reason      string `json:"reason,omitempty"`
	Notes       string `json:"notes"`
}

// ReservationRequest body para POST /api/inventory/reservations y /releases.
type ReservationRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	OrderID   string `json:"order_id"`
}

// LedgerEntryResponse una entrada del ledger en respuestas.
type LedgerEntryResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ChangeType     string    `json:"change_type"`
	Reason         string    `json:"reason"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityChange int       `json:"quantity_change"`
	QuantityAfter  int       `json:"quantity_after"`
	ReferenceID    string    `json:"reference_id,omitempty"`
	UserID         string    `json:"user_id,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// LowStockAlertResponse una alerta de stock bajo en respuestas.
type LowStockAlertResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	CurrentStock int       `json:"current_stock"`
	Threshold    int       `json:"threshold"`
	Acknowledged bool      `json:"acknowledged"`
	CreatedAt    time.Time `json:"created_at"`
}
