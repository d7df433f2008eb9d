package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para registrar un producto.
// El producto nace con stock 0 y aprobación pending (oculto a compradores).
type CreateProductRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Category          string          `json:"category,omitempty"`
	Price             decimal.Decimal `json:"price"`
	LowStockThreshold int             `json:"low_stock_threshold,omitempty"`
}

// UpdateProductRequest body para actualizar un producto.
// No permite modificar Stock ni ApprovalStatus (se manejan vía ledger y QA).
type UpdateProductRequest struct {
	Name              *string          `json:"name,omitempty"`
	Description       *string          `json:"description,omitempty"`
	Category          *string          `json:"category,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty"`
}

// ProductResponse un producto en respuestas.
type ProductResponse struct {
	ID                string          `json:"id"`
	SellerID          string          `json:"seller_id"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Category          string          `json:"category,omitempty"`
	Price             decimal.Decimal `json:"price"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	ApprovalStatus    string          `json:"approval_status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
