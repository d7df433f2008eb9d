package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de aprobación visibles al comprador.
// Solo "approved" hace visible el producto en el catálogo.
const (
	ApprovalPending      = "pending"
	ApprovalApproved     = "approved"
	ApprovalRejected     = "rejected"
	ApprovalReclassified = "reclassified" // valor legado, este core no lo escribe
)

// DefaultLowStockThreshold umbral de stock bajo cuando el vendedor no configura uno.
const DefaultLowStockThreshold = 10

// Product representa un producto del marketplace publicado por un vendedor.
// Stock se muta exclusivamente a través del motor de ledger; ApprovalStatus
// exclusivamente a través del pipeline de QA. Nunca se borra físicamente
// mientras existan entradas de ledger que lo referencien (DeletedAt lógico).
type Product struct {
	ID                string
	SellerID          string
	Name              string
	Description       string
	Category          string
	Price             decimal.Decimal
	Stock             int
	LowStockThreshold int
	ApprovalStatus    string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// IsVisible indica si el producto aparece en el catálogo de compradores.
func (p *Product) IsVisible() bool {
	return p.DeletedAt == nil && p.ApprovalStatus == ApprovalApproved
}
