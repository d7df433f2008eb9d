package ledger

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el stock del producto, la entrada de ledger y la
// evaluación de stock bajo se confirmen juntos o no se confirme nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerRepository,
		alertRepo repository.AlertRepository,
	) error) error
}

// CheckoutTxRunner variante para el coordinador de checkout: añade el repositorio
// de órdenes a la misma transacción (orden + renglones + deducciones, todo o nada).
type CheckoutTxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerRepository,
		alertRepo repository.AlertRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// ReportGenerator genera la representación PDF del ledger de un producto.
type ReportGenerator interface {
	GenerateLedgerReport(product *entity.Product, entries []*entity.LedgerEntry) ([]byte, error)
}
