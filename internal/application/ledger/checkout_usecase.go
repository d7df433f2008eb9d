package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// CheckoutUseCase coordinador de checkout multi-producto. Valida la disponibilidad
// de TODOS los renglones como pre-chequeo todo-o-nada y recién entonces descuenta
// uno por uno, todo bajo la misma transacción y el mismo referenceID (el ID de la
// orden). Si un renglón falla, no se escribe ninguna entrada de ledger.
type CheckoutUseCase struct {
	txRunner CheckoutTxRunner
}

// NewCheckoutUseCase construye el coordinador.
func NewCheckoutUseCase(txRunner CheckoutTxRunner) *CheckoutUseCase {
	return &CheckoutUseCase{txRunner: txRunner}
}

// CheckoutItem renglón solicitado por el comprador.
type CheckoutItem struct {
	ProductID string
	Quantity  int
}

// Checkout ejecuta la compra: bloquea las filas de producto en el orden recibido,
// valida stock suficiente para todos los renglones, descuenta cada uno (una entrada
// de ledger por renglón, todas con el ID de la orden como referencia) y persiste la
// orden con sus renglones. Todo en una transacción.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, buyerID string, items []CheckoutItem) (*entity.Order, error) {
	if buyerID == "" || len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	orderID := uuid.New().String()
	now := time.Now()
	var order *entity.Order

	err := uc.txRunner.RunCheckout(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerRepository,
		alertRepo repository.AlertRepository,
		orderRepo repository.OrderRepository,
	) error {
		// Pre-chequeo todo-o-nada: bloquear cada fila en el orden del caller y
		// validar disponibilidad completa antes de la primera deducción. El lock
		// hace que chequeo y acción sean atómicos frente a ventas concurrentes.
		// Si un producto se repite en varios renglones, se bloquea una sola vez
		// y se valida la cantidad acumulada.
		products := make([]*entity.Product, len(items))
		locked := make(map[string]*entity.Product, len(items))
		needed := make(map[string]int, len(items))
		for i, it := range items {
			product := locked[it.ProductID]
			if product == nil {
				var err error
				product, err = productRepo.GetForUpdate(it.ProductID)
				if err != nil {
					return err
				}
				if product == nil || product.DeletedAt != nil {
					return domain.ErrNotFound
				}
				locked[it.ProductID] = product
			}
			needed[it.ProductID] += it.Quantity
			if product.Stock < needed[it.ProductID] {
				return &domain.InsufficientStockError{
					ProductID: it.ProductID,
					Available: product.Stock,
					Requested: needed[it.ProductID],
				}
			}
			products[i] = product
		}

		// Deducción por renglón. La suficiencia ya fue validada con las filas
		// bloqueadas: un fallo aquí es una violación de invariante interno, no
		// una condición reintentable, y revierte la transacción completa.
		total := decimal.Zero
		orderItems := make([]entity.OrderItem, 0, len(items))
		for i, it := range items {
			product := products[i]
			entry := newEntry(product, entity.ChangeDeduction, entity.ReasonOnlineSale, -it.Quantity, orderID, buyerID, "")
			if err := productRepo.UpdateStock(product.ID, entry.QuantityAfter); err != nil {
				return fmt.Errorf("%w: actualizar stock: %v", domain.ErrExternalWrite, err)
			}
			if err := ledgerRepo.Create(entry); err != nil {
				return fmt.Errorf("%w: insertar entrada de ledger: %v", domain.ErrExternalWrite, err)
			}
			product.Stock = entry.QuantityAfter
			if err := evaluateLowStock(alertRepo, product); err != nil {
				return err
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			total = total.Add(subtotal)
			orderItems = append(orderItems, entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   orderID,
				ProductID: product.ID,
				Quantity:  it.Quantity,
				UnitPrice: product.Price,
				Subtotal:  subtotal,
			})
		}

		order = &entity.Order{
			ID:        orderID,
			BuyerID:   buyerID,
			Status:    entity.OrderStatusConfirmed,
			Total:     total,
			Items:     orderItems,
			CreatedAt: now,
		}
		if err := orderRepo.Create(order); err != nil {
			return fmt.Errorf("%w: crear orden: %v", domain.ErrExternalWrite, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
