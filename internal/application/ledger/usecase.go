package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// LedgerUseCase motor de mutaciones de stock. Todas las operaciones son atómicas:
// dentro de una transacción se bloquea la fila del producto (SELECT FOR UPDATE),
// se revalida la precondición, se actualiza el stock, se inserta la entrada de
// ledger y se evalúa la alerta de stock bajo; Commit o Rollback completo.
// El campo stock del producto nunca se muta por otra vía.
type LedgerUseCase struct {
	txRunner   TxRunner
	ledgerRepo repository.LedgerRepository
	alertRepo  repository.AlertRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, ledgerRepo repository.LedgerRepository, alertRepo repository.AlertRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, ledgerRepo: ledgerRepo, alertRepo: alertRepo}
}

// MovementInput entrada común de las mutaciones de stock.
type MovementInput struct {
	ProductID   string
	Quantity    int
	Reason      string
	ReferenceID string
	UserID      string
	Notes       string
}

// Deduct descuenta stock por una venta (online u offline/POS).
// Precondiciones: Quantity > 0 y stock disponible suficiente; si no,
// InsufficientStockError con disponible/solicitado, sin escribir nada.
func (uc *LedgerUseCase) Deduct(ctx context.Context, in MovementInput) (*entity.LedgerEntry, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Reason == "" {
		in.Reason = entity.ReasonOnlineSale
	}
	if !entity.ValidDeductionReason(in.Reason) {
		return nil, domain.ErrInvalidInput
	}
	return uc.applyChange(ctx, in.ProductID, entity.ChangeDeduction, in.Reason, -in.Quantity, in.ReferenceID, in.UserID, in.Notes)
}

// Add suma stock por reposición.
func (uc *LedgerUseCase) Add(ctx context.Context, in MovementInput) (*entity.LedgerEntry, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Reason == "" {
		in.Reason = entity.ReasonStockReplenishment
	}
	if !entity.ValidAdditionReason(in.Reason) {
		return nil, domain.ErrInvalidInput
	}
	return uc.applyChange(ctx, in.ProductID, entity.ChangeAddition, in.Reason, in.Quantity, in.ReferenceID, in.UserID, in.Notes)
}

// AdjustInput entrada del ajuste manual: fija el stock a NewQuantity.
type AdjustInput struct {
	ProductID   string
	NewQuantity int
	Reason      string
	Notes       string
	UserID      string
}

// Adjust fija el stock en NewQuantity (conteo físico, merma, corrección).
// Las correcciones manuales siempre deben explicarse: Notes vacío falla con
// ErrMissingReason antes de tocar nada.
func (uc *LedgerUseCase) Adjust(ctx context.Context, in AdjustInput) (*entity.LedgerEntry, error) {
	if in.NewQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Notes) == "" {
		return nil, domain.ErrMissingReason
	}
	notes := in.Notes
	if in.Reason != "" {
		notes = in.Reason + ": " + in.Notes
	}

	var entry *entity.LedgerEntry
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerRepository,
		alertRepo repository.AlertRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		change := in.NewQuantity - product.Stock
		entry = newEntry(product, entity.ChangeAdjustment, entity.ReasonManualAdjustment, change, uuid.New().String(), in.UserID, notes)
		return uc.commitEntry(productRepo, ledgerRepo, alertRepo, product, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Reserve retiene stock para una orden aún no confirmada (reversible con Release).
func (uc *LedgerUseCase) Reserve(ctx context.Context, productID string, quantity int, orderID, userID string) (*entity.LedgerEntry, error) {
	if quantity <= 0 || orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.applyChange(ctx, productID, entity.ChangeReservation, entity.ReasonReservation, -quantity, orderID, userID, "")
}

// Release devuelve al stock una reserva cancelada.
func (uc *LedgerUseCase) Release(ctx context.Context, productID string, quantity int, orderID, userID string) (*entity.LedgerEntry, error) {
	if quantity <= 0 || orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.applyChange(ctx, productID, entity.ChangeRelease, entity.ReasonOrderCancellation, quantity, orderID, userID, "")
}

// applyChange ejecuta una mutación con delta firmado dentro de una transacción.
func (uc *LedgerUseCase) applyChange(ctx context.Context, productID, changeType, reason string, change int, referenceID, userID, notes string) (*entity.LedgerEntry, error) {
	var entry *entity.LedgerEntry
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerRepository,
		alertRepo repository.AlertRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		// Revalidar la precondición dentro de la sección crítica: dos deducciones
		// concurrentes no pueden leer el mismo stock y descontarlo por separado.
		if change < 0 && product.Stock < -change {
			return &domain.InsufficientStockError{
				ProductID: productID,
				Available: product.Stock,
				Requested: -change,
			}
		}
		entry = newEntry(product, changeType, reason, change, referenceID, userID, notes)
		return uc.commitEntry(productRepo, ledgerRepo, alertRepo, product, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// commitEntry aplica el nuevo stock, persiste la entrada y evalúa stock bajo.
// Un fallo del almacén después de validar se reporta como ErrExternalWrite y
// revierte la transacción completa.
func (uc *LedgerUseCase) commitEntry(
	productRepo repository.ProductRepository,
	ledgerRepo repository.LedgerRepository,
	alertRepo repository.AlertRepository,
	product *entity.Product,
	entry *entity.LedgerEntry,
) error {
	if err := productRepo.UpdateStock(product.ID, entry.QuantityAfter); err != nil {
		return fmt.Errorf("%w: actualizar stock: %v", domain.ErrExternalWrite, err)
	}
	if err := ledgerRepo.Create(entry); err != nil {
		return fmt.Errorf("%w: insertar entrada de ledger: %v", domain.ErrExternalWrite, err)
	}
	product.Stock = entry.QuantityAfter
	return evaluateLowStock(alertRepo, product)
}

// newEntry arma la entrada con el invariante before + change = after.
func newEntry(product *entity.Product, changeType, reason string, change int, referenceID, userID, notes string) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:             uuid.New().String(),
		ProductID:      product.ID,
		ChangeType:     changeType,
		Reason:         reason,
		QuantityBefore: product.Stock,
		QuantityChange: change,
		QuantityAfter:  product.Stock + change,
		ReferenceID:    referenceID,
		UserID:         userID,
		Notes:          notes,
		CreatedAt:      time.Now(),
	}
}

// evaluateLowStock regla del monitor: si 0 < stock < umbral y no hay alerta sin
// reconocer para el producto, crea una; en cualquier otro caso no hace nada.
// Recuperar stock por encima del umbral NO limpia una alerta existente.
func evaluateLowStock(alertRepo repository.AlertRepository, product *entity.Product) error {
	if product.Stock <= 0 || product.Stock >= product.LowStockThreshold {
		return nil
	}
	existing, err := alertRepo.GetUnacknowledged(product.ID)
	if err != nil {
		return fmt.Errorf("%w: consultar alertas: %v", domain.ErrExternalWrite, err)
	}
	if existing != nil {
		return nil
	}
	alert := &entity.LowStockAlert{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		ProductName:  product.Name,
		CurrentStock: product.Stock,
		Threshold:    product.LowStockThreshold,
		Acknowledged: false,
		CreatedAt:    time.Now(),
	}
	if err := alertRepo.Create(alert); err != nil {
		return fmt.Errorf("%w: crear alerta: %v", domain.ErrExternalWrite, err)
	}
	return nil
}

// GetLedgerByProduct devuelve el historial de movimientos de un producto
// (orden descendente por fecha de commit).
func (uc *LedgerUseCase) GetLedgerByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.ledgerRepo.ListByProduct(productID, limit, offset)
}

// GetRecentLedgerEntries devuelve los movimientos más recientes de toda la tienda.
func (uc *LedgerUseCase) GetRecentLedgerEntries(ctx context.Context, limit int) ([]*entity.LedgerEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.ledgerRepo.ListRecent(limit)
}

// ListAlerts devuelve las alertas de stock bajo sin reconocer del vendedor.
func (uc *LedgerUseCase) ListAlerts(ctx context.Context, sellerID string) ([]*entity.LowStockAlert, error) {
	return uc.alertRepo.ListUnacknowledgedBySeller(sellerID)
}

// AcknowledgeAlert marca una alerta como atendida. No toca stock ni ledger.
func (uc *LedgerUseCase) AcknowledgeAlert(ctx context.Context, alertID string) error {
	alert, err := uc.alertRepo.GetByID(alertID)
	if err != nil {
		return err
	}
	if alert == nil {
		return domain.ErrNotFound
	}
	return uc.alertRepo.Acknowledge(alertID)
}
