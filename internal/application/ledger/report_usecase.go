package ledger

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// ReportUseCase genera el reporte PDF de auditoría del ledger de un producto
// (historial de movimientos con cantidades antes/después).
type ReportUseCase struct {
	productRepo repository.ProductRepository
	ledgerRepo  repository.LedgerRepository
	generator   ReportGenerator
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(productRepo repository.ProductRepository, ledgerRepo repository.LedgerRepository, generator ReportGenerator) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, ledgerRepo: ledgerRepo, generator: generator}
}

// GenerateLedgerReport devuelve el PDF con el historial completo del producto.
func (uc *ReportUseCase) GenerateLedgerReport(ctx context.Context, productID string) ([]byte, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.ledgerRepo.ListByProduct(productID, 1000, 0)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateLedgerReport(product, entries)
}
