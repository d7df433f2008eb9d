package qa

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// TxRunner ejecuta una transición de QA dentro de una transacción de BD.
// La evaluación y el estado de aprobación del producto se confirman juntos:
// si la escritura del producto falla, la transición no se retiene.
type TxRunner interface {
	RunApproval(ctx context.Context, fn func(
		assessmentRepo repository.AssessmentRepository,
		productRepo repository.ProductRepository,
	) error) error
}
