package qa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	domainqa "github.com/jhoicas/Marketplace-api/internal/domain/qa"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// QAUseCase máquina de estados del pipeline de aprobación más el puente de
// sincronización: cada transición valida el estado actual con la fila bloqueada
// (SELECT FOR UPDATE), muta la evaluación y propaga el estado de aprobación al
// producto en la misma transacción. Nunca queda "QA verificado pero producto
// oculto" ni lo inverso.
type QAUseCase struct {
	txRunner       TxRunner
	assessmentRepo repository.AssessmentRepository
	productRepo    repository.ProductRepository
	userRepo       repository.UserRepository
}

// NewQAUseCase construye el caso de uso.
func NewQAUseCase(txRunner TxRunner, assessmentRepo repository.AssessmentRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) *QAUseCase {
	return &QAUseCase{txRunner: txRunner, assessmentRepo: assessmentRepo, productRepo: productRepo, userRepo: userRepo}
}

// SubmitForReview crea la evaluación inicial (PENDING_DIGITAL_REVIEW) cuando el
// vendedor envía el producto al marketplace. Solo puede existir una evaluación
// activa (no terminal) por producto; una terminal exige crear una nueva, nunca
// reabrir la vieja. La fila del producto se bloquea dentro de la transacción
// para serializar envíos concurrentes del mismo producto.
func (uc *QAUseCase) SubmitForReview(ctx context.Context, productID string) (*entity.QAAssessment, error) {
	// Fail-fast y nombre del vendedor fuera de la transacción; la verificación
	// definitiva ocurre adentro, con la fila bloqueada.
	existing, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	vendor := ""
	if seller, err := uc.userRepo.GetByID(existing.SellerID); err == nil && seller != nil {
		vendor = seller.StoreName
		if vendor == "" {
			vendor = seller.Name
		}
	}

	var assessment *entity.QAAssessment
	err = uc.txRunner.RunApproval(ctx, func(
		assessmentRepo repository.AssessmentRepository,
		productRepo repository.ProductRepository,
	) error {
		// El lock del producto hace de cerrojo: dos envíos concurrentes no
		// pueden ver ambos "sin evaluación activa" e insertar dos veces.
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		active, err := assessmentRepo.GetActiveByProduct(productID)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrConflict
		}
		assessment = &entity.QAAssessment{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			SellerID:    product.SellerID,
			Vendor:      vendor,
			Status:      entity.QAPendingDigitalReview,
			SubmittedAt: time.Now(),
		}
		if err := assessmentRepo.Create(assessment); err != nil {
			return fmt.Errorf("%w: crear evaluación: %v", domain.ErrExternalWrite, err)
		}
		return syncApproval(productRepo, assessment)
	})
	if err != nil {
		return nil, err
	}
	return assessment, nil
}

// ApproveForSample aprueba la revisión digital: PENDING_DIGITAL_REVIEW → WAITING_FOR_SAMPLE.
// El producto sigue oculto (approval pending) hasta pasar la revisión física.
func (uc *QAUseCase) ApproveForSample(ctx context.Context, assessmentID string) (*entity.QAAssessment, error) {
	return uc.transition(ctx, assessmentID, domainqa.OpApproveForSample, func(a *entity.QAAssessment) error {
		now := time.Now()
		a.Status = entity.QAWaitingForSample
		a.ApprovedAt = &now
		return nil
	})
}

// SubmitSample registra el envío de la muestra física: WAITING_FOR_SAMPLE → IN_QUALITY_REVIEW.
// El método logístico es obligatorio y se fija una sola vez.
func (uc *QAUseCase) SubmitSample(ctx context.Context, assessmentID, logisticsMethod string) (*entity.QAAssessment, error) {
	if strings.TrimSpace(logisticsMethod) == "" {
		return nil, domain.ErrMissingLogistics
	}
	return uc.transition(ctx, assessmentID, domainqa.OpSubmitSample, func(a *entity.QAAssessment) error {
		a.Status = entity.QAInQualityReview
		a.LogisticsMethod = logisticsMethod
		return nil
	})
}

// PassQualityCheck aprueba la revisión física: IN_QUALITY_REVIEW → ACTIVE_VERIFIED
// (terminal). El puente pone el producto en approved: visible a compradores.
func (uc *QAUseCase) PassQualityCheck(ctx context.Context, assessmentID string) (*entity.QAAssessment, error) {
	return uc.transition(ctx, assessmentID, domainqa.OpPassQualityCheck, func(a *entity.QAAssessment) error {
		now := time.Now()
		a.Status = entity.QAActiveVerified
		a.VerifiedAt = &now
		return nil
	})
}

// Reject rechaza el producto desde cualquier estado no terminal (terminal).
// Requiere motivo no vacío y la etapa en la que se rechaza (digital | physical).
func (uc *QAUseCase) Reject(ctx context.Context, assessmentID, reason, stage string) (*entity.QAAssessment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrMissingReason
	}
	if stage != entity.QAStageDigital && stage != entity.QAStagePhysical {
		return nil, domain.ErrInvalidInput
	}
	return uc.transition(ctx, assessmentID, domainqa.OpReject, func(a *entity.QAAssessment) error {
		now := time.Now()
		a.Status = entity.QARejected
		a.RejectionReason = reason
		a.RejectionStage = stage
		a.RejectedAt = &now
		return nil
	})
}

// RequestRevision pide correcciones al vendedor: cualquier estado no terminal
// (salvo FOR_REVISION) → FOR_REVISION. El producto se mantiene oculto.
func (uc *QAUseCase) RequestRevision(ctx context.Context, assessmentID, reason, stage string) (*entity.QAAssessment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrMissingReason
	}
	if stage != entity.QAStageDigital && stage != entity.QAStagePhysical {
		return nil, domain.ErrInvalidInput
	}
	return uc.transition(ctx, assessmentID, domainqa.OpRequestRevision, func(a *entity.QAAssessment) error {
		now := time.Now()
		a.Status = entity.QAForRevision
		a.RejectionReason = reason
		a.RejectionStage = stage
		a.RevisionRequestedAt = &now
		return nil
	})
}

// ResubmitAfterRevision reincorpora al pipeline una evaluación en FOR_REVISION:
// vuelve a PENDING_DIGITAL_REVIEW con la misma evaluación activa.
func (uc *QAUseCase) ResubmitAfterRevision(ctx context.Context, assessmentID string) (*entity.QAAssessment, error) {
	return uc.transition(ctx, assessmentID, domainqa.OpResubmitAfterFix, func(a *entity.QAAssessment) error {
		a.Status = entity.QAPendingDigitalReview
		a.SubmittedAt = time.Now()
		return nil
	})
}

// GetAssessment devuelve la evaluación activa de un producto.
func (uc *QAUseCase) GetAssessment(ctx context.Context, productID string) (*entity.QAAssessment, error) {
	assessment, err := uc.assessmentRepo.GetActiveByProduct(productID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, domain.ErrNotFound
	}
	return assessment, nil
}

// ListByStatus lista evaluaciones por estado (cola de trabajo del equipo QA).
func (uc *QAUseCase) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.QAAssessment, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.assessmentRepo.ListByStatus(status, limit, offset)
}

// transition ejecuta una transición: bloquea la fila de la evaluación, valida el
// estado actual contra la tabla de transiciones, aplica la mutación y sincroniza
// el estado de aprobación del producto, todo en la misma transacción.
func (uc *QAUseCase) transition(ctx context.Context, assessmentID, op string, mutate func(*entity.QAAssessment) error) (*entity.QAAssessment, error) {
	var assessment *entity.QAAssessment
	err := uc.txRunner.RunApproval(ctx, func(
		assessmentRepo repository.AssessmentRepository,
		productRepo repository.ProductRepository,
	) error {
		a, err := assessmentRepo.GetForUpdate(assessmentID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if err := domainqa.Validate(a, op); err != nil {
			return err
		}
		if err := mutate(a); err != nil {
			return err
		}
		if err := assessmentRepo.Update(a); err != nil {
			return fmt.Errorf("%w: actualizar evaluación: %v", domain.ErrExternalWrite, err)
		}
		if err := syncApproval(productRepo, a); err != nil {
			return err
		}
		assessment = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assessment, nil
}

// syncApproval puente de sincronización: escribe en el producto el estado de
// aprobación que corresponde al estado de QA.
func syncApproval(productRepo repository.ProductRepository, a *entity.QAAssessment) error {
	if err := productRepo.UpdateApprovalStatus(a.ProductID, domainqa.ApprovalFor(a.Status)); err != nil {
		return fmt.Errorf("%w: sincronizar aprobación del producto: %v", domain.ErrExternalWrite, err)
	}
	return nil
}
