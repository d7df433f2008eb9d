// Package qa contiene la tabla de transiciones del pipeline de aprobación
// (servicio de dominio puro, sin dependencias de infraestructura).
package qa

import (
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

// Operaciones del pipeline de QA.
const (
	OpApproveForSample = "APPROVE_FOR_SAMPLE"
	OpSubmitSample     = "SUBMIT_SAMPLE"
	OpPassQualityCheck = "PASS_QUALITY_CHECK"
	OpReject           = "REJECT"
	OpRequestRevision  = "REQUEST_REVISION"
	OpResubmitAfterFix = "RESUBMIT_AFTER_REVISION"
)

// ApprovalFor devuelve el estado de aprobación visible al comprador que
// corresponde a cada estado de QA (regla del puente de sincronización).
// Solo ACTIVE_VERIFIED hace visible el producto.
func ApprovalFor(status string) string {
	switch status {
	case entity.QAActiveVerified:
		return entity.ApprovalApproved
	case entity.QARejected:
		return entity.ApprovalRejected
	default:
		// PENDING_DIGITAL_REVIEW, WAITING_FOR_SAMPLE, IN_QUALITY_REVIEW,
		// FOR_REVISION: el producto sigue oculto a compradores.
		return entity.ApprovalPending
	}
}

// Validate verifica que la operación esté permitida desde el estado actual de la
// evaluación. Devuelve InvalidTransitionError nombrando el estado requerido.
func Validate(a *entity.QAAssessment, op string) error {
	switch op {
	case OpApproveForSample:
		return requireStatus(a, op, entity.QAPendingDigitalReview)
	case OpSubmitSample:
		return requireStatus(a, op, entity.QAWaitingForSample)
	case OpPassQualityCheck:
		return requireStatus(a, op, entity.QAInQualityReview)
	case OpReject:
		// Permitido desde cualquier estado no terminal.
		if a.IsTerminal() {
			return invalid(a, op, "cualquier estado no terminal")
		}
		return nil
	case OpRequestRevision:
		// Permitido desde cualquier estado no terminal salvo FOR_REVISION.
		if a.IsTerminal() || a.Status == entity.QAForRevision {
			return invalid(a, op, "cualquier estado no terminal distinto de FOR_REVISION")
		}
		return nil
	case OpResubmitAfterFix:
		return requireStatus(a, op, entity.QAForRevision)
	}
	return domain.ErrInvalidInput
}

func requireStatus(a *entity.QAAssessment, op, required string) error {
	if a.Status != required {
		return invalid(a, op, required)
	}
	return nil
}

func invalid(a *entity.QAAssessment, op, required string) error {
	return &domain.InvalidTransitionError{
		AssessmentID: a.ID,
		Current:      a.Status,
		Attempted:    op,
		Required:     required,
	}
}
