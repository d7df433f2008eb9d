package entity

import "time"

// Estados del pipeline de aprobación QA (enumeración cerrada).
// ACTIVE_VERIFIED y REJECTED son terminales: ninguna transición los abandona.
const (
	QAPendingDigitalReview = "PENDING_DIGITAL_REVIEW"
	QAWaitingForSample     = "WAITING_FOR_SAMPLE"
	QAInQualityReview      = "IN_QUALITY_REVIEW"
	QAActiveVerified       = "ACTIVE_VERIFIED"
	QARejected             = "REJECTED"
	QAForRevision          = "FOR_REVISION"
)

// Etapas en las que puede rechazarse o pedirse revisión de un producto.
const (
	QAStageDigital  = "digital"
	QAStagePhysical = "physical"
)

// QAAssessment recorrido de un producto por el pipeline de aprobación, desde el
// envío hasta activo-verificado o rechazado. Un producto puede acumular varias
// evaluaciones históricas pero solo una activa (no terminal) a la vez; un estado
// terminal es permanente y reenviar el producto crea una evaluación nueva.
type QAAssessment struct {
	ID              string
	ProductID       string
	SellerID        string
	Vendor          string // nombre visible del vendedor
	Status          string
	LogisticsMethod string // se fija una sola vez al enviar la muestra
	RejectionReason string
	RejectionStage  string // digital | physical

	SubmittedAt         time.Time
	ApprovedAt          *time.Time
	VerifiedAt          *time.Time
	RejectedAt          *time.Time
	RevisionRequestedAt *time.Time
}

// IsTerminal indica si la evaluación ya no admite transiciones.
func (a *QAAssessment) IsTerminal() bool {
	return a.Status == QAActiveVerified || a.Status == QARejected
}
