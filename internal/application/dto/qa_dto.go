package dto

import "time"

// SubmitForReviewRequest body para POST /api/qa/submissions.
type SubmitForReviewRequest struct {
	ProductID string `json:"product_id"`
}

// SubmitSampleRequest body para POST /api/qa/assessments/:id/sample.
type SubmitSampleRequest struct {
	LogisticsMethod string `json:"logistics_method"`
}

// QADecisionRequest body para rechazo o solicitud de revisión.
type QADecisionRequest struct {
	Reason string `json:"reason"`
	Stage  string `json:"stage"` // digital | physical
}

// QAAssessmentResponse una evaluación QA en respuestas.
type QAAssessmentResponse struct {
	ID              string     `json:"id"`
	ProductID       string     `json:"product_id"`
	SellerID        string     `json:"seller_id"`
	Vendor          string     `json:"vendor"`
	Status          string     `json:"status"`
	LogisticsMethod string     `json:"logistics_method,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	RejectionStage  string     `json:"rejection_stage,omitempty"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RevisionAt      *time.Time `json:"revision_requested_at,omitempty"`
}
