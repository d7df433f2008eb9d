package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.AssessmentRepository = (*AssessmentRepo)(nil)

const assessmentColumns = `id, product_id, seller_id, vendor, status, logistics_method, rejection_reason, rejection_stage, submitted_at, approved_at, verified_at, rejected_at, revision_requested_at`

// AssessmentRepo implementación de evaluaciones QA sobre PostgreSQL (usable con pool o tx).
type AssessmentRepo struct {
	q Querier
}

// NewAssessmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssessmentRepository(q Querier) *AssessmentRepo {
	return &AssessmentRepo{q: q}
}

// Create persiste una evaluación nueva.
func (r *AssessmentRepo) Create(a *entity.QAAssessment) error {
	query := `
		INSERT INTO qa_assessments (id, product_id, seller_id, vendor, status, logistics_method, rejection_reason, rejection_stage, submitted_at, approved_at, verified_at, rejected_at, revision_requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ProductID, a.SellerID, a.Vendor, a.Status, a.LogisticsMethod,
		a.RejectionReason, a.RejectionStage, a.SubmittedAt,
		a.ApprovedAt, a.VerifiedAt, a.RejectedAt, a.RevisionRequestedAt,
	)
	if err != nil {
		return fmt.Errorf("create assessment: %w", err)
	}
	return nil
}

// GetByID obtiene una evaluación por ID.
func (r *AssessmentRepo) GetByID(id string) (*entity.QAAssessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM qa_assessments WHERE id = $1`
	return scanAssessment(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la evaluación y bloquea su fila (SELECT FOR UPDATE):
// el estado actual se valida dentro de la sección crítica.
func (r *AssessmentRepo) GetForUpdate(id string) (*entity.QAAssessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM qa_assessments WHERE id = $1 FOR UPDATE`
	return scanAssessment(r.q.QueryRow(context.Background(), query, id))
}

// GetActiveByProduct devuelve la evaluación no terminal del producto, o nil.
func (r *AssessmentRepo) GetActiveByProduct(productID string) (*entity.QAAssessment, error) {
	query := `
		SELECT ` + assessmentColumns + `
		FROM qa_assessments
		WHERE product_id = $1 AND status NOT IN ($2, $3)
		ORDER BY submitted_at DESC LIMIT 1`
	return scanAssessment(r.q.QueryRow(context.Background(), query,
		productID, entity.QAActiveVerified, entity.QARejected))
}

// Update actualiza estado, campos de decisión y timestamps de la evaluación.
func (r *AssessmentRepo) Update(a *entity.QAAssessment) error {
	query := `
		UPDATE qa_assessments
		SET status = $2, logistics_method = $3, rejection_reason = $4, rejection_stage = $5,
		    submitted_at = $6, approved_at = $7, verified_at = $8, rejected_at = $9, revision_requested_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		a.ID, a.Status, a.LogisticsMethod, a.RejectionReason, a.RejectionStage,
		a.SubmittedAt, a.ApprovedAt, a.VerifiedAt, a.RejectedAt, a.RevisionRequestedAt,
	)
	if err != nil {
		return fmt.Errorf("update assessment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update assessment: fila no encontrada")
	}
	return nil
}

// ListByStatus lista evaluaciones por estado, más antiguas primero (cola FIFO del equipo QA).
func (r *AssessmentRepo) ListByStatus(status string, limit, offset int) ([]*entity.QAAssessment, error) {
	query := `
		SELECT ` + assessmentColumns + `
		FROM qa_assessments WHERE status = $1
		ORDER BY submitted_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()
	var list []*entity.QAAssessment
	for rows.Next() {
		var a entity.QAAssessment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.SellerID, &a.Vendor, &a.Status,
			&a.LogisticsMethod, &a.RejectionReason, &a.RejectionStage, &a.SubmittedAt,
			&a.ApprovedAt, &a.VerifiedAt, &a.RejectedAt, &a.RevisionRequestedAt); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func scanAssessment(row pgx.Row) (*entity.QAAssessment, error) {
	var a entity.QAAssessment
	err := row.Scan(&a.ID, &a.ProductID, &a.SellerID, &a.Vendor, &a.Status,
		&a.LogisticsMethod, &a.RejectionReason, &a.RejectionStage, &a.SubmittedAt,
		&a.ApprovedAt, &a.VerifiedAt, &a.RejectedAt, &a.RevisionRequestedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	return &a, nil
}
