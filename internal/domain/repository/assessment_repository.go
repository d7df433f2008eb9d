package repository

import "github.com/jhoicas/Marketplace-api/internal/domain/entity"

// AssessmentRepository puerto de persistencia de evaluaciones QA.
type AssessmentRepository interface {
	Create(assessment *entity.QAAssessment) error
	GetByID(id string) (*entity.QAAssessment, error)
	// GetForUpdate obtiene la evaluación y bloquea su fila (SELECT FOR UPDATE)
	// para validar el estado actual dentro de la sección crítica.
	GetForUpdate(id string) (*entity.QAAssessment, error)
	// GetActiveByProduct devuelve la evaluación no terminal del producto, o nil.
	// Como máximo existe una a la vez.
	GetActiveByProduct(productID string) (*entity.QAAssessment, error)
	Update(assessment *entity.QAAssessment) error
	ListByStatus(status string, limit, offset int) ([]*entity.QAAssessment, error)
}
