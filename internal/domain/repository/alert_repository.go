package repository

import "github.com/jhoicas/Marketplace-api/internal/domain/entity"

// AlertRepository puerto de persistencia de alertas de stock bajo.
type AlertRepository interface {
	Create(alert *entity.LowStockAlert) error
	GetByID(id string) (*entity.LowStockAlert, error)
	// GetUnacknowledged devuelve la alerta sin reconocer del producto, o nil.
	// Como máximo existe una a la vez.
	GetUnacknowledged(productID string) (*entity.LowStockAlert, error)
	ListUnacknowledgedBySeller(sellerID string) ([]*entity.LowStockAlert, error)
	Acknowledge(id string) error
}
