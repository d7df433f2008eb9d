package repository

import "github.com/jhoicas/Marketplace-api/internal/domain/entity"

// OrderRepository puerto de persistencia de órdenes del checkout.
type OrderRepository interface {
	// Create persiste la orden y sus renglones.
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	ListByBuyer(buyerID string, limit, offset int) ([]*entity.Order, error)
}
