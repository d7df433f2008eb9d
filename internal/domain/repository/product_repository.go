package repository

import "github.com/jhoicas/Marketplace-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos del marketplace.
// Stock y ApprovalStatus solo se actualizan desde los casos de uso de ledger y QA.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
	// Usar únicamente dentro de una transacción del TxRunner.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija el campo stock. Solo el motor de ledger debe invocarlo.
	UpdateStock(id string, stock int) error
	// UpdateApprovalStatus fija el estado de aprobación visible al comprador.
	// Solo el puente de sincronización de QA debe invocarlo.
	UpdateApprovalStatus(id string, status string) error
	ListBySeller(sellerID string, limit, offset int) ([]*entity.Product, error)
	// ListApproved lista productos visibles en el catálogo; nameFilter ya viene
	// normalizado (minúsculas, sin acentos) por el caso de uso.
	ListApproved(nameFilter string, limit, offset int) ([]*entity.Product, error)
	// SoftDelete marca el producto como eliminado sin borrar la fila
	// (las entradas de ledger lo siguen referenciando).
	SoftDelete(id string) error
}
