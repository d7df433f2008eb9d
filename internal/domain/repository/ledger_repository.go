package repository

import "github.com/jhoicas/Marketplace-api/internal/domain/entity"

// LedgerRepository puerto de persistencia del ledger de stock (append-only).
// Las entradas nunca se actualizan ni se borran.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	// ListByProduct devuelve las entradas de un producto ordenadas por fecha de
	// commit descendente (la reproducción en orden reconstruye el stock vivo).
	ListByProduct(productID string, limit, offset int) ([]*entity.LedgerEntry, error)
	ListRecent(limit int) ([]*entity.LedgerEntry, error)
}
