package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

const ledgerColumns = `id, product_id, change_type, reason, quantity_before, quantity_change, quantity_after, reference_id, user_id, notes, created_at`

// LedgerRepo implementación del ledger de stock sobre PostgreSQL (usable con pool o tx).
// La tabla stock_ledger es append-only: no existen UPDATE ni DELETE.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create persiste una entrada del ledger.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_ledger (id, product_id, change_type, reason, quantity_before, quantity_change, quantity_after, reference_id, user_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	userID := (*string)(nil)
	if entry.UserID != "" {
		userID = &entry.UserID
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, entry.ChangeType, entry.Reason,
		entry.QuantityBefore, entry.QuantityChange, entry.QuantityAfter,
		entry.ReferenceID, userID, entry.Notes, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// ListByProduct lista las entradas de un producto, más recientes primero.
func (r *LedgerRepo) ListByProduct(productID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM stock_ledger WHERE product_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger by product: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

// ListRecent lista las entradas más recientes de todos los productos.
func (r *LedgerRepo) ListRecent(limit int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM stock_ledger
		ORDER BY created_at DESC, id DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent ledger: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

func scanLedgerEntries(rows pgx.Rows) ([]*entity.LedgerEntry, error) {
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var userID *string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.ChangeType, &e.Reason,
			&e.QuantityBefore, &e.QuantityChange, &e.QuantityAfter,
			&e.ReferenceID, &userID, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		if userID != nil {
			e.UserID = *userID
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
