package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, product_id, product_name, current_stock, threshold, acknowledged, created_at`

// AlertRepo implementación de alertas de stock bajo sobre PostgreSQL (usable con pool o tx).
// La deduplicación (una sola alerta sin reconocer por producto) la garantiza el
// caso de uso: consulta GetUnacknowledged con la fila del producto bloqueada
// antes de crear.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create persiste una alerta nueva.
func (r *AlertRepo) Create(alert *entity.LowStockAlert) error {
	query := `
		INSERT INTO low_stock_alerts (id, product_id, product_name, current_stock, threshold, acknowledged, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.ProductID, alert.ProductName, alert.CurrentStock,
		alert.Threshold, alert.Acknowledged, alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create low stock alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID.
func (r *AlertRepo) GetByID(id string) (*entity.LowStockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM low_stock_alerts WHERE id = $1`
	return scanAlert(r.q.QueryRow(context.Background(), query, id))
}

// GetUnacknowledged devuelve la alerta sin reconocer del producto, o nil.
func (r *AlertRepo) GetUnacknowledged(productID string) (*entity.LowStockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM low_stock_alerts WHERE product_id = $1 AND NOT acknowledged`
	return scanAlert(r.q.QueryRow(context.Background(), query, productID))
}

// ListUnacknowledgedBySeller lista las alertas sin reconocer de los productos del vendedor.
func (r *AlertRepo) ListUnacknowledgedBySeller(sellerID string) ([]*entity.LowStockAlert, error) {
	query := `
		SELECT a.id, a.product_id, a.product_name, a.current_stock, a.threshold, a.acknowledged, a.created_at
		FROM low_stock_alerts a
		JOIN products p ON p.id = a.product_id
		WHERE p.seller_id = $1 AND NOT a.acknowledged
		ORDER BY a.created_at DESC`
	rows, err := r.q.Query(context.Background(), query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list alerts by seller: %w", err)
	}
	defer rows.Close()
	var list []*entity.LowStockAlert
	for rows.Next() {
		var a entity.LowStockAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.ProductName, &a.CurrentStock,
			&a.Threshold, &a.Acknowledged, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Acknowledge marca la alerta como atendida.
func (r *AlertRepo) Acknowledge(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE low_stock_alerts SET acknowledged = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("acknowledge alert: %w", err)
	}
	return nil
}

func scanAlert(row pgx.Row) (*entity.LowStockAlert, error) {
	var a entity.LowStockAlert
	err := row.Scan(&a.ID, &a.ProductID, &a.ProductName, &a.CurrentStock,
		&a.Threshold, &a.Acknowledged, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return &a, nil
}
