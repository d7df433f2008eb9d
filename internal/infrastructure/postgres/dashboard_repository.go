package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas del panel del vendedor (solo lectura).
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// GetSellerDashboard calcula los contadores del vendedor en una sola consulta.
func (r *DashboardRepo) GetSellerDashboard(ctx context.Context, sellerID string) (*repository.SellerDashboard, error) {
	query := `
		SELECT
			(SELECT count(*) FROM products WHERE seller_id = $1 AND deleted_at IS NULL),
			(SELECT count(*) FROM products WHERE seller_id = $1 AND deleted_at IS NULL AND approval_status = $2),
			(SELECT count(*) FROM qa_assessments WHERE seller_id = $1 AND status NOT IN ($3, $4)),
			(SELECT count(*) FROM low_stock_alerts a JOIN products p ON p.id = a.product_id
				WHERE p.seller_id = $1 AND NOT a.acknowledged),
			(SELECT count(*) FROM stock_ledger l JOIN products p ON p.id = l.product_id
				WHERE p.seller_id = $1 AND l.change_type = $5 AND l.created_at >= date_trunc('day', now()))`
	var d repository.SellerDashboard
	err := r.q.QueryRow(ctx, query, sellerID,
		entity.ApprovalApproved, entity.QAActiveVerified, entity.QARejected, entity.ChangeDeduction,
	).Scan(&d.TotalProducts, &d.ApprovedProducts, &d.PendingQA, &d.UnacknowledgedAlerts, &d.DeductionsToday)
	if err != nil {
		return nil, fmt.Errorf("seller dashboard: %w", err)
	}
	return &d, nil
}
