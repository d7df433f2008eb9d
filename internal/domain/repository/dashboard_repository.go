package repository

import "context"

// SellerDashboard contadores agregados del panel del vendedor.
type SellerDashboard struct {
	TotalProducts        int
	ApprovedProducts     int
	PendingQA            int
	UnacknowledgedAlerts int
	DeductionsToday      int
}

// DashboardRepository consultas agregadas de solo lectura para el panel.
type DashboardRepository interface {
	GetSellerDashboard(ctx context.Context, sellerID string) (*SellerDashboard, error)
}
