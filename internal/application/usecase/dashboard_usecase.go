package usecase

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// DashboardUseCase panel del vendedor: contadores agregados de productos,
// cola de QA, alertas sin reconocer y ventas del día.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetSellerDashboard devuelve los contadores del vendedor.
func (uc *DashboardUseCase) GetSellerDashboard(ctx context.Context, sellerID string) (*dto.SellerDashboardResponse, error) {
	d, err := uc.repo.GetSellerDashboard(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return &dto.SellerDashboardResponse{
		TotalProducts:        d.TotalProducts,
		ApprovedProducts:     d.ApprovedProducts,
		PendingQA:            d.PendingQA,
		UnacknowledgedAlerts: d.UnacknowledgedAlerts,
		DeductionsToday:      d.DeductionsToday,
	}, nil
}
