package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
)

// DashboardHandler panel de resumen del vendedor.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSellerDashboard godoc
// @Summary      Panel del vendedor
// @Description  Contadores de productos, evaluaciones QA pendientes, alertas
//
//	sin reconocer y deducciones del día.
//
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SellerDashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSellerDashboard(c *fiber.Ctx) error {
	out, err := h.uc.GetSellerDashboard(c.Context(), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
