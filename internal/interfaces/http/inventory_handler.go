package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/ledger"
	"github.com/jhoicas/Marketplace-api/internal/application/usecase"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

// InventoryHandler maneja los movimientos del libro de stock, las alertas de
// stock bajo y el reporte de auditoría (protegido).
type InventoryHandler struct {
	uc        *ledger.LedgerUseCase
	reportUC  *ledger.ReportUseCase
	productUC *usecase.ProductUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.LedgerUseCase, reportUC *ledger.ReportUseCase, productUC *usecase.ProductUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, reportUC: reportUC, productUC: productUC}
}

// ownProduct verifica que el vendedor autenticado sea dueño del producto.
// Los admin operan sobre cualquier producto.
func (h *InventoryHandler) ownProduct(c *fiber.Ctx, productID string) error {
	if GetRole(c) == entity.RoleAdmin {
		return nil
	}
	product, err := h.productUC.GetByID(productID)
	if err != nil {
		return err
	}
	if product.SellerID != GetUserID(c) {
		return domain.ErrForbidden
	}
	return nil
}

// Deduct godoc
// @Summary      Descontar stock (venta online u offline)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeductRequest  true  "product_id, quantity, reason (ONLINE_SALE|OFFLINE_SALE), reference_id"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/deductions [post]
func (h *InventoryHandler) Deduct(c *fiber.Ctx) error {
	var in dto.DeductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ownProduct(c, in.ProductID); err != nil {
		return domainError(c, err)
	}
	entry, err := h.uc.Deduct(c.Context(), ledger.MovementInput{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		ReferenceID: in.ReferenceID,
		UserID:      GetUserID(c),
		Notes:       in.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLedgerEntryDTO(entry))
}

// Add godoc
// @Summary      Agregar stock (reposición)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/additions [post]
func (h *InventoryHandler) Add(c *fiber.Ctx) error {
	var in dto.AddRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ownProduct(c, in.ProductID); err != nil {
		return domainError(c, err)
	}
	entry, err := h.uc.Add(c.Context(), ledger.MovementInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UserID:    GetUserID(c),
		Notes:     in.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLedgerEntryDTO(entry))
}

// Adjust godoc
// @Summary      Fijar stock en una cantidad (conteo físico)
// @Description  Notes es obligatorio: todo ajuste manual debe explicarse.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "product_id, new_quantity, notes"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ownProduct(c, in.ProductID); err != nil {
		return domainError(c, err)
	}
	entry, err := h.uc.Adjust(c.Context(), ledger.AdjustInput{
		ProductID:   in.ProductID,
		NewQuantity: in.NewQuantity,
		Reason:      in.Reason,
		Notes:       in.Notes,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLedgerEntryDTO(entry))
}

// Reserve godoc
// @Summary      Reservar stock para una orden pendiente de pago
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReservationRequest  true  "product_id, quantity, order_id"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations [post]
func (h *InventoryHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ownProduct(c, in.ProductID); err != nil {
		return domainError(c, err)
	}
	entry, err := h.uc.Reserve(c.Context(), in.ProductID, in.Quantity, in.OrderID, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLedgerEntryDTO(entry))
}

// Release godoc
// @Summary      Liberar stock reservado (orden cancelada o expirada)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReservationRequest  true  "product_id, quantity, order_id"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/releases [post]
func (h *InventoryHandler) Release(c *fiber.Ctx) error {
	var in dto.ReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ownProduct(c, in.ProductID); err != nil {
		return domainError(c, err)
	}
	entry, err := h.uc.Release(c.Context(), in.ProductID, in.Quantity, in.OrderID, GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLedgerEntryDTO(entry))
}

// GetLedgerByProduct godoc
// @Summary      Historial del libro de stock de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Product ID"
// @Param        limit   query  int     false  "máx. resultados"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/ledger [get]
func (h *InventoryHandler) GetLedgerByProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.ownProduct(c, productID); err != nil {
		return domainError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	entries, err := h.uc.GetLedgerByProduct(c.Context(), productID, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "entries": toLedgerEntryDTOs(entries)})
}

// GetRecent godoc
// @Summary      Movimientos recientes del libro (admin)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máx. resultados (tope 200)"
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/inventory/ledger [get]
func (h *InventoryHandler) GetRecent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	entries, err := h.uc.GetRecentLedgerEntries(c.Context(), limit)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(entries), "entries": toLedgerEntryDTOs(entries)})
}

// ListAlerts godoc
// @Summary      Alertas de stock bajo sin reconocer del vendedor
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockAlertResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) ListAlerts(c *fiber.Ctx) error {
	alerts, err := h.uc.ListAlerts(c.Context(), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(alerts), "alerts": toAlertDTOs(alerts)})
}

// AcknowledgeAlert godoc
// @Summary      Reconocer una alerta de stock bajo
// @Description  Reconocer no borra la alerta ni repone stock: solo la marca
//
//	como atendida. Si el stock vuelve a cruzar el umbral después,
//	se crea una alerta nueva.
//
// @Tags         inventory
// @Security     Bearer
// @Param        id  path  string  true  "Alert ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id}/ack [post]
func (h *InventoryHandler) AcknowledgeAlert(c *fiber.Ctx) error {
	if err := h.uc.AcknowledgeAlert(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LedgerReport godoc
// @Summary      Reporte PDF del libro de stock de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Product ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/ledger/report [get]
func (h *InventoryHandler) LedgerReport(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.ownProduct(c, productID); err != nil {
		return domainError(c, err)
	}
	pdfBytes, err := h.reportUC.GenerateLedgerReport(c.Context(), productID)
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-ledger.pdf"`)
	return c.Send(pdfBytes)
}
