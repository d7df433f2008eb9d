package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/ledger"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// OrderHandler maneja el checkout y la consulta de órdenes del comprador.
type OrderHandler struct {
	checkoutUC *ledger.CheckoutUseCase
	orderRepo  repository.OrderRepository
}

// NewOrderHandler construye el handler.
func NewOrderHandler(checkoutUC *ledger.CheckoutUseCase, orderRepo repository.OrderRepository) *OrderHandler {
	return &OrderHandler{checkoutUC: checkoutUC, orderRepo: orderRepo}
}

// Checkout godoc
// @Summary      Confirmar compra multi-ítem (comprador)
// @Description  Descuenta el stock de todos los renglones en una sola
//
//	transacción: si algún producto no tiene stock suficiente, no
//	se descuenta ninguno y la orden no se crea.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "items: [{product_id, quantity}]"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/checkout [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items no puede estar vacío"})
	}
	items := make([]ledger.CheckoutItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, ledger.CheckoutItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	order, err := h.checkoutUC.Checkout(c.Context(), GetUserID(c), items)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderDTO(order))
}

// GetByID godoc
// @Summary      Obtener una orden propia
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.orderRepo.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if order == nil || order.BuyerID != GetUserID(c) {
		return domainError(c, domain.ErrNotFound)
	}
	return c.JSON(toOrderDTO(order))
}

// ListMine godoc
// @Summary      Listar mis órdenes (comprador)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. resultados"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	orders, err := h.orderRepo.ListByBuyer(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDTO(o))
	}
	return c.JSON(fiber.Map{"total": len(out), "orders": out})
}
