package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/application/qa"
)

// QAHandler maneja el flujo de aprobación de productos: envío del vendedor,
// decisiones del equipo QA y consulta de estado.
type QAHandler struct {
	uc *qa.QAUseCase
}

// NewQAHandler construye el handler.
func NewQAHandler(uc *qa.QAUseCase) *QAHandler {
	return &QAHandler{uc: uc}
}

// Submit godoc
// @Summary      Enviar producto a revisión QA (vendedor)
// @Description  Crea la evaluación en PENDING_DIGITAL_REVIEW. Un producto solo
//
//	puede tener una evaluación activa a la vez.
//
// @Tags         qa
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitForReviewRequest  true  "product_id"
// @Success      201   {object}  dto.QAAssessmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/qa/submissions [post]
func (h *QAHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitForReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	a, err := h.uc.SubmitForReview(c.Context(), in.ProductID)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAssessmentDTO(a))
}

// ApproveForSample godoc
// @Summary      Aprobar revisión digital y pedir muestra física (QA)
// @Tags         qa
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Assessment ID"
// @Success      200  {object}  dto.QAAssessmentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/qa/assessments/{id}/approve-for-sample [post]
func (h *QAHandler) ApproveForSample(c *fiber.Ctx) error {
	a, err := h.uc.ApproveForSample(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toAssessmentDTO(a))
}

// SubmitSample godoc
// @Summary      Registrar envío de la muestra física (vendedor)
// @Description  Requiere el método logístico del envío.
// @Tags         qa
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Assessment ID"
// @Param        body  body  dto.SubmitSampleRequest true  "logistics_method"
// @Success      200   {object}  dto.QAAssessmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/qa/assessments/{id}/sample [post]
func (h *QAHandler) SubmitSample(c *fiber.Ctx) error {
	var in dto.SubmitSampleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	a, err := h.uc.SubmitSample(c.Context(), c.Params("id"), in.LogisticsMethod)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toAssessmentDTO(a))
}

// PassQualityCheck godoc
// @Summary      Aprobar inspección física: producto verificado (QA)
// @Description  Deja la evaluación en ACTIVE_VERIFIED y sincroniza la
//
//	aprobación del producto a approved en la misma transacción.
//
// @Tags         qa
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Assessment ID"
// @Success      200  {object}  dto.QAAssessmentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/qa/assessments/{id}/pass [post]
func (h *QAHandler) PassQualityCheck(c *fiber.Ctx) error {
	a, err := h.uc.PassQualityCheck(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toAssessmentDTO(a))
}

// Reject godoc
// @Summary      Rechazar el producto (QA)
// @Description  El motivo es obligatorio. Estado terminal: el vendedor debe
//
//	iniciar una evaluación nueva para volver a intentarlo.
//
// @Tags         qa
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "Assessment ID"
// @Param        body  body  dto.QADecisionRequest true  "reason, stage (digital|physical)"
// @Success      200   {object}  dto.QAAssessmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/qa/assessments/{id}/reject [post]
func (h *QAHandler) Reject(c *fiber.Ctx) error {
	var in dto.QADecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	a, err := h.uc.Reject(c.Context(), c.Params("id"), in.Reason, in.Stage)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toAssessmentDTO(a))
}

// RequestRevision godoc
// @Summary      Solicitar correcciones al vendedor (QA)
// @Description  El motivo es obligatorio. A diferencia del rechazo, la
//
//	evaluación queda en FOR_REVISION y puede reenviarse corregida.
//
// @Tags         qa
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "Assessment ID"
// @Param        body  body  dto.QADecisionRequest true  "reason, stage (digital|physical)"
// @Success      200   {object}  dto.QAAssessmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/qa/assessments/{id}/request-revision [post]
func (h *QAHandler) RequestRevision(c *fiber.Ctx) error {
	var in dto.QADecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	a, err := h.uc.RequestRevision(c.Context(), c.Params("id"), in.Reason, in.Stage)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toAssessmentDTO(a))
}

// Resubmit godoc
// @Summary      Reenviar evaluación corregida (vendedor)
// @Tags         qa
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Assessment ID"
// @Success      200  {object}  dto.QAAssessmentResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/qa/assessments/{id}/resubmit [post]
func (h *QAHandler) Resubmit(c *fiber.Ctx) error {
	a, err := h.uc.ResubmitAfterRevision(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toAssessmentDTO(a))
}

// GetByProduct godoc
// @Summary      Evaluación activa de un producto
// @Tags         qa
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  dto.QAAssessmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/qa/products/{id}/assessment [get]
func (h *QAHandler) GetByProduct(c *fiber.Ctx) error {
	a, err := h.uc.GetAssessment(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toAssessmentDTO(a))
}

// ListByStatus godoc
// @Summary      Cola de evaluaciones por estado (QA)
// @Description  Orden FIFO: las más antiguas primero.
// @Tags         qa
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  true   "estado de la evaluación"
// @Param        limit   query  int     false  "máx. resultados"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.QAAssessmentResponse
// @Router       /api/qa/assessments [get]
func (h *QAHandler) ListByStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListByStatus(c.Context(), status, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "assessments": toAssessmentDTOs(list)})
}
