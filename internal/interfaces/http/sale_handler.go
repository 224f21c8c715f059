package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/application/sales"
)

// SaleHandler maneja las ventas y sus planes de cuotas (protegido).
type SaleHandler struct {
	uc      *sales.UseCase
	booklet *sales.BookletUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase, booklet *sales.BookletUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, booklet: booklet}
}

// Create godoc
// @Summary      Registrar venta (con plan de cuotas opcional)
// @Description  Movimiento de inventario, descuento de stock y plan de cuotas se persisten en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y quantity > 0 son requeridos"})
	}
	out, err := h.uc.CreateSale(c.Context(), scope, GetEntitlement(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Booklet godoc
// @Summary      Carné de pagos (PDF) de una venta a cuotas
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del movimiento de venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/booklet [get]
func (h *SaleHandler) Booklet(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	pdfBytes, err := h.booklet.Generate(scope, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="carne-pagos.pdf"`)
	return c.Send(pdfBytes)
}

// ListInstallmentsByCustomer godoc
// @Summary      Cuotas de un cliente
// @Tags         installments
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del cliente"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.InstallmentListResponse
// @Router       /api/customers/{id}/installments [get]
func (h *SaleHandler) ListInstallmentsByCustomer(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListInstallmentsByCustomer(scope, c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PayInstallment godoc
// @Summary      Marcar cuota como pagada
// @Tags         installments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cuota"
// @Success      200  {object}  dto.InstallmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/installments/{id}/pay [post]
func (h *SaleHandler) PayInstallment(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	out, err := h.uc.PayInstallment(scope, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
