package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vitrina-api/internal/application/billing"
	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/domain/subscription"
)

// eventParser es el contrato mínimo que necesita el handler del webhook.
// Lo implementa *stripe.WebhookParser; el uso de interfaz evita acoplar la
// capa HTTP al adaptador de infraestructura.
type eventParser interface {
	Parse(payload []byte, signature string) (*subscription.BillingEvent, error)
}

// BillingHandler maneja la suscripción: checkout, portal, entitlement y el
// webhook del proveedor de pagos.
type BillingHandler struct {
	uc     *billing.UseCase
	parser eventParser
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *billing.UseCase, parser eventParser) *BillingHandler {
	return &BillingHandler{uc: uc, parser: parser}
}

// Subscribe godoc
// @Summary      Iniciar suscripción a un plan
// @Description  Falla cerrado: si el proveedor de pagos no responde, no se inicia nada.
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubscribeRequest  true  "plan: starter | premium"
// @Success      200   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/billing/subscribe [post]
func (h *BillingHandler) Subscribe(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	var in dto.SubscribeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Subscribe(c.Context(), scope, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Portal godoc
// @Summary      Portal de autogestión de facturación
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PortalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/billing/portal [post]
func (h *BillingHandler) Portal(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	out, err := h.uc.Portal(c.Context(), scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Entitlement godoc
// @Summary      Acceso vigente del tenant (derivado del estado almacenado)
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EntitlementResponse
// @Router       /api/me/entitlement [get]
func (h *BillingHandler) Entitlement(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	ent, err := h.uc.Entitlement(scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.EntitlementResponse{
		Plan:            ent.Plan,
		Status:          ent.Status,
		IsActive:        ent.IsActive,
		DaysLeftInTrial: ent.DaysLeftInTrial,
	})
}

// Webhook godoc
// @Summary      Webhook del proveedor de pagos (Stripe)
// @Description  Verifica la firma y aplica el evento. Eventos obsoletos, huérfanos o de tipo desconocido se confirman con 200 sin efecto.
// @Tags         billing
// @Accept       json
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/billing/webhook [post]
func (h *BillingHandler) Webhook(c *fiber.Ctx) error {
	ev, err := h.parser.Parse(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		// Firma inválida o payload malformado: 400 para que el proveedor lo marque fallido.
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_EVENT", Message: "evento inválido o firma incorrecta"})
	}
	if ev == nil {
		// Tipo de evento que no nos interesa: confirmar para evitar reintentos.
		return c.SendStatus(fiber.StatusOK)
	}
	if err := h.uc.HandleEvent(*ev); err != nil {
		// Error de infraestructura: 500 para que el proveedor reintente.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo aplicar el evento"})
	}
	return c.SendStatus(fiber.StatusOK)
}
