package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/domain/subscription"
	"github.com/jhoicas/Vitrina-api/pkg/jwt"
)

// RequireFeature devuelve un middleware Fiber que verifica si el tenant del
// token tiene acceso a la feature. Debe usarse DESPUÉS de AuthMiddleware.
//
// La decisión se deriva del snapshot del token: función pura, sin consultar la
// DB ni al proveedor de pagos en el camino de la petición. El snapshot puede
// quedar desactualizado hasta la re-emisión del token; la ventana es acotada
// por la expiración del JWT.
//
// Comportamiento:
//   - 402 Payment Required → suscripción vencida o feature fuera del plan,
//     con invitación a mejorar el plan.
//   - Si no hay tenant en el contexto, responde 401.
func RequireFeature(feature subscription.Feature) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetTenantID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "tenant_id no encontrado en el token",
			})
		}

		snap := GetSnapshot(c)
		ent := subscription.Derive(fieldsFromSnapshot(snap), time.Now().UTC())
		if !ent.CanUse(feature) {
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{
				Code:    "UPGRADE_REQUIRED",
				Message: "tu plan no incluye '" + string(feature) + "'; mejora tu plan para desbloquearla",
			})
		}

		return c.Next()
	}
}

// GetEntitlement deriva el entitlement vigente a partir del snapshot del token.
// Para handlers que validan features de forma condicional (según el payload)
// en lugar de por ruta.
func GetEntitlement(c *fiber.Ctx) subscription.Entitlement {
	return subscription.Derive(fieldsFromSnapshot(GetSnapshot(c)), time.Now().UTC())
}

// fieldsFromSnapshot traduce el snapshot del token (timestamps unix, 0 = sin
// valor) a los campos de derivación del dominio.
func fieldsFromSnapshot(snap jwt.Snapshot) subscription.Fields {
	f := subscription.Fields{
		Plan:   snap.Plan,
		Status: snap.Status,
	}
	if snap.TrialEndsAt > 0 {
		t := time.Unix(snap.TrialEndsAt, 0).UTC()
		f.TrialEndsAt = &t
	}
	if snap.CurrentPeriodEnd > 0 {
		t := time.Unix(snap.CurrentPeriodEnd, 0).UTC()
		f.CurrentPeriodEnd = &t
	}
	return f
}
