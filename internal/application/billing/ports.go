package billing

import "context"

// Provider es el puerto hacia el proveedor externo de suscripciones (Stripe).
// El adaptador vive en infrastructure; todos los métodos pueden fallar con
// domain.ErrUpstreamUnavailable, y las escrituras fallan CERRADO: si el
// proveedor no responde, no se inicia ni se cambia ninguna suscripción.
type Provider interface {
	// EnsureCustomer devuelve el customer ref del tenant, creándolo si no existe.
	EnsureCustomer(ctx context.Context, tenantID, email string) (string, error)
	// CheckoutURL abre una sesión de checkout de suscripción para el plan dado.
	CheckoutURL(ctx context.Context, customerRef, plan string) (string, error)
	// PortalURL abre una sesión del portal de autogestión de facturación.
	PortalURL(ctx context.Context, customerRef string) (string, error)
}
