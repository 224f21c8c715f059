package dto

// SubscribeRequest inicia o cambia la suscripción a un plan.
type SubscribeRequest struct {
	Plan string `json:"plan"` // "starter" | "premium"
}

// CheckoutResponse URL de checkout del proveedor de pagos.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// PortalResponse URL del portal de autogestión de facturación.
type PortalResponse struct {
	URL string `json:"url"`
}
