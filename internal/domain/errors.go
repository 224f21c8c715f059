package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// ErrNotFound cubre también el acceso cruzado entre tenants: un registro de otro
// tenant se responde igual que un registro inexistente, sin filtrar su existencia.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrTenantNotFound      = errors.New("cuenta no encontrada")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrEntitlementDenied   = errors.New("la función requiere un plan superior o una suscripción activa")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrUpstreamUnavailable = errors.New("proveedor de pagos no disponible")
	ErrInsufficientStock   = errors.New("stock insuficiente")
)
