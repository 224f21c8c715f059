package domain

// Scope es la capacidad que delimita toda operación de datos a un único tenant.
// Se construye solo en el borde autenticado (middleware) a partir del token,
// nunca desde input del cliente, y todo puerto de persistencia sobre registros
// de tenant la exige como parámetro: la convención pasa a ser contrato.
type Scope struct {
	tenantID string
}

// NewScope construye el scope a partir del tenant autenticado.
// Devuelve ErrUnauthorized si el id viene vacío.
func NewScope(tenantID string) (Scope, error) {
	if tenantID == "" {
		return Scope{}, ErrUnauthorized
	}
	return Scope{tenantID: tenantID}, nil
}

// TenantID devuelve el id del tenant dueño del scope.
func (s Scope) TenantID() string { return s.tenantID }

// IsZero informa si el scope no fue construido vía NewScope.
func (s Scope) IsZero() bool { return s.tenantID == "" }
