package entity

import "time"

// Customer representa un cliente del tenant (gestión de clientes, plan premium).
type Customer struct {
	ID        string
	TenantID  string
	Name      string
	Phone     string
	Email     string
	Document  string // cédula / NIT / documento de identidad
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
