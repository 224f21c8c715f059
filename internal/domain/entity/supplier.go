package entity

import "time"

// Supplier representa un proveedor de mercancía del tenant.
type Supplier struct {
	ID        string
	TenantID  string
	Name      string
	Contact   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
