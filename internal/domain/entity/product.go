package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de un tenant.
// SKU es único por tenant cuando está presente; el stock se ajusta vía movimientos.
type Product struct {
	ID          string
	TenantID    string
	SKU         string // opcional; único por tenant si no está vacío
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	SupplierID  *string // referencia opcional a Supplier
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
