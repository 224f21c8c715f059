package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementSale       = "sale"
	MovementPurchase   = "purchase"
	MovementAdjustment = "adjustment"
)

// Movement representa un movimiento de inventario del tenant (venta, compra o ajuste).
// Una venta puede llevar asociado un plan de cuotas (PaymentInstallment).
type Movement struct {
	ID         string
	TenantID   string
	Type       string // ver constantes Movement*
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	Total      decimal.Decimal
	CustomerID *string // opcional: cliente asociado a la venta
	OccurredAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
