package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cuota.
const (
	InstallmentPending = "pending"
	InstallmentPaid    = "paid"
	InstallmentOverdue = "overdue"
)

// PaymentInstallment representa una cuota del plan de pagos de una venta (plan premium).
// El conjunto de cuotas de una venta se crea de forma atómica: nunca queda
// visible un plan de pagos parcial.
type PaymentInstallment struct {
	ID                string
	TenantID          string
	CustomerID        string
	MovementID        string
	Number            int // 1..TotalInstallments
	TotalInstallments int
	Amount            decimal.Decimal
	DueDate           time.Time
	Status            string // ver constantes Installment*
	PaidAt            *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
