package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest registra una venta: movimiento de inventario más,
// opcionalmente, un plan de cuotas (Installments > 0, requiere cliente).
type CreateSaleRequest struct {
	ProductID    string           `json:"product_id"`
	Quantity     int              `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"` // nil = precio actual del producto
	CustomerID   *string          `json:"customer_id"`
	Installments int              `json:"installments"`   // 0 = contado
	FirstDueDate *time.Time       `json:"first_due_date"` // vencimiento de la primera cuota
}

// MovementResponse representación de salida de un movimiento.
type MovementResponse struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Total      decimal.Decimal `json:"total"`
	CustomerID *string         `json:"customer_id,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// InstallmentResponse representación de salida de una cuota.
type InstallmentResponse struct {
	ID                string          `json:"id"`
	CustomerID        string          `json:"customer_id"`
	MovementID        string          `json:"movement_id"`
	Number            int             `json:"number"`
	TotalInstallments int             `json:"total_installments"`
	Amount            decimal.Decimal `json:"amount"`
	DueDate           time.Time       `json:"due_date"`
	Status            string          `json:"status"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
}

// SaleResponse venta registrada: movimiento + plan de cuotas (si aplica).
type SaleResponse struct {
	Movement     MovementResponse      `json:"movement"`
	Installments []InstallmentResponse `json:"installments,omitempty"`
}

// InstallmentListResponse listado paginado de cuotas.
type InstallmentListResponse struct {
	Items []InstallmentResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ReportSummaryResponse totales de movimientos en un período (reportes starter).
type ReportSummaryResponse struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	SalesCount     int             `json:"sales_count"`
	SalesTotal     decimal.Decimal `json:"sales_total"`
	PurchasesCount int             `json:"purchases_count"`
	PurchasesTotal decimal.Decimal `json:"purchases_total"`
}
