package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
)

// MovementSummary totales agregados de movimientos en un período (reportes starter).
type MovementSummary struct {
	SalesCount     int
	SalesTotal     decimal.Decimal
	PurchasesCount int
	PurchasesTotal decimal.Decimal
}

// MovementRepository define el puerto de persistencia para Movement (DIP).
type MovementRepository interface {
	Create(scope domain.Scope, movement *entity.Movement) error
	GetByID(scope domain.Scope, id string) (*entity.Movement, error)
	List(scope domain.Scope, limit, offset int) ([]*entity.Movement, error)
	SummaryByPeriod(scope domain.Scope, from, to time.Time) (*MovementSummary, error)
}
