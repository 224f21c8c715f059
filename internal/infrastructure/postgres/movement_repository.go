package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, tenant_id, type, product_id, quantity, unit_price, total, customer_id, occurred_at, created_at, updated_at`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(scope domain.Scope, m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, scope.TenantID(), m.Type, m.ProductID, m.Quantity, m.UnitPrice, m.Total, m.CustomerID, m.OccurredAt, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID dentro del tenant.
func (r *MovementRepo) GetByID(scope domain.Scope, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE tenant_id = $1 AND id = $2`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, scope.TenantID(), id).Scan(
		&m.ID, &m.TenantID, &m.Type, &m.ProductID, &m.Quantity, &m.UnitPrice, &m.Total, &m.CustomerID, &m.OccurredAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// List lista movimientos del tenant, más recientes primero.
func (r *MovementRepo) List(scope domain.Scope, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE tenant_id = $1 ORDER BY occurred_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, scope.TenantID(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Type, &m.ProductID, &m.Quantity, &m.UnitPrice, &m.Total, &m.CustomerID, &m.OccurredAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SummaryByPeriod agrega ventas y compras del tenant en el período [from, to).
// COALESCE evita nulos cuando no hay movimientos del tipo.
func (r *MovementRepo) SummaryByPeriod(scope domain.Scope, from, to time.Time) (*repository.MovementSummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE type = 'sale'),
			COALESCE(SUM(total) FILTER (WHERE type = 'sale'), 0),
			COUNT(*) FILTER (WHERE type = 'purchase'),
			COALESCE(SUM(total) FILTER (WHERE type = 'purchase'), 0)
		FROM movements
		WHERE tenant_id = $1 AND occurred_at >= $2 AND occurred_at < $3`
	var s repository.MovementSummary
	var salesTotal, purchasesTotal decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, scope.TenantID(), from, to).Scan(
		&s.SalesCount, &salesTotal, &s.PurchasesCount, &purchasesTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("summary movements: %w", err)
	}
	s.SalesTotal = salesTotal
	s.PurchasesTotal = purchasesTotal
	return &s, nil
}
