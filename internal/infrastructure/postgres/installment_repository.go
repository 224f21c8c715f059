package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
)

var _ repository.InstallmentRepository = (*InstallmentRepo)(nil)

const installmentColumns = `id, tenant_id, customer_id, movement_id, number, total_installments, amount, due_date, status, paid_at, created_at, updated_at`

// InstallmentRepo implementación del puerto InstallmentRepository sobre PostgreSQL.
type InstallmentRepo struct {
	q Querier
}

// NewInstallmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInstallmentRepository(q Querier) *InstallmentRepo {
	return &InstallmentRepo{q: q}
}

// CreateSet inserta todas las cuotas del plan. Llamado dentro de la transacción
// de la venta: si una inserción falla, la transacción revierte el plan completo.
func (r *InstallmentRepo) CreateSet(scope domain.Scope, installments []*entity.PaymentInstallment) error {
	query := `
		INSERT INTO installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, i := range installments {
		_, err := r.q.Exec(context.Background(), query,
			i.ID, scope.TenantID(), i.CustomerID, i.MovementID, i.Number, i.TotalInstallments,
			i.Amount, i.DueDate, i.Status, i.PaidAt, i.CreatedAt, i.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert installment %d: %w", i.Number, err)
		}
	}
	return nil
}

// GetByID obtiene una cuota por ID dentro del tenant.
func (r *InstallmentRepo) GetByID(scope domain.Scope, id string) (*entity.PaymentInstallment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE tenant_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, scope.TenantID(), id))
}

// ListByMovement lista las cuotas de una venta, en orden de número.
func (r *InstallmentRepo) ListByMovement(scope domain.Scope, movementID string) ([]*entity.PaymentInstallment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installments WHERE tenant_id = $1 AND movement_id = $2 ORDER BY number`
	rows, err := r.q.Query(context.Background(), query, scope.TenantID(), movementID)
	if err != nil {
		return nil, fmt.Errorf("list installments by movement: %w", err)
	}
	return r.scanMany(rows)
}

// ListByCustomer lista las cuotas de un cliente, próximas a vencer primero.
func (r *InstallmentRepo) ListByCustomer(scope domain.Scope, customerID string, limit, offset int) ([]*entity.PaymentInstallment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY due_date ASC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, scope.TenantID(), customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list installments by customer: %w", err)
	}
	return r.scanMany(rows)
}

// MarkPaid marca una cuota como pagada y retorna el registro actualizado.
func (r *InstallmentRepo) MarkPaid(scope domain.Scope, id string) (*entity.PaymentInstallment, error) {
	now := time.Now().UTC()
	query := `
		UPDATE installments SET status = $3, paid_at = $4, updated_at = $4
		WHERE tenant_id = $1 AND id = $2
		RETURNING ` + installmentColumns
	return r.scanOne(r.q.QueryRow(context.Background(), query, scope.TenantID(), id, entity.InstallmentPaid, now))
}

func (r *InstallmentRepo) scanOne(row pgx.Row) (*entity.PaymentInstallment, error) {
	var i entity.PaymentInstallment
	err := row.Scan(
		&i.ID, &i.TenantID, &i.CustomerID, &i.MovementID, &i.Number, &i.TotalInstallments,
		&i.Amount, &i.DueDate, &i.Status, &i.PaidAt, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan installment: %w", err)
	}
	return &i, nil
}

func (r *InstallmentRepo) scanMany(rows pgx.Rows) ([]*entity.PaymentInstallment, error) {
	defer rows.Close()
	var list []*entity.PaymentInstallment
	for rows.Next() {
		var i entity.PaymentInstallment
		if err := rows.Scan(
			&i.ID, &i.TenantID, &i.CustomerID, &i.MovementID, &i.Number, &i.TotalInstallments,
			&i.Amount, &i.DueDate, &i.Status, &i.PaidAt, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
