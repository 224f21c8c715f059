package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(scope domain.Scope, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, tenant_id, name, contact, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, scope.TenantID(), s.Name, s.Contact, s.Phone, s.Email, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID dentro del tenant.
func (r *SupplierRepo) GetByID(scope domain.Scope, id string) (*entity.Supplier, error) {
	query := `
		SELECT id, tenant_id, name, contact, phone, email, created_at, updated_at
		FROM suppliers WHERE tenant_id = $1 AND id = $2`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, scope.TenantID(), id).Scan(
		&s.ID, &s.TenantID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Update actualiza un proveedor existente.
func (r *SupplierRepo) Update(scope domain.Scope, s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $3, contact = $4, phone = $5, email = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		scope.TenantID(), s.ID, s.Name, s.Contact, s.Phone, s.Email, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// List lista proveedores del tenant con paginación.
func (r *SupplierRepo) List(scope domain.Scope, limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT id, tenant_id, name, contact, phone, email, created_at, updated_at
		FROM suppliers WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, scope.TenantID(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un proveedor del tenant.
func (r *SupplierRepo) Delete(scope domain.Scope, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM suppliers WHERE tenant_id = $1 AND id = $2`, scope.TenantID(), id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}
