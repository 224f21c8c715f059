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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, tenant_id, sku, name, description, price, stock, supplier_id, image_url, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Toda consulta filtra por tenant_id del Scope: un registro ajeno es, para este
// adaptador, un registro que no existe.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(scope domain.Scope, p *entity.Product) error {
	query := `
		INSERT INTO products (id, tenant_id, sku, name, description, price, stock, supplier_id, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, scope.TenantID(), nullIfEmpty(p.SKU), p.Name, p.Description,
		p.Price, p.Stock, p.SupplierID, p.ImageURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID dentro del tenant.
func (r *ProductRepo) GetByID(scope domain.Scope, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, scope.TenantID(), id))
}

// GetBySKU obtiene un producto por SKU dentro del tenant.
func (r *ProductRepo) GetBySKU(scope domain.Scope, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, scope.TenantID(), sku))
}

// GetByIDs obtiene los productos del tenant cuyos IDs estén en la lista.
// IDs ajenos o inexistentes simplemente no vienen en el resultado.
func (r *ProductRepo) GetByIDs(scope domain.Scope, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND id = ANY($2)`
	rows, err := r.q.Query(context.Background(), query, scope.TenantID(), ids)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Update actualiza un producto existente. No modifica Stock (se maneja vía movimientos).
func (r *ProductRepo) Update(scope domain.Scope, p *entity.Product) error {
	query := `
		UPDATE products SET sku = $3, name = $4, description = $5, price = $6, supplier_id = $7, image_url = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		scope.TenantID(), p.ID, nullIfEmpty(p.SKU), p.Name, p.Description, p.Price, p.SupplierID, p.ImageURL, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// AdjustStock suma delta al stock del producto, sin permitir stock negativo.
func (r *ProductRepo) AdjustStock(scope domain.Scope, productID string, delta int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock + $3, updated_at = now()
		 WHERE tenant_id = $1 AND id = $2 AND stock + $3 >= 0`,
		scope.TenantID(), productID, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// List lista productos del tenant con paginación.
func (r *ProductRepo) List(scope domain.Scope, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, scope.TenantID(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Delete elimina un producto del tenant.
func (r *ProductRepo) Delete(scope domain.Scope, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM products WHERE tenant_id = $1 AND id = $2`, scope.TenantID(), id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var sku *string
	err := row.Scan(&p.ID, &p.TenantID, &sku, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.SupplierID, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if sku != nil {
		p.SKU = *sku
	}
	return &p, nil
}

func (r *ProductRepo) scanMany(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var sku *string
		if err := rows.Scan(&p.ID, &p.TenantID, &sku, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.SupplierID, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if sku != nil {
			p.SKU = *sku
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// nullIfEmpty deja NULL los SKU vacíos para que el unique parcial por tenant no choque.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
