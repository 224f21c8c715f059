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

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `id, tenant_id, slug, title, description, whatsapp_message, phone, background_color, logo_url, selected_product_ids, is_active, created_at, updated_at`

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste la vitrina del tenant. El slug es único global: una colisión
// con la vitrina de otro tenant retorna ErrDuplicate.
func (r *StoreRepo) Create(scope domain.Scope, s *entity.PublicStore) error {
	query := `
		INSERT INTO stores (` + storeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, scope.TenantID(), s.Slug, s.Title, s.Description, s.WhatsappMessage, s.Phone,
		s.BackgroundColor, s.LogoURL, s.SelectedProductIDs, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByTenant obtiene la vitrina del tenant (a lo sumo una por tenant).
func (r *StoreRepo) GetByTenant(scope domain.Scope) (*entity.PublicStore, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE tenant_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, scope.TenantID()))
}

// Update actualiza la vitrina. El slug nunca se toca: es inmutable después de creado.
func (r *StoreRepo) Update(scope domain.Scope, s *entity.PublicStore) error {
	query := `
		UPDATE stores
		SET title = $3, description = $4, whatsapp_message = $5, phone = $6,
		    background_color = $7, logo_url = $8, selected_product_ids = $9, is_active = $10, updated_at = $11
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		scope.TenantID(), s.ID, s.Title, s.Description, s.WhatsappMessage, s.Phone,
		s.BackgroundColor, s.LogoURL, s.SelectedProductIDs, s.IsActive, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	return nil
}

// GetActiveBySlug resuelve una vitrina pública por slug. Única lectura sin
// Scope del repositorio: filtra por is_active para que una vitrina pausada
// sea indistinguible de una inexistente.
func (r *StoreRepo) GetActiveBySlug(slug string) (*entity.PublicStore, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE slug = $1 AND is_active = TRUE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, slug))
}

func (r *StoreRepo) scanOne(row pgx.Row) (*entity.PublicStore, error) {
	var s entity.PublicStore
	err := row.Scan(
		&s.ID, &s.TenantID, &s.Slug, &s.Title, &s.Description, &s.WhatsappMessage, &s.Phone,
		&s.BackgroundColor, &s.LogoURL, &s.SelectedProductIDs, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan store: %w", err)
	}
	return &s, nil
}
