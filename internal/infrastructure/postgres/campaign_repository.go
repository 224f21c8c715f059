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

var _ repository.CampaignRepository = (*CampaignRepo)(nil)

const campaignColumns = `id, tenant_id, name, description, discount_percent, starts_at, ends_at, active, created_at, updated_at`

// CampaignRepo implementación del puerto CampaignRepository sobre PostgreSQL.
type CampaignRepo struct {
	q Querier
}

// NewCampaignRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCampaignRepository(q Querier) *CampaignRepo {
	return &CampaignRepo{q: q}
}

// Create persiste una nueva campaña de descuento.
func (r *CampaignRepo) Create(scope domain.Scope, c *entity.Campaign) error {
	query := `
		INSERT INTO campaigns (` + campaignColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, scope.TenantID(), c.Name, c.Description, c.DiscountPercent, c.StartsAt, c.EndsAt, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// GetByID obtiene una campaña por ID dentro del tenant.
func (r *CampaignRepo) GetByID(scope domain.Scope, id string) (*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE tenant_id = $1 AND id = $2`
	var c entity.Campaign
	err := r.q.QueryRow(context.Background(), query, scope.TenantID(), id).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Description, &c.DiscountPercent, &c.StartsAt, &c.EndsAt, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return &c, nil
}

// Update actualiza una campaña existente.
func (r *CampaignRepo) Update(scope domain.Scope, c *entity.Campaign) error {
	query := `
		UPDATE campaigns
		SET name = $3, description = $4, discount_percent = $5, starts_at = $6, ends_at = $7, active = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		scope.TenantID(), c.ID, c.Name, c.Description, c.DiscountPercent, c.StartsAt, c.EndsAt, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	return nil
}

// List lista campañas del tenant con paginación.
func (r *CampaignRepo) List(scope domain.Scope, limit, offset int) ([]*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE tenant_id = $1 ORDER BY starts_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, scope.TenantID(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()
	var list []*entity.Campaign
	for rows.Next() {
		var c entity.Campaign
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Description, &c.DiscountPercent, &c.StartsAt, &c.EndsAt, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina una campaña del tenant.
func (r *CampaignRepo) Delete(scope domain.Scope, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM campaigns WHERE tenant_id = $1 AND id = $2`, scope.TenantID(), id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	return nil
}
