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

var _ repository.TenantRepository = (*TenantRepo)(nil)

const tenantColumns = `id, email, password_hash, name, plan, subscription_status, trial_ends_at,
	current_period_end, billing_customer_ref, billing_event_seq, tutorial_completed, created_at, updated_at`

// TenantRepo implementación del puerto TenantRepository sobre PostgreSQL.
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create persiste una cuenta nueva.
func (r *TenantRepo) Create(t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (id, email, password_hash, name, plan, subscription_status, trial_ends_at,
			current_period_end, billing_customer_ref, billing_event_seq, tutorial_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Email, t.PasswordHash, t.Name, t.Plan, t.SubscriptionStatus, t.TrialEndsAt,
		t.CurrentPeriodEnd, t.BillingCustomerRef, t.BillingEventSeq, t.TutorialCompleted, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) {
	return r.getBy("id = $1", id)
}

// GetByEmail obtiene una cuenta por email.
func (r *TenantRepo) GetByEmail(email string) (*entity.Tenant, error) {
	return r.getBy("email = $1", email)
}

// GetByBillingCustomerRef obtiene la cuenta dueña del customer ref del proveedor de pagos.
func (r *TenantRepo) GetByBillingCustomerRef(ref string) (*entity.Tenant, error) {
	return r.getBy("billing_customer_ref = $1", ref)
}

func (r *TenantRepo) getBy(where string, arg any) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE ` + where
	var t entity.Tenant
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&t.ID, &t.Email, &t.PasswordHash, &t.Name, &t.Plan, &t.SubscriptionStatus, &t.TrialEndsAt,
		&t.CurrentPeriodEnd, &t.BillingCustomerRef, &t.BillingEventSeq, &t.TutorialCompleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// UpdateBilling persiste los campos de facturación escritos por el motor de
// entitlement. El predicado por secuencia hace la escritura segura ante eventos
// concurrentes: si otro evento más nuevo ya fue aplicado, esta no pisa nada.
func (r *TenantRepo) UpdateBilling(t *entity.Tenant) error {
	query := `
		UPDATE tenants
		SET plan = $2, subscription_status = $3, current_period_end = $4, billing_event_seq = $5, updated_at = $6
		WHERE id = $1 AND billing_event_seq <= $5`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Plan, t.SubscriptionStatus, t.CurrentPeriodEnd, t.BillingEventSeq, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tenant billing: %w", err)
	}
	return nil
}

// SetBillingCustomerRef guarda el customer ref asignado por el proveedor de pagos.
func (r *TenantRepo) SetBillingCustomerRef(id, ref string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE tenants SET billing_customer_ref = $2, updated_at = now() WHERE id = $1`,
		id, ref,
	)
	if err != nil {
		return fmt.Errorf("set billing customer ref: %w", err)
	}
	return nil
}

// SetTutorialCompleted marca el toggle de tutorial de la cuenta.
func (r *TenantRepo) SetTutorialCompleted(id string, completed bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE tenants SET tutorial_completed = $2, updated_at = now() WHERE id = $1`,
		id, completed,
	)
	if err != nil {
		return fmt.Errorf("set tutorial completed: %w", err)
	}
	return nil
}
