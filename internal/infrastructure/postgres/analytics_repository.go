package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementación del puerto AnalyticsRepository sobre PostgreSQL.
// Las lecturas unen contra stores para resolver la pertenencia del tenant:
// analytics no lleva tenant_id propio.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// Upsert registra una visita: una fila por (store, sesión). La visita repetida
// de la misma sesión incrementa el contador en vez de crear filas sin límite.
func (r *AnalyticsRepo) Upsert(storeID, sessionID string) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO store_analytics (id, store_id, session_id, visits, first_visit_at, last_visit_at)
		VALUES ($1, $2, $3, 1, $4, $4)
		ON CONFLICT (store_id, session_id)
		DO UPDATE SET visits = store_analytics.visits + 1, last_visit_at = $4`
	_, err := r.q.Exec(context.Background(), query, uuid.New().String(), storeID, sessionID, now)
	if err != nil {
		return fmt.Errorf("upsert analytics: %w", err)
	}
	return nil
}

// ListByStore lista las sesiones de visita de una vitrina del tenant.
func (r *AnalyticsRepo) ListByStore(scope domain.Scope, storeID string, limit, offset int) ([]*entity.StoreAnalytics, error) {
	query := `
		SELECT a.id, a.store_id, a.session_id, a.visits, a.first_visit_at, a.last_visit_at
		FROM store_analytics a
		JOIN stores s ON s.id = a.store_id
		WHERE s.tenant_id = $1 AND a.store_id = $2
		ORDER BY a.last_visit_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, scope.TenantID(), storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list analytics: %w", err)
	}
	defer rows.Close()
	var list []*entity.StoreAnalytics
	for rows.Next() {
		var a entity.StoreAnalytics
		if err := rows.Scan(&a.ID, &a.StoreID, &a.SessionID, &a.Visits, &a.FirstVisitAt, &a.LastVisitAt); err != nil {
			return nil, fmt.Errorf("scan analytics: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// TotalVisits suma las visitas acumuladas de la vitrina del tenant.
func (r *AnalyticsRepo) TotalVisits(scope domain.Scope, storeID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(a.visits), 0)
		FROM store_analytics a
		JOIN stores s ON s.id = a.store_id
		WHERE s.tenant_id = $1 AND a.store_id = $2`
	var total int
	if err := r.q.QueryRow(context.Background(), query, scope.TenantID(), storeID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total visits: %w", err)
	}
	return total, nil
}
