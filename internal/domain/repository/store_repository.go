package repository

import (
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para PublicStore (DIP).
// GetActiveBySlug es el único camino de lectura sin Scope: la vitrina pública
// se resuelve por slug y solo si está activa; inactiva o inexistente se
// responden igual (no encontrado uniforme).
type StoreRepository interface {
	Create(scope domain.Scope, store *entity.PublicStore) error
	GetByTenant(scope domain.Scope) (*entity.PublicStore, error)
	Update(scope domain.Scope, store *entity.PublicStore) error
	GetActiveBySlug(slug string) (*entity.PublicStore, error)
}

// AnalyticsRepository define el puerto de persistencia para StoreAnalytics (DIP).
// Upsert actualiza en el lugar la fila (store, sesión): una visita repetida de
// la misma sesión incrementa el contador en vez de crear documentos sin límite.
type AnalyticsRepository interface {
	Upsert(storeID, sessionID string) error
	ListByStore(scope domain.Scope, storeID string, limit, offset int) ([]*entity.StoreAnalytics, error)
	TotalVisits(scope domain.Scope, storeID string) (int, error)
}
