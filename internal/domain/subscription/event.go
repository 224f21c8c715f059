package subscription

import (
	"time"

	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
)

// BillingEvent es una notificación externa y secuenciada de cambio de estado
// de suscripción. Cada evento trae el estado terminal completo (no deltas):
// re-aplicarlo es idempotente por construcción.
type BillingEvent struct {
	CustomerRef      string
	Status           string // estado ya normalizado a las constantes entity.Status*
	Plan             string
	CurrentPeriodEnd *time.Time
	EventSequence    int64 // campo de orden del proveedor (timestamp/secuencia del evento)
}

// ApplyEvent aplica un evento de facturación sobre el registro del tenant.
// Es el único camino de escritura de Plan/SubscriptionStatus/CurrentPeriodEnd.
//
// Resolución de concurrencia: last-write-wins según EventSequence (el orden lo
// fija el proveedor, no el orden de llegada). Un evento con secuencia menor a la
// almacenada se descarta con ErrConflict sin tocar el estado. Re-aplicar el
// mismo evento es un no-op sin error.
//
// Monotonicidad: ningún evento puede retroceder al tenant de active a trialing.
func ApplyEvent(t *entity.Tenant, ev BillingEvent) (changed bool, err error) {
	if ev.EventSequence < t.BillingEventSeq {
		return false, domain.ErrConflict
	}
	if ev.EventSequence == t.BillingEventSeq && sameState(t, ev) {
		return false, nil
	}
	if t.SubscriptionStatus == entity.StatusActive && ev.Status == entity.StatusTrialing {
		return false, domain.ErrConflict
	}

	t.SubscriptionStatus = ev.Status
	t.Plan = ev.Plan
	t.CurrentPeriodEnd = ev.CurrentPeriodEnd
	t.BillingEventSeq = ev.EventSequence

	// Corrección perezosa: un trial vencido que quedó almacenado como trialing
	// se normaliza aquí, en la siguiente escritura del motor.
	if t.SubscriptionStatus == entity.StatusTrialing &&
		t.TrialEndsAt != nil && !t.TrialEndsAt.After(time.Now()) {
		t.SubscriptionStatus = entity.StatusExpired
	}

	t.UpdatedAt = time.Now()
	return true, nil
}

// sameState compara el estado almacenado con el que traería el evento.
func sameState(t *entity.Tenant, ev BillingEvent) bool {
	if t.SubscriptionStatus != ev.Status || t.Plan != ev.Plan {
		return false
	}
	switch {
	case t.CurrentPeriodEnd == nil && ev.CurrentPeriodEnd == nil:
		return true
	case t.CurrentPeriodEnd == nil || ev.CurrentPeriodEnd == nil:
		return false
	default:
		return t.CurrentPeriodEnd.Equal(*ev.CurrentPeriodEnd)
	}
}

// StartTrial inicializa los campos de facturación de un tenant recién
// registrado: trialing con TrialDays días de acceso completo.
func StartTrial(t *entity.Tenant, now time.Time) {
	ends := now.Add(entity.TrialDays * 24 * time.Hour)
	t.SubscriptionStatus = entity.StatusTrialing
	t.TrialEndsAt = &ends
}
