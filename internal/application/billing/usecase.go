package billing

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Vitrina-api/internal/application/dto"
	"github.com/jhoicas/Vitrina-api/internal/domain"
	"github.com/jhoicas/Vitrina-api/internal/domain/entity"
	"github.com/jhoicas/Vitrina-api/internal/domain/repository"
	"github.com/jhoicas/Vitrina-api/internal/domain/subscription"
)

// snapshotTTL cota de frescura del cache de entitlement: una lectura nunca
// evalúa campos más viejos que esto sin pasar por la DB.
const snapshotTTL = 30 * time.Second

type cachedEntitlement struct {
	ent       subscription.Entitlement
	fetchedAt time.Time
}

// UseCase casos de uso de suscripción: inicio/cambio de plan, portal y
// aplicación de eventos del proveedor. Es el único escritor de los campos de
// facturación del tenant.
type UseCase struct {
	tenantRepo repository.TenantRepository
	provider   Provider
	log        zerolog.Logger

	mu    sync.Mutex
	cache map[string]cachedEntitlement // tenantID -> snapshot derivado
}

// NewUseCase construye el caso de uso de facturación.
func NewUseCase(tenantRepo repository.TenantRepository, provider Provider, log zerolog.Logger) *UseCase {
	return &UseCase{
		tenantRepo: tenantRepo,
		provider:   provider,
		log:        log,
		cache:      make(map[string]cachedEntitlement),
	}
}

// Subscribe inicia o cambia la suscripción del tenant al plan indicado.
// Camino de ESCRITURA hacia el proveedor: falla cerrado si no está disponible.
func (uc *UseCase) Subscribe(ctx context.Context, scope domain.Scope, in dto.SubscribeRequest) (*dto.CheckoutResponse, error) {
	if in.Plan != entity.PlanStarter && in.Plan != entity.PlanPremium {
		return nil, domain.ErrInvalidInput
	}
	tenant, err := uc.tenantRepo.GetByID(scope.TenantID())
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}

	ref, err := uc.ensureCustomerRef(ctx, tenant)
	if err != nil {
		return nil, err
	}
	url, err := uc.provider.CheckoutURL(ctx, ref, in.Plan)
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{URL: url}, nil
}

// Portal abre el portal de autogestión para el tenant. Falla cerrado.
func (uc *UseCase) Portal(ctx context.Context, scope domain.Scope) (*dto.PortalResponse, error) {
	tenant, err := uc.tenantRepo.GetByID(scope.TenantID())
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	if tenant.BillingCustomerRef == nil || *tenant.BillingCustomerRef == "" {
		// Sin customer en el proveedor todavía: no hay nada que autogestionar.
		return nil, domain.ErrNotFound
	}
	url, err := uc.provider.PortalURL(ctx, *tenant.BillingCustomerRef)
	if err != nil {
		return nil, err
	}
	return &dto.PortalResponse{URL: url}, nil
}

// HandleEvent aplica un evento del proveedor sobre el tenant dueño del
// customer ref. Eventos huérfanos (ref sin tenant) se registran y descartan;
// eventos viejos o retrocesos se descartan sin tocar el estado.
func (uc *UseCase) HandleEvent(ev subscription.BillingEvent) error {
	tenant, err := uc.tenantRepo.GetByBillingCustomerRef(ev.CustomerRef)
	if err != nil {
		return err
	}
	if tenant == nil {
		// Huérfano: el customer no corresponde a ninguna cuenta (p. ej. cuenta
		// eliminada fuera de este servicio). Se registra y se descarta.
		uc.log.Warn().
			Str("customer_ref", ev.CustomerRef).
			Int64("event_seq", ev.EventSequence).
			Msg("evento de facturación huérfano, descartado")
		return nil
	}

	changed, err := subscription.ApplyEvent(tenant, ev)
	if err != nil {
		uc.log.Info().
			Str("tenant_id", tenant.ID).
			Int64("event_seq", ev.EventSequence).
			Int64("stored_seq", tenant.BillingEventSeq).
			Msg("evento de facturación viejo o en retroceso, descartado")
		return nil
	}
	if !changed {
		return nil
	}
	if err := uc.tenantRepo.UpdateBilling(tenant); err != nil {
		return err
	}
	uc.invalidate(tenant.ID)
	uc.log.Info().
		Str("tenant_id", tenant.ID).
		Str("status", tenant.SubscriptionStatus).
		Str("plan", tenant.Plan).
		Msg("suscripción actualizada por evento del proveedor")
	return nil
}

// Entitlement devuelve la vista derivada del acceso del tenant, evaluada contra
// el registro persistido (nunca contra el proveedor en vivo) y cacheada con
// cota de frescura. El gating de lectura no se bloquea si el proveedor cae.
func (uc *UseCase) Entitlement(scope domain.Scope) (subscription.Entitlement, error) {
	now := time.Now()

	uc.mu.Lock()
	if c, ok := uc.cache[scope.TenantID()]; ok && now.Sub(c.fetchedAt) < snapshotTTL {
		uc.mu.Unlock()
		return c.ent, nil
	}
	uc.mu.Unlock()

	tenant, err := uc.tenantRepo.GetByID(scope.TenantID())
	if err != nil {
		return subscription.Entitlement{}, err
	}
	if tenant == nil {
		return subscription.Entitlement{}, domain.ErrTenantNotFound
	}
	ent := subscription.Derive(subscription.FieldsFromTenant(tenant), now)

	uc.mu.Lock()
	uc.cache[scope.TenantID()] = cachedEntitlement{ent: ent, fetchedAt: now}
	uc.mu.Unlock()
	return ent, nil
}

// ensureCustomerRef devuelve el customer ref del tenant, creándolo en el
// proveedor y persistiéndolo si aún no existe.
func (uc *UseCase) ensureCustomerRef(ctx context.Context, tenant *entity.Tenant) (string, error) {
	if tenant.BillingCustomerRef != nil && *tenant.BillingCustomerRef != "" {
		return *tenant.BillingCustomerRef, nil
	}
	ref, err := uc.provider.EnsureCustomer(ctx, tenant.ID, tenant.Email)
	if err != nil {
		return "", err
	}
	if err := uc.tenantRepo.SetBillingCustomerRef(tenant.ID, ref); err != nil {
		return "", err
	}
	return ref, nil
}

func (uc *UseCase) invalidate(tenantID string) {
	uc.mu.Lock()
	delete(uc.cache, tenantID)
	uc.mu.Unlock()
}
